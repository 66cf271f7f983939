package main

import (
	"context"
	"log"
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/cmd"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/repository"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/usecase"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/wire"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/database"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/mailer"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/payment"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/token"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// External collaborators
	gateway := payment.NewStripeGateway(config.Stripe, logger)
	mail := mailer.NewSMTPMailer(config.Email, logger)
	codec := token.NewCodec(config.Token.Secret, time.Duration(config.Token.TTLHours)*time.Hour)

	// Wire all dependencies
	app := wire.Wiring(repos, gateway, mail, codec, config, logger)

	// Hourly reminder sweeps run in-process; the cron endpoint stays
	// available as an external fallback.
	go runReminderTicker(app.Service.Reminder, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

func runReminderTicker(reminder usecase.ReminderService, logger *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if _, err := reminder.RunSweeps(ctx); err != nil {
			logger.Error("Scheduled reminder sweep failed", zap.Error(err))
		}
		cancel()
	}
}
