package usecase

import (
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/repository"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/mailer"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/payment"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/token"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Availability AvailabilityService
	Booking      BookingService
	Webhook      WebhookService
	Reminder     ReminderService
	Catalog      CatalogService
	Content      ContentService
}

func NewService(
	repo *repository.Repository,
	gateway payment.Gateway,
	mail mailer.Mailer,
	codec *token.Codec,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	loc, err := time.LoadLocation(config.Booking.Timezone)
	if err != nil {
		log.Warn("Unknown booking timezone, falling back to UTC",
			zap.String("timezone", config.Booking.Timezone))
		loc = time.UTC
	}

	availability := NewAvailabilityService(repo, loc, log)
	booking := NewBookingService(repo, availability, gateway, mail, codec, config.Booking, loc, log)

	return &Service{
		Availability: availability,
		Booking:      booking,
		Webhook:      NewWebhookService(gateway, booking, log),
		Reminder:     NewReminderService(repo, mail, loc, log),
		Catalog:      NewCatalogService(repo.Service, log),
		Content:      NewContentService(repo.Post, repo.Lead, repo.Setting, log),
	}
}
