package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Stripe   StripeConfig
	Token    TokenConfig
	Booking  BookingConfig
	Email    EmailConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	SuccessURL    string
	CancelURL     string
}

type TokenConfig struct {
	Secret   string
	TTLHours int
}

type BookingConfig struct {
	// Timezone pins "today", "tomorrow" and the 1-hour reminder comparison
	// to one canonical location, independent of the server clock.
	Timezone      string
	BaseURL       string
	OperatorEmail string
	RatePerMinute int
	CronKey       string
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type AdminConfig struct {
	// TokenHash is a bcrypt hash of the admin API token.
	TokenHash string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STRIPE_CURRENCY", "myr")
	viper.SetDefault("TOKEN_TTL_HOURS", 720)
	viper.SetDefault("BOOKING_TIMEZONE", "Asia/Kuala_Lumpur")
	viper.SetDefault("BOOKING_RATE_PER_MINUTE", 5)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Stripe: StripeConfig{
			SecretKey:     viper.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret: viper.GetString("STRIPE_WEBHOOK_SECRET"),
			Currency:      viper.GetString("STRIPE_CURRENCY"),
			SuccessURL:    viper.GetString("STRIPE_SUCCESS_URL"),
			CancelURL:     viper.GetString("STRIPE_CANCEL_URL"),
		},
		Token: TokenConfig{
			Secret:   viper.GetString("TOKEN_SECRET"),
			TTLHours: viper.GetInt("TOKEN_TTL_HOURS"),
		},
		Booking: BookingConfig{
			Timezone:      viper.GetString("BOOKING_TIMEZONE"),
			BaseURL:       viper.GetString("BOOKING_BASE_URL"),
			OperatorEmail: viper.GetString("OPERATOR_EMAIL"),
			RatePerMinute: viper.GetInt("BOOKING_RATE_PER_MINUTE"),
			CronKey:       viper.GetString("CRON_KEY"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Admin: AdminConfig{
			TokenHash: viper.GetString("ADMIN_TOKEN_HASH"),
		},
	}

	return config, nil
}
