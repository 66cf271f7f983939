package wire

import (
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/adaptor"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/middleware"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	handler *adaptor.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/services - List bookable services
	r.Get("/api/services", handler.Availability.GetServices)

	// GET /api/availability - Calendar data for the booking widget
	r.Get("/api/availability", handler.Availability.GetAvailability)

	// POST /api/bookings - Create booking (rate limited per IP)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(config.Booking.RatePerMinute, log))
		r.Post("/api/bookings", handler.Booking.CreateBooking)
	})

	// POST /api/webhooks/stripe - Payment confirmation callbacks
	r.Post("/api/webhooks/stripe", handler.Webhook.HandleStripe)

	// ==================== SELF-SERVICE ROUTES (token in URL) ====================
	r.Get("/api/booking/self/{token}", handler.SelfService.GetBooking)
	r.Post("/api/booking/cancel/{token}", handler.SelfService.CancelBooking)
	r.Post("/api/booking/reschedule/{token}", handler.SelfService.RescheduleBooking)

	// ==================== CRON ====================
	// POST /api/cron/reminders - External scheduler entry point
	r.Group(func(r chi.Router) {
		r.Use(middleware.CronAuth(config.Booking.CronKey, log))
		r.Post("/api/cron/reminders", handler.Cron.RunReminders)
	})
}
