package wire

import (
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/adaptor"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/middleware"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	handler *adaptor.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	// All admin routes sit behind the bearer token check.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(config.Admin.TokenHash, log))

		// Booking management
		r.Get("/bookings", handler.Booking.ListBookings)
		r.Get("/bookings/{id}", handler.Booking.GetBookingByID)
		r.Put("/bookings/{id}", handler.Booking.UpdateBooking)
		r.Put("/bookings/{id}/cancel", handler.Booking.CancelBooking)

		// Blocked dates
		r.Get("/blocked-dates", handler.Admin.ListBlockedDates)
		r.Post("/blocked-dates", handler.Admin.BlockDate)
		r.Delete("/blocked-dates/{id}", handler.Admin.UnblockDate)

		// Service catalog
		r.Get("/services", handler.Admin.ListServices)
		r.Post("/services", handler.Admin.CreateService)
		r.Put("/services/{id}", handler.Admin.UpdateService)

		// Blog management
		r.Get("/posts", handler.Content.ListAllPosts)
		r.Post("/posts", handler.Content.CreatePost)
		r.Put("/posts/{id}", handler.Content.UpdatePost)
		r.Delete("/posts/{id}", handler.Content.DeletePost)

		// Leads and settings
		r.Get("/leads", handler.Content.ListLeads)
		r.Get("/settings", handler.Content.GetSettings)
		r.Put("/settings", handler.Content.SetSetting)
	})
}
