package wire

import (
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/adaptor"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/middleware"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireContent(
	r chi.Router,
	handler *adaptor.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/posts - Published blog posts
	r.Get("/api/posts", handler.Content.ListPosts)

	// GET /api/posts/{slug} - Single published post
	r.Get("/api/posts/{slug}", handler.Content.GetPost)

	// POST /api/subscribe - Lead capture (rate limited per IP)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(config.Booking.RatePerMinute, log))
		r.Post("/api/subscribe", handler.Content.Subscribe)
	})
}
