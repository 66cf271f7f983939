package adaptor

import (
	"net/http"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/usecase"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	availability usecase.AvailabilityService
	catalog      usecase.CatalogService
	log          *zap.Logger
}

func NewAvailabilityHandler(availability usecase.AvailabilityService, catalog usecase.CatalogService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
		catalog:      catalog,
		log:          log.With(zap.String("handler", "availability")),
	}
}

// GetAvailability handles GET /api/availability?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")
	if from == "" || to == "" {
		utils.ResponseBadRequest(w, "Query parameters from and to are required", nil)
		return
	}

	availability, err := h.availability.ListUnavailable(r.Context(), from, to, nil)
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// GetServices handles GET /api/services (public, active offerings only)
func (h *AvailabilityHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.ListActive(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}
