package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/dto/request"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/usecase"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminHandler groups the operator-only management endpoints that are not
// booking mutations: blocked dates and the service catalog.
type AdminHandler struct {
	booking      usecase.BookingService
	availability usecase.AvailabilityService
	catalog      usecase.CatalogService
	log          *zap.Logger
}

func NewAdminHandler(
	booking usecase.BookingService,
	availability usecase.AvailabilityService,
	catalog usecase.CatalogService,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		booking:      booking,
		availability: availability,
		catalog:      catalog,
		log:          log.With(zap.String("handler", "admin")),
	}
}

// ==================== BLOCKED DATES ====================

// BlockDate handles POST /api/admin/blocked-dates
func (h *AdminHandler) BlockDate(w http.ResponseWriter, r *http.Request) {
	var req request.BlockDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	blocked, err := h.availability.BlockDate(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "block date")
		return
	}

	utils.ResponseCreated(w, "success", blocked)
}

// UnblockDate handles DELETE /api/admin/blocked-dates/{id}
func (h *AdminHandler) UnblockDate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Blocked date ID is required", nil)
		return
	}

	if err := h.availability.UnblockDate(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "unblock date")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListBlockedDates handles GET /api/admin/blocked-dates
func (h *AdminHandler) ListBlockedDates(w http.ResponseWriter, r *http.Request) {
	blocked, err := h.availability.ListBlockedDates(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list blocked dates")
		return
	}

	utils.ResponseSuccess(w, "success", blocked)
}

// ==================== SERVICE CATALOG ====================

// ListServices handles GET /api/admin/services (includes inactive)
func (h *AdminHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list all services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// CreateService handles POST /api/admin/services
func (h *AdminHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req request.ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	service, err := h.catalog.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create service")
		return
	}

	utils.ResponseCreated(w, "success", service)
}

// UpdateService handles PUT /api/admin/services/{id}
func (h *AdminHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	var req request.ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	service, err := h.catalog.Update(r.Context(), serviceID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}
