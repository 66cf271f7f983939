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

// SelfServiceHandler serves the token-addressed booking pages. The token in
// the URL is the only credential; there is no session.
type SelfServiceHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewSelfServiceHandler(service usecase.BookingService, log *zap.Logger) *SelfServiceHandler {
	return &SelfServiceHandler{
		service: service,
		log:     log.With(zap.String("handler", "selfservice")),
	}
}

// GetBooking handles GET /api/booking/self/{token}
func (h *SelfServiceHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	tok := chi.URLParam(r, "token")
	if tok == "" {
		utils.ResponseBadRequest(w, "Token is required", nil)
		return
	}

	booking, err := h.service.GetByToken(r.Context(), tok)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking by token")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles POST /api/booking/cancel/{token}
func (h *SelfServiceHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	tok := chi.URLParam(r, "token")
	if tok == "" {
		utils.ResponseBadRequest(w, "Token is required", nil)
		return
	}

	var req request.CancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.CancelByToken(r.Context(), tok, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking by token")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// RescheduleBooking handles POST /api/booking/reschedule/{token}
func (h *SelfServiceHandler) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	tok := chi.URLParam(r, "token")
	if tok == "" {
		utils.ResponseBadRequest(w, "Token is required", nil)
		return
	}

	var req request.RescheduleBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.RescheduleByToken(r.Context(), tok, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "reschedule booking by token")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
