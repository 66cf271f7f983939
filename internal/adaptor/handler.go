package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/usecase"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking      *BookingHandler
	SelfService  *SelfServiceHandler
	Webhook      *WebhookHandler
	Availability *AvailabilityHandler
	Admin        *AdminHandler
	Content      *ContentHandler
	Cron         *CronHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:      NewBookingHandler(service.Booking, log),
		SelfService:  NewSelfServiceHandler(service.Booking, log),
		Webhook:      NewWebhookHandler(service.Webhook, log),
		Availability: NewAvailabilityHandler(service.Availability, service.Catalog, log),
		Admin:        NewAdminHandler(service.Booking, service.Availability, service.Catalog, log),
		Content:      NewContentHandler(service.Content, log),
		Cron:         NewCronHandler(service.Reminder, log),
	}
}

// handleServiceError maps service errors onto the response envelope. All
// handlers share this so a given sentinel always produces the same status.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, entity.ErrInvalidToken):
		log.Warn(operation+" failed - invalid token",
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, errMsg)

	case errors.Is(err, entity.ErrNotFound), errors.Is(err, entity.ErrServiceNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, entity.ErrDateUnavailable),
		errors.Is(err, entity.ErrAlreadyPaid),
		errors.Is(err, entity.ErrAlreadyCancelled),
		errors.Is(err, entity.ErrBookingCancelled):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, entity.ErrRefundFailed):
		log.Error(operation+" failed - refund provider error",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadGateway(w, "Refund could not be processed, booking is unchanged")

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"):
		log.Warn(operation+" failed - bad input",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
