package adaptor

import (
	"errors"
	"io"
	"net/http"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/internal/usecase"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"go.uber.org/zap"
)

// Stripe caps payloads well below this; the limit only guards against junk.
const maxWebhookBody = 1 << 16

type WebhookHandler struct {
	service usecase.WebhookService
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.WebhookService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// HandleStripe handles POST /api/webhooks/stripe. The raw body is needed
// intact for signature verification, so no JSON decoding happens here.
func (h *WebhookHandler) HandleStripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		h.log.Error("Failed to read webhook body", zap.Error(err))
		utils.ResponseBadRequest(w, "Unable to read request body", nil)
		return
	}

	signature := r.Header.Get("Stripe-Signature")

	if err := h.service.HandleEvent(r.Context(), payload, signature); err != nil {
		if errors.Is(err, entity.ErrInvalidSignature) {
			utils.ResponseBadRequest(w, "Invalid signature", nil)
			return
		}
		// Transient failure: non-2xx makes Stripe redeliver.
		h.log.Error("Webhook processing failed", zap.Error(err))
		utils.ResponseInternalError(w, "Webhook processing failed")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
