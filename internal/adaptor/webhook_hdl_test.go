package adaptor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubWebhookService struct {
	err error
	got []byte
	sig string
}

func (s *stubWebhookService) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	s.got = payload
	s.sig = signature
	return s.err
}

func postWebhook(handler *WebhookHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", strings.NewReader(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rec := httptest.NewRecorder()
	handler.HandleStripe(rec, req)
	return rec
}

func TestHandleStripeAcksProcessedEvent(t *testing.T) {
	stub := &stubWebhookService{}
	handler := NewWebhookHandler(stub, zap.NewNop())

	rec := postWebhook(handler, `{"type":"checkout.session.completed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"type":"checkout.session.completed"}`, string(stub.got))
	assert.Equal(t, "t=1,v1=abc", stub.sig)
}

func TestHandleStripeRejectsBadSignature(t *testing.T) {
	stub := &stubWebhookService{err: entity.ErrInvalidSignature}
	handler := NewWebhookHandler(stub, zap.NewNop())

	rec := postWebhook(handler, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStripeTransientFailureTriggersRetry(t *testing.T) {
	stub := &stubWebhookService{err: errors.New("db unavailable")}
	handler := NewWebhookHandler(stub, zap.NewNop())

	rec := postWebhook(handler, `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
