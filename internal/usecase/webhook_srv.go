package usecase

import (
	"context"
	"errors"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WebhookService interface {
	// HandleEvent verifies the payload signature and applies the event.
	// Only a signature failure is a caller error; every business outcome,
	// including unknown bookings and redeliveries, is acknowledged so the
	// provider stops retrying.
	HandleEvent(ctx context.Context, payload []byte, signature string) error
}

type webhookService struct {
	gateway payment.Gateway
	booking BookingService
	log     *zap.Logger
}

func NewWebhookService(gateway payment.Gateway, booking BookingService, log *zap.Logger) WebhookService {
	return &webhookService{
		gateway: gateway,
		booking: booking,
		log:     log.With(zap.String("service", "webhook")),
	}
}

func (s *webhookService) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.VerifyEvent(payload, signature)
	if err != nil {
		s.log.Warn("Webhook signature verification failed", zap.Error(err))
		return err
	}

	if event.Type != payment.EventTypePaymentCompleted {
		s.log.Info("Ignoring webhook event", zap.String("type", event.Type))
		return nil
	}

	bookingID, err := uuid.Parse(event.BookingID)
	if err != nil {
		s.log.Error("Webhook event carries unparseable booking ID",
			zap.String("booking_id", event.BookingID),
			zap.Error(err))
		return nil
	}

	_, transitioned, err := s.booking.MarkPaid(ctx, bookingID, event.PaymentRef)
	switch {
	case err == nil:
		if transitioned {
			s.log.Info("Webhook confirmed payment",
				zap.String("booking_id", event.BookingID),
				zap.String("payment_ref", event.PaymentRef))
		}
		return nil
	case errors.Is(err, entity.ErrNotFound):
		// Likely a test event or a booking purged out of band. Ack it.
		s.log.Warn("Webhook references unknown booking",
			zap.String("booking_id", event.BookingID))
		return nil
	case errors.Is(err, entity.ErrBookingCancelled), errors.Is(err, entity.ErrAlreadyPaid):
		s.log.Error("Webhook payment conflicts with booking state",
			zap.String("booking_id", event.BookingID),
			zap.Error(err))
		return nil
	default:
		// Transient failure. Propagate so the provider retries.
		return err
	}
}
