// Package payment wraps the payment provider behind a narrow interface so the
// booking core never sees provider types and tests can substitute a fake.
package payment

import "context"

// CheckoutParams describes the hosted payment page for one booking.
type CheckoutParams struct {
	BookingID     string
	ServiceName   string
	Amount        float64 // major currency units, e.g. 450.00 MYR
	CustomerEmail string
}

// CheckoutSession is the redirect target handed back to the client.
type CheckoutSession struct {
	ID  string
	URL string
}

// EventTypePaymentCompleted is the one inbound event the core acts on.
// Everything else is acknowledged and dropped (forward-compatible).
const EventTypePaymentCompleted = "checkout.session.completed"

// Event is a verified, provider-neutral webhook event.
type Event struct {
	Type       string
	BookingID  string
	PaymentRef string
}

// Gateway is the provider contract used by the booking core.
type Gateway interface {
	// CreateCheckoutSession prepares a hosted payment page carrying the
	// booking id, so the completed-payment webhook can find its booking.
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error)

	// VerifyEvent authenticates a raw webhook payload against the shared
	// secret and decodes it. Returns entity.ErrInvalidSignature when the
	// signature does not check out.
	VerifyEvent(payload []byte, sigHeader string) (*Event, error)

	// Refund reverses the charge behind the given payment reference.
	Refund(ctx context.Context, paymentRef string) error
}
