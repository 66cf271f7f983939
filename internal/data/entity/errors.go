package entity

import "errors"

// Sentinel errors for the booking lifecycle. Handlers translate these with
// errors.Is; services wrap them with context via fmt.Errorf("...: %w", ...).
var (
	// ErrNotFound covers unknown bookings and other missing records.
	ErrNotFound = errors.New("not found")

	// ErrServiceNotFound means the referenced service is missing or inactive.
	ErrServiceNotFound = errors.New("service not found")

	// ErrDateUnavailable means the requested date is blocked, already taken
	// by an active booking, or in the past.
	ErrDateUnavailable = errors.New("date unavailable")

	// ErrAlreadyPaid means a paid booking received a conflicting payment
	// reference. A redelivery with the same reference is not an error.
	ErrAlreadyPaid = errors.New("booking already paid")

	// ErrAlreadyCancelled means a cancel was attempted on a cancelled booking.
	ErrAlreadyCancelled = errors.New("booking already cancelled")

	// ErrBookingCancelled means the operation needs an active booking.
	ErrBookingCancelled = errors.New("booking is cancelled")

	// ErrInvalidToken is the single opaque outcome for every self-service
	// token failure: tampered, malformed or expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidSignature means a webhook payload failed verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrRefundFailed means the provider refund call failed. The booking
	// stays untouched so the customer is never cancelled without a refund.
	ErrRefundFailed = errors.New("refund failed")
)
