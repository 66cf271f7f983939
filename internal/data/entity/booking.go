package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsActive reports whether the status counts against date exclusivity.
// Cancelled bookings release their date.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusPaid
}

// Actor identifies who performed a lifecycle transition, for audit notes.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
	ActorSystem   Actor = "system"
)

type Booking struct {
	Base
	ServiceID     uuid.UUID `db:"service_id"`
	BookingDate   time.Time `db:"booking_date"` // day granularity, the exclusivity key
	BookingTime   string    `db:"booking_time"` // "15:04"
	CustomerName  string    `db:"customer_name"`
	CustomerEmail string    `db:"customer_email"`
	CustomerPhone string    `db:"customer_phone"`
	// PricePaid is snapshotted from the service at creation time and never
	// recomputed, so later price edits don't rewrite historic bookings.
	PricePaid       float64       `db:"price_paid"`
	Status          BookingStatus `db:"status"`
	StripePaymentID string        `db:"stripe_payment_id"`
	MeetingLink     string        `db:"meeting_link"`
	CustomerNotes   string        `db:"customer_notes"`
	AdminNotes      string        `db:"admin_notes"`
	Reminder24hSent bool          `db:"reminder_24h_sent"`
	Reminder1hSent  bool          `db:"reminder_1h_sent"`
}

// AuditNote formats a structured audit line for the admin notes trail.
func AuditNote(at time.Time, actor Actor, text string) string {
	return "[" + at.Format(time.RFC3339) + "] " + string(actor) + ": " + text
}
