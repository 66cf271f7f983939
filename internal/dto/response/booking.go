package response

import (
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"
)

type BookingResponse struct {
	ID              string    `json:"id"`
	ServiceID       string    `json:"service_id"`
	ServiceName     string    `json:"service_name,omitempty"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone,omitempty"`
	PricePaid       float64   `json:"price_paid"`
	Status          string    `json:"status"`
	StripePaymentID string    `json:"stripe_payment_id,omitempty"`
	MeetingLink     string    `json:"meeting_link,omitempty"`
	CustomerNotes   string    `json:"customer_notes,omitempty"`
	AdminNotes      string    `json:"admin_notes,omitempty"`
	Reminder24hSent bool      `json:"reminder_24h_sent"`
	Reminder1hSent  bool      `json:"reminder_1h_sent"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookingToResponse converts the entity for admin views, which see every field.
func BookingToResponse(b *entity.Booking, serviceName string) BookingResponse {
	return BookingResponse{
		ID:              b.ID.String(),
		ServiceID:       b.ServiceID.String(),
		ServiceName:     serviceName,
		Date:            b.BookingDate.Format(utils.DateLayout),
		Time:            b.BookingTime,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		PricePaid:       b.PricePaid,
		Status:          string(b.Status),
		StripePaymentID: b.StripePaymentID,
		MeetingLink:     b.MeetingLink,
		CustomerNotes:   b.CustomerNotes,
		AdminNotes:      b.AdminNotes,
		Reminder24hSent: b.Reminder24hSent,
		Reminder1hSent:  b.Reminder1hSent,
		CreatedAt:       b.CreatedAt,
	}
}

// SelfServiceBookingResponse is the customer-facing view behind a token.
// No payment reference, no admin notes.
type SelfServiceBookingResponse struct {
	ID          string  `json:"id"`
	ServiceName string  `json:"service_name"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	PricePaid   float64 `json:"price_paid"`
	Status      string  `json:"status"`
	MeetingLink string  `json:"meeting_link,omitempty"`
}

func BookingToSelfService(b *entity.Booking, serviceName string) SelfServiceBookingResponse {
	return SelfServiceBookingResponse{
		ID:          b.ID.String(),
		ServiceName: serviceName,
		Date:        b.BookingDate.Format(utils.DateLayout),
		Time:        b.BookingTime,
		PricePaid:   b.PricePaid,
		Status:      string(b.Status),
		MeetingLink: b.MeetingLink,
	}
}

type CreateBookingResponse struct {
	BookingID   string `json:"booking_id"`
	CheckoutURL string `json:"checkout_url"`
}

type CancelBookingResponse struct {
	Refunded bool `json:"refunded"`
}

type RescheduleBookingResponse struct {
	NewDate string `json:"new_date"`
	NewTime string `json:"new_time"`
}

type AvailabilityResponse struct {
	Unavailable []string `json:"unavailable"`
}

type SweepCount struct {
	Sent   int `json:"sent"`
	Errors int `json:"errors"`
}

type SweepResponse struct {
	Reminder24h SweepCount `json:"reminder_24h"`
	Reminder1h  SweepCount `json:"reminder_1h"`
}
