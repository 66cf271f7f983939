package request

type CreateBookingRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid4"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	Notes     string `json:"notes" validate:"omitempty,max=2000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}

type RescheduleBookingRequest struct {
	NewDate string `json:"new_date" validate:"required,datetime=2006-01-02"`
	NewTime string `json:"new_time" validate:"omitempty,datetime=15:04"`
}

// UpdateBookingRequest is the admin patch. Only the allow-listed fields are
// mutable post-hoc; date changes go through reschedule, customer identity is
// immutable.
type UpdateBookingRequest struct {
	MeetingLink *string `json:"meeting_link" validate:"omitempty,max=500"`
	AdminNotes  *string `json:"admin_notes" validate:"omitempty,max=5000"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
	Time        *string `json:"time" validate:"omitempty,datetime=15:04"`
}
