package mailer

import "fmt"

// BookingInfo is the template input shared by all booking emails.
type BookingInfo struct {
	CustomerName string
	ServiceName  string
	Date         string // YYYY-MM-DD
	Time         string // 15:04
	Price        float64
	MeetingLink  string
}

// ConfirmationEmail is sent to the customer after payment lands. The
// self-service links carry the signed token.
func ConfirmationEmail(b BookingInfo, cancelURL, rescheduleURL string) (subject, body string) {
	subject = fmt.Sprintf("Booking confirmed - %s on %s", b.ServiceName, b.Date)
	body = fmt.Sprintf(`<p>Hi %s,</p>
<p>Your booking is confirmed.</p>
<p><strong>%s</strong><br>%s at %s<br>RM%.2f</p>
<p>Need to make a change?</p>
<p><a href="%s">Reschedule</a> &middot; <a href="%s">Cancel</a></p>`,
		b.CustomerName, b.ServiceName, b.Date, b.Time, b.Price, rescheduleURL, cancelURL)
	return subject, body
}

// OperatorNewBookingEmail notifies the operator of a confirmed payment.
func OperatorNewBookingEmail(b BookingInfo, customerEmail string) (subject, body string) {
	subject = fmt.Sprintf("New paid booking - %s on %s", b.ServiceName, b.Date)
	body = fmt.Sprintf(`<p>New booking paid.</p>
<p><strong>%s</strong><br>%s at %s<br>RM%.2f</p>
<p>Customer: %s (%s)</p>`,
		b.ServiceName, b.Date, b.Time, b.Price, b.CustomerName, customerEmail)
	return subject, body
}

// CancellationEmail confirms a cancellation to the customer.
func CancellationEmail(b BookingInfo, refunded bool) (subject, body string) {
	subject = fmt.Sprintf("Booking cancelled - %s on %s", b.ServiceName, b.Date)
	refundLine := ""
	if refunded {
		refundLine = fmt.Sprintf("<p>Your payment of RM%.2f has been refunded.</p>", b.Price)
	}
	body = fmt.Sprintf(`<p>Hi %s,</p>
<p>Your booking for <strong>%s</strong> on %s at %s has been cancelled.</p>%s`,
		b.CustomerName, b.ServiceName, b.Date, b.Time, refundLine)
	return subject, body
}

// OperatorCancellationEmail notifies the operator of a cancellation.
func OperatorCancellationEmail(b BookingInfo, customerEmail, reason string, refunded bool) (subject, body string) {
	subject = fmt.Sprintf("Booking cancelled - %s on %s", b.ServiceName, b.Date)
	body = fmt.Sprintf(`<p>Booking cancelled.</p>
<p><strong>%s</strong><br>%s at %s</p>
<p>Customer: %s (%s)<br>Reason: %s<br>Refunded: %t</p>`,
		b.ServiceName, b.Date, b.Time, b.CustomerName, customerEmail, reason, refunded)
	return subject, body
}

// RescheduleEmail confirms the new slot to the customer.
func RescheduleEmail(b BookingInfo, oldDate string) (subject, body string) {
	subject = fmt.Sprintf("Booking rescheduled - %s", b.ServiceName)
	body = fmt.Sprintf(`<p>Hi %s,</p>
<p>Your booking for <strong>%s</strong> has moved from %s to %s at %s.</p>`,
		b.CustomerName, b.ServiceName, oldDate, b.Date, b.Time)
	return subject, body
}

// Reminder24hEmail is the day-before reminder.
func Reminder24hEmail(b BookingInfo) (subject, body string) {
	subject = fmt.Sprintf("Reminder: %s tomorrow at %s", b.ServiceName, b.Time)
	meetingLine := ""
	if b.MeetingLink != "" {
		meetingLine = fmt.Sprintf(`<p>Join here: <a href="%s">%s</a></p>`, b.MeetingLink, b.MeetingLink)
	}
	body = fmt.Sprintf(`<p>Hi %s,</p>
<p>A reminder that your <strong>%s</strong> session is tomorrow, %s at %s.</p>%s`,
		b.CustomerName, b.ServiceName, b.Date, b.Time, meetingLine)
	return subject, body
}

// Reminder1hEmail is the one-hour-before reminder, only sent when a meeting
// link exists.
func Reminder1hEmail(b BookingInfo) (subject, body string) {
	subject = fmt.Sprintf("Starting soon: %s at %s", b.ServiceName, b.Time)
	body = fmt.Sprintf(`<p>Hi %s,</p>
<p>Your <strong>%s</strong> session starts at %s.</p>
<p>Join here: <a href="%s">%s</a></p>`,
		b.CustomerName, b.ServiceName, b.Time, b.MeetingLink, b.MeetingLink)
	return subject, body
}
