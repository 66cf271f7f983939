package entity

import "time"

// BlockedDate is an admin-declared unavailable date. It is independent of
// bookings: blocking a date does not cancel an existing booking on it.
type BlockedDate struct {
	BaseSimple
	Date   time.Time `db:"blocked_date"`
	Reason string    `db:"reason"`
}
