package entity

// Service is a bookable offering. Price edits only affect future bookings;
// existing bookings keep their snapshot.
type Service struct {
	Base
	Name     string  `db:"name"`
	Price    float64 `db:"price"`
	Duration string  `db:"duration"` // display label, e.g. "60 minutes"
	Active   bool    `db:"active"`
	Featured bool    `db:"featured"`
}
