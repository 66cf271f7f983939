package entity

import "time"

// Content-side records. These are plain CRUD collaborators of the booking
// core; nothing here carries lifecycle or consistency rules.

type Post struct {
	Base
	Title     string `db:"title"`
	Slug      string `db:"slug"`
	Excerpt   string `db:"excerpt"`
	Content   string `db:"content"`
	Published bool   `db:"published"`
}

type Lead struct {
	BaseSimple
	Name   string `db:"name"`
	Email  string `db:"email"`
	Source string `db:"source"` // e.g. "ebook", "newsletter"
}

type Setting struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}
