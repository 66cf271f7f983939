// Package mailer is the transactional email collaborator. The booking core
// only depends on Send; templates live here so services hand over data, not
// prose.
package mailer

import "context"

// Message is one transactional email.
type Message struct {
	To      string
	Subject string
	Body    string // HTML
}

// Mailer sends templated transactional email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
