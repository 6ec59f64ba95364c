// Package email sends transactional mail, currently only the invite a
// new coach receives when an admin creates their account.
package email

import (
	"context"
	"errors"
	"time"
)

// SendRequest is one outbound message.
type SendRequest struct {
	To      []string // recipient addresses
	From    string   // sender address; empty means the configured default
	Subject string
	HTML    string // HTML body
	ReplyTo string // reply-to address, optional
}

// SendResult reports an accepted send.
type SendResult struct {
	MessageID string    // provider message ID
	SentAt    time.Time // when the provider accepted the message
}

// Sender delivers one message. Callers treat delivery as best-effort:
// an invite that does not go out never fails the coach creation.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}

// ErrNoRecipients is returned for a request with an empty To list.
var ErrNoRecipients = errors.New("email request has no recipients")
