// Package mail sends the notification and acknowledgment emails.
package mail

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"
)

// Message is one plain-text email.
type Message struct {
	Source  string // "Name <address>"
	To      []string
	ReplyTo []string
	Subject string
	Body    string
}

// Sender delivers a Message and returns the provider's message ID.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ErrorMessage returns the provider's own error message when err carries
// one, and err.Error() otherwise.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	return err.Error()
}
