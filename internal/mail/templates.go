package mail

import (
	"fmt"

	"github.com/contactrelay/contactrelay/internal/model"
)

// Identity is the fixed routing configuration for outbound mail.
type Identity struct {
	SenderName  string
	SenderEmail string
	Operator    string // receives notifications
}

// Source formats the sender as "Name <address>".
func (id Identity) Source() string {
	return fmt.Sprintf("%s <%s>", id.SenderName, id.SenderEmail)
}

// Notification builds the operator email for a new submission.
// Submission fields are interpolated verbatim.
func (id Identity) Notification(sub *model.Submission) Message {
	body := fmt.Sprintf(
		"New contact form submission:\n\n"+
			"Name: %s\n"+
			"Email: %s\n"+
			"Message: %s",
		sub.Name, sub.Email, sub.Message,
	)

	return Message{
		Source:  id.Source(),
		To:      []string{id.Operator},
		ReplyTo: []string{sub.Email},
		Subject: fmt.Sprintf("[Contact Form] New submission from %s", sub.Name),
		Body:    body,
	}
}

// Acknowledgment builds the reply to the submitter embedding quote.
// attribution names the service that generated the quote.
func (id Identity) Acknowledgment(sub *model.Submission, quote, attribution string) Message {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thanks for reaching out through my website. I've received your message and will get back to you soon.\n\n"+
			"In the meantime, here's an inspirational quote to brighten your day:\n\n"+
			"%s\n\n"+
			"Kind regards,\n"+
			"%s\n\n"+
			"%s, this quote was uniquely generated by AI (%s) just for you.",
		sub.Name, quote, id.SenderName, sub.Name, attribution,
	)

	return Message{
		Source:  id.Source(),
		To:      []string{sub.Email},
		Subject: fmt.Sprintf("Thank you for contacting %s", id.SenderName),
		Body:    body,
	}
}
