package model

// Outcome records what each step of one invocation achieved.
// It is observational only: the caller-visible result does not depend on it.
type Outcome struct {
	SubmissionID string `json:"submission_id"`

	NotificationSent      bool   `json:"notification_sent"`
	NotificationMessageID string `json:"notification_message_id,omitempty"`
	NotificationError     string `json:"notification_error,omitempty"`

	QuoteSource QuoteSource `json:"quote_source"`
	QuoteError  string      `json:"quote_error,omitempty"`

	AcknowledgmentSent      bool   `json:"acknowledgment_sent"`
	AcknowledgmentMessageID string `json:"acknowledgment_message_id,omitempty"`
	AcknowledgmentError     string `json:"acknowledgment_error,omitempty"`
}

// Delivered reports whether both emails were accepted by the provider.
func (o *Outcome) Delivered() bool {
	return o.NotificationSent && o.AcknowledgmentSent
}
