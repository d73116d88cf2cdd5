// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Email kinds.
const (
	EmailNotification   = "notification"
	EmailAcknowledgment = "acknowledgment"
)

// Statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Workflow steps timed by ObserveStepDuration.
const (
	StepNotify      = "notify"
	StepQuote       = "quote"
	StepAcknowledge = "acknowledge"
)

// Recorder captures metric events for the application.
// Implementations must be safe for concurrent use.
type Recorder interface {
	// IncSubmission counts handler invocations by result ("success" or "failed").
	IncSubmission(status string)

	// IncEmail counts send attempts by kind and status.
	IncEmail(kind, status string)

	// IncQuote counts quotes by source ("generated" or "fallback").
	IncQuote(source string)

	// ObserveStepDuration records how long one workflow step took.
	ObserveStepDuration(step string, duration time.Duration)
}
