// Package service provides business logic for the application.
package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/contactrelay/contactrelay/internal/logging"
	"github.com/contactrelay/contactrelay/internal/mail"
	"github.com/contactrelay/contactrelay/internal/metrics"
	"github.com/contactrelay/contactrelay/internal/model"
	"github.com/contactrelay/contactrelay/internal/quote"
	"github.com/contactrelay/contactrelay/internal/telemetry"
)

// ContactService runs the notify, quote and acknowledge sequence for one
// submission. It holds only immutable dependencies and is safe to share.
type ContactService struct {
	mailer    mail.Sender
	generator quote.Generator
	identity  mail.Identity
	metrics   metrics.Recorder
	logger    *zap.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(mailer mail.Sender, generator quote.Generator, identity mail.Identity, recorder metrics.Recorder, logger *zap.Logger) *ContactService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{
		mailer:    mailer,
		generator: generator,
		identity:  identity,
		metrics:   recorder,
		logger:    logger,
	}
}

// Process runs every step in order. Email and generation failures are
// logged and recorded in the Outcome; none of them stops the sequence.
func (s *ContactService) Process(ctx context.Context, sub *model.Submission) *model.Outcome {
	outcome := &model.Outcome{SubmissionID: sub.ID}
	log := logging.FromContext(ctx, s.logger)

	if id, err := s.Notify(ctx, sub); err != nil {
		outcome.NotificationError = mail.ErrorMessage(err)
		log.Error("error sending notification email", zap.String("error", outcome.NotificationError))
	} else {
		outcome.NotificationSent = true
		outcome.NotificationMessageID = id
		log.Info("notification email sent",
			zap.String("to", s.identity.Operator),
			zap.String("message_id", id),
		)
	}

	q, err := s.Quote(ctx)
	outcome.QuoteSource = q.Source
	if err != nil {
		outcome.QuoteError = err.Error()
		log.Error("error generating inspirational quote", zap.Error(err))
	}

	if id, err := s.Acknowledge(ctx, sub, q); err != nil {
		outcome.AcknowledgmentError = mail.ErrorMessage(err)
		log.Error("error sending user response email", zap.String("error", outcome.AcknowledgmentError))
	} else {
		outcome.AcknowledgmentSent = true
		outcome.AcknowledgmentMessageID = id
		log.Info("user response email sent",
			zap.String("to", sub.Email),
			zap.String("message_id", id),
			zap.Bool("fallback_quote", q.IsFallback()),
		)
	}

	return outcome
}

// Notify sends the operator notification for sub.
func (s *ContactService) Notify(ctx context.Context, sub *model.Submission) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "contact.notify")
	start := time.Now()

	id, err := s.mailer.Send(ctx, s.identity.Notification(sub))

	s.metrics.ObserveStepDuration(metrics.StepNotify, time.Since(start))
	s.metrics.IncEmail(metrics.EmailNotification, statusOf(err))
	telemetry.EndSpan(span, err)
	return id, err
}

// Quote resolves the quote, falling back to quote.Fallback on any failure.
// The returned quote is always usable; the error only explains a fallback.
func (s *ContactService) Quote(ctx context.Context) (model.GeneratedQuote, error) {
	ctx, span := telemetry.StartSpan(ctx, "contact.quote",
		attribute.String("quote.provider", s.generator.Attribution()),
	)
	start := time.Now()

	q, err := quote.Resolve(ctx, s.generator)

	s.metrics.ObserveStepDuration(metrics.StepQuote, time.Since(start))
	s.metrics.IncQuote(string(q.Source))
	span.SetAttributes(attribute.String("quote.source", string(q.Source)))
	telemetry.EndSpan(span, err)
	return q, err
}

// Acknowledge sends the reply to the submitter embedding q.
func (s *ContactService) Acknowledge(ctx context.Context, sub *model.Submission, q model.GeneratedQuote) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "contact.acknowledge")
	start := time.Now()

	msg := s.identity.Acknowledgment(sub, q.Text, s.generator.Attribution())
	logging.FromContext(ctx, s.logger).Debug("acknowledgment email body", zap.String("body", msg.Body))

	id, err := s.mailer.Send(ctx, msg)

	s.metrics.ObserveStepDuration(metrics.StepAcknowledge, time.Since(start))
	s.metrics.IncEmail(metrics.EmailAcknowledgment, statusOf(err))
	telemetry.EndSpan(span, err)
	return id, err
}

func statusOf(err error) string {
	if err != nil {
		return metrics.StatusFailed
	}
	return metrics.StatusSuccess
}
