package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/contactrelay/contactrelay/internal/handler/dto"
	"github.com/contactrelay/contactrelay/internal/logging"
	"github.com/contactrelay/contactrelay/internal/metrics"
	"github.com/contactrelay/contactrelay/internal/model"
	"github.com/contactrelay/contactrelay/internal/telemetry"
)

// ErrEmptyBody is returned when the request carries no body.
var ErrEmptyBody = errors.New("request body is empty")

// Processor runs the contact workflow for a validated submission.
type Processor interface {
	Process(ctx context.Context, sub *model.Submission) *model.Outcome
}

// ContactHandler turns one contact-form request into a Result.
type ContactHandler struct {
	processor Processor
	metrics   metrics.Recorder
	logger    *zap.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(processor Processor, recorder metrics.Recorder, logger *zap.Logger) *ContactHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactHandler{
		processor: processor,
		metrics:   recorder,
		logger:    logger,
	}
}

// Handle parses body and runs the workflow. Only parse failures and panics
// produce a 500; step failures inside the workflow never reach the caller.
func (h *ContactHandler) Handle(ctx context.Context, body []byte) (res Result) {
	ctx, span := telemetry.StartSpan(ctx, "contact.submit")
	log := logging.FromContext(ctx, h.logger)

	var err error
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
			log.Error("panic while handling submission",
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
		}
		if err != nil {
			h.metrics.IncSubmission(metrics.StatusFailed)
			res = Failure(err.Error())
		} else {
			h.metrics.IncSubmission(metrics.StatusSuccess)
		}
		telemetry.EndSpan(span, err)
	}()

	var sub *model.Submission
	sub, err = parseSubmission(body)
	if err != nil {
		log.Error("error handling submission", zap.Error(err))
		return Result{}
	}

	span.SetAttributes(attribute.String("submission.id", sub.ID))
	ctx = logging.With(ctx, h.logger, zap.String("submission_id", sub.ID))
	log = logging.FromContext(ctx, h.logger)
	log.Info("received message", zap.String("name", sub.Name))

	outcome := h.processor.Process(ctx, sub)
	if outcome != nil {
		log.Info("submission processed",
			zap.Bool("notification_sent", outcome.NotificationSent),
			zap.String("quote_source", string(outcome.QuoteSource)),
			zap.Bool("acknowledgment_sent", outcome.AcknowledgmentSent),
			zap.Bool("delivered", outcome.Delivered()),
		)
	}
	return Success()
}

// ServeHTTP implements http.Handler.
func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logging.FromContext(r.Context(), h.logger).Error("error reading request body", zap.Error(err))
		h.metrics.IncSubmission(metrics.StatusFailed)
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			TooLarge().Write(w)
			return
		}
		Failure(fmt.Sprintf("read request body: %v", err)).Write(w)
		return
	}
	h.Handle(r.Context(), body).Write(w)
}

// HandleAPIGateway adapts an API Gateway proxy event. The returned error is
// always nil so that API Gateway relays the 500 body instead of its own.
func (h *ContactHandler) HandleAPIGateway(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			h.metrics.IncSubmission(metrics.StatusFailed)
			return toProxyResponse(Failure(fmt.Sprintf("decode request body: %v", err))), nil
		}
		body = decoded
	}

	ctx = logging.With(ctx, h.logger, zap.String("request_id", req.RequestContext.RequestID))
	return toProxyResponse(h.Handle(ctx, body)), nil
}

func toProxyResponse(r Result) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       r.Body,
	}
}

func parseSubmission(body []byte) (*model.Submission, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyBody
	}

	var req dto.ContactRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	sub := req.ToSubmission()
	// Absent and empty fields both fail here, before any email is attempted,
	// rather than surfacing later as provider rejections.
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	return sub, nil
}
