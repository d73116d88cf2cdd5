package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/contactrelay/contactrelay/internal/mail"
	"github.com/contactrelay/contactrelay/internal/metrics"
	"github.com/contactrelay/contactrelay/internal/model"
	"github.com/contactrelay/contactrelay/internal/quote"
	"github.com/contactrelay/contactrelay/internal/service"
	"github.com/contactrelay/contactrelay/internal/testutil"
)

const successBody = `{"result": "Success"}`

type processorFunc func(ctx context.Context, sub *model.Submission) *model.Outcome

func (f processorFunc) Process(ctx context.Context, sub *model.Submission) *model.Outcome {
	return f(ctx, sub)
}

var testIdentity = mail.Identity{
	SenderName:  "Jo Site",
	SenderEmail: "noreply@site.com",
	Operator:    "owner@site.com",
}

func newWorkflow(mailer mail.Sender, gen quote.Generator, rec metrics.Recorder) *ContactHandler {
	svc := service.NewContactService(mailer, gen, testIdentity, rec, zap.NewNop())
	return NewContactHandler(svc, rec, zap.NewNop())
}

func assertHeaders(t *testing.T, headers map[string]string) {
	t.Helper()
	assert.Equal(t, "application/json", headers["Content-Type"])
	assert.Equal(t, "*", headers["Access-Control-Allow-Origin"])
}

func TestContactHandler_Handle_HappyPath(t *testing.T) {
	mailer := &testutil.Mailer{}
	rec := metrics.NewInMemory()
	h := newWorkflow(mailer, &testutil.Generator{Text: "'Stars rise.'"}, rec)

	res := h.Handle(context.Background(), []byte(`{"name":"Ann","email":"ann@x.com","message":"Hi"}`))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, successBody, res.Body)
	assertHeaders(t, res.Headers)

	require.Len(t, mailer.Sent(), 2)

	notification := mailer.Sent()[0]
	assert.Equal(t, []string{"owner@site.com"}, notification.To)
	assert.Equal(t, []string{"ann@x.com"}, notification.ReplyTo)
	assert.Equal(t, "Jo Site <noreply@site.com>", notification.Source)
	assert.Equal(t, "[Contact Form] New submission from Ann", notification.Subject)

	ack := mailer.Sent()[1]
	assert.Equal(t, []string{"ann@x.com"}, ack.To)
	assert.Empty(t, ack.ReplyTo)
	assert.Equal(t, "Thank you for contacting Jo Site", ack.Subject)
	assert.Contains(t, ack.Body, "'Stars rise.'")
	assert.True(t, strings.HasPrefix(ack.Body, "Hi Ann,"))

	snap := rec.Snapshot()
	assert.Equal(t, uint64(1), snap.Submissions[metrics.StatusSuccess])
	assert.Equal(t, uint64(1), snap.Quotes[string(model.QuoteSourceGenerated)])
}

func TestContactHandler_Handle_FailuresAreSwallowed(t *testing.T) {
	mailer := &testutil.Mailer{FailTo: map[string]error{
		"owner@site.com": errors.New("MessageRejected: Email address is not verified"),
	}}
	rec := metrics.NewInMemory()
	h := newWorkflow(mailer, &testutil.Generator{Err: errors.New("AccessDeniedException")}, rec)

	res := h.Handle(context.Background(), []byte(`{"name":"Bo","email":"bo@y.org","message":"Question"}`))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, successBody, res.Body)

	require.Len(t, mailer.Sent(), 2)
	assert.Contains(t, mailer.Sent()[1].Body, quote.Fallback)

	snap := rec.Snapshot()
	assert.Equal(t, uint64(1), snap.Emails[metrics.EmailNotification+"/"+metrics.StatusFailed])
	assert.Equal(t, uint64(1), snap.Emails[metrics.EmailAcknowledgment+"/"+metrics.StatusSuccess])
	assert.Equal(t, uint64(1), snap.Quotes[string(model.QuoteSourceFallback)])
}

func TestContactHandler_Handle_BothEmailsFail(t *testing.T) {
	mailer := &testutil.Mailer{FailTo: map[string]error{
		"owner@site.com": errors.New("throttled"),
		"cy@z.net":       errors.New("throttled"),
	}}
	h := newWorkflow(mailer, &testutil.Generator{Text: "'Keep going.'"}, nil)

	res := h.Handle(context.Background(), []byte(`{"name":"Cy","email":"cy@z.net","message":"Yo"}`))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, successBody, res.Body)
	assert.Len(t, mailer.Sent(), 2)
}

func TestContactHandler_Handle_ParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty body", "", `"error": "request body is empty"`},
		{"whitespace body", "  \n", `"error": "request body is empty"`},
		{"null body", "null", `"error": "request body is empty"`},
		{"invalid json", "{not json", `"error": "invalid request body: `},
		{"missing email", `{"name":"Ann","message":"Hi"}`, `"error": "missing required field: email"`},
		{"empty name", `{"name":"","email":"a@b.c","message":"Hi"}`, `"error": "missing required field: name"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &testutil.Mailer{}
			rec := metrics.NewInMemory()
			h := newWorkflow(mailer, &testutil.Generator{Text: "'x'"}, rec)

			res := h.Handle(context.Background(), []byte(tt.body))

			assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
			assert.True(t, strings.HasPrefix(res.Body, `{"result": "Failed", `), res.Body)
			assert.Contains(t, res.Body, tt.wantErr)
			assertHeaders(t, res.Headers)
			assert.Empty(t, mailer.Sent(), "no email may be sent for an unparseable request")
			assert.Equal(t, uint64(1), rec.Snapshot().Submissions[metrics.StatusFailed])
		})
	}
}

func TestContactHandler_Handle_RecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := NewContactHandler(processorFunc(func(context.Context, *model.Submission) *model.Outcome {
		panic("template exploded")
	}), nil, zap.New(core))

	res := h.Handle(context.Background(), []byte(`{"name":"A","email":"a@b.c","message":"m"}`))

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, `{"result": "Failed", "error": "template exploded"}`, res.Body)
	assert.Equal(t, 1, logs.FilterMessage("panic while handling submission").Len())
}

func TestContactHandler_Handle_LogsReceivedMessage(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewContactHandler(processorFunc(func(ctx context.Context, sub *model.Submission) *model.Outcome {
		return &model.Outcome{SubmissionID: sub.ID, NotificationSent: true}
	}), nil, zap.New(core))

	h.Handle(context.Background(), []byte(`{"name":"Ann","email":"a@b.c","message":"m"}`))

	entries := logs.FilterMessage("received message").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Ann", fields["name"])
	assert.NotEmpty(t, fields["submission_id"])

	processed := logs.FilterMessage("submission processed").All()
	require.Len(t, processed, 1)
	assert.Equal(t, false, processed[0].ContextMap()["delivered"])
}

func TestContactHandler_ServeHTTP(t *testing.T) {
	mailer := &testutil.Mailer{}
	h := newWorkflow(mailer, &testutil.Generator{Text: "'x'"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ann","email":"ann@x.com","message":"Hi"}`))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, successBody, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Len(t, mailer.Sent(), 2)
}

func TestContactHandler_HandleAPIGateway(t *testing.T) {
	payload := `{"name":"Ann","email":"ann@x.com","message":"Hi"}`

	tests := []struct {
		name     string
		req      events.APIGatewayProxyRequest
		wantCode int
		wantSent int
	}{
		{
			name:     "plain body",
			req:      events.APIGatewayProxyRequest{Body: payload},
			wantCode: http.StatusOK,
			wantSent: 2,
		},
		{
			name: "base64 body",
			req: events.APIGatewayProxyRequest{
				Body:            base64.StdEncoding.EncodeToString([]byte(payload)),
				IsBase64Encoded: true,
			},
			wantCode: http.StatusOK,
			wantSent: 2,
		},
		{
			name:     "invalid base64",
			req:      events.APIGatewayProxyRequest{Body: "%%%", IsBase64Encoded: true},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "absent body",
			req:      events.APIGatewayProxyRequest{},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &testutil.Mailer{}
			h := newWorkflow(mailer, &testutil.Generator{Text: "'x'"}, nil)

			resp, err := h.HandleAPIGateway(context.Background(), tt.req)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assertHeaders(t, resp.Headers)
			assert.Len(t, mailer.Sent(), tt.wantSent)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, successBody, resp.Body)
			}
		})
	}
}
