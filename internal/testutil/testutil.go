// Package testutil holds fakes and environment helpers shared by tests.
package testutil

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/contactrelay/contactrelay/internal/mail"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// SetRequiredEnv sets every variable config.Load requires to test values.
func SetRequiredEnv(t testing.TB) {
	t.Helper()
	t.Setenv("RECEIVER_EMAIL", "owner@example.com")
	t.Setenv("SENDER_EMAIL", "noreply@example.com")
	t.Setenv("SENDER_NAME", "Jane Doe")
	t.Setenv("SES_REGION", "us-east-1")
	t.Setenv("BEDROCK_REGION", "us-west-2")
	t.Setenv("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0")
}

// Mailer records every message and fails sends to recipients in FailTo.
type Mailer struct {
	FailTo map[string]error

	mu   sync.Mutex
	sent []mail.Message
}

// Send implements mail.Sender. The message ID is "id-" plus the first recipient.
func (m *Mailer) Send(ctx context.Context, msg mail.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	if len(msg.To) == 0 {
		return "", mail.ErrNoRecipients
	}
	if err, ok := m.FailTo[msg.To[0]]; ok {
		return "", err
	}
	return "id-" + msg.To[0], nil
}

// Sent returns a copy of the messages passed to Send, in order.
func (m *Mailer) Sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message(nil), m.sent...)
}

// Generator returns Text or Err from every Generate call.
type Generator struct {
	Text string
	Err  error
	// Name is returned by Attribution; empty means "Amazon Bedrock".
	Name string

	mu    sync.Mutex
	calls int
}

// Generate implements quote.Generator.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	return g.Text, g.Err
}

// Attribution implements quote.Generator.
func (g *Generator) Attribution() string {
	if g.Name == "" {
		return "Amazon Bedrock"
	}
	return g.Name
}

// Calls reports how many times Generate ran.
func (g *Generator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
