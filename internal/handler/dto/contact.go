// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/contactrelay/contactrelay/internal/model"
)

// Result values.
const (
	ResultSuccess = "Success"
	ResultFailed  = "Failed"
)

// MessageBodyTooLarge is the error text for a body past the size limit.
const MessageBodyTooLarge = "request body too large"

// ContactRequest represents the inbound contact-form body.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ToSubmission converts the request into a Submission with a fresh ID.
func (r ContactRequest) ToSubmission() *model.Submission {
	return model.NewSubmission(r.Name, r.Email, r.Message)
}

// ResultResponse is the body returned to the caller.
type ResultResponse struct {
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Encode renders the body with ", " and ": " separators and keys in
// declaration order, matching what existing form clients already receive.
// Non-ASCII characters are written as \uXXXX escapes.
func (r ResultResponse) Encode() string {
	var b strings.Builder
	b.WriteString(`{"result": `)
	b.WriteString(jsonString(r.Result))
	if r.Error != "" {
		b.WriteString(`, "error": `)
		b.WriteString(jsonString(r.Error))
	}
	b.WriteString("}")
	return b.String()
}

func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return asciiOnly(strings.TrimSuffix(buf.String(), "\n"))
}

func asciiOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, "\\u%04x\\u%04x", hi, lo)
		default:
			fmt.Fprintf(&b, "\\u%04x", r)
		}
	}
	return b.String()
}
