package handler

import (
	"net/http"

	"github.com/contactrelay/contactrelay/internal/handler/dto"
)

// Result is a transport-neutral response. Both the HTTP server and the
// Lambda entrypoint render it verbatim.
type Result struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

func responseHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

// Success is the 200 result returned whenever processing completes.
func Success() Result {
	return Result{
		StatusCode: http.StatusOK,
		Headers:    responseHeaders(),
		Body:       dto.ResultResponse{Result: dto.ResultSuccess}.Encode(),
	}
}

// Failure is the 500 result carrying msg as the error text.
func Failure(msg string) Result {
	return Result{
		StatusCode: http.StatusInternalServerError,
		Headers:    responseHeaders(),
		Body:       dto.ResultResponse{Result: dto.ResultFailed, Error: msg}.Encode(),
	}
}

// TooLarge is the 413 result for a body past the configured limit.
func TooLarge() Result {
	return Result{
		StatusCode: http.StatusRequestEntityTooLarge,
		Headers:    responseHeaders(),
		Body:       dto.ResultResponse{Result: dto.ResultFailed, Error: dto.MessageBodyTooLarge}.Encode(),
	}
}

// Write renders r onto w.
func (r Result) Write(w http.ResponseWriter) {
	for k, v := range r.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(r.StatusCode)
	_, _ = w.Write([]byte(r.Body))
}
