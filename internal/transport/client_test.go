package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Timeouts(t *testing.T) {
	c := NewHTTPClient()
	assert.Equal(t, ClientTimeout, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, TLSHandshakeTimeout, tr.TLSHandshakeTimeout)
	assert.Equal(t, ResponseHeaderTimeout, tr.ResponseHeaderTimeout)
}

func TestNewHTTPClient_DoesNotFollowRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://elsewhere.invalid/", http.StatusFound)
	}))
	defer srv.Close()

	resp, err := NewHTTPClient().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestCredentialsCheck(t *testing.T) {
	check := CredentialsCheck(aws.Config{})
	assert.Error(t, check(context.Background()))

	cfg := aws.Config{Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")}
	assert.NoError(t, CredentialsCheck(cfg)(context.Background()))
}
