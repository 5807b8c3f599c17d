// Package testutil provides testing utilities and helpers for the oauth-core library.
package testutil

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// GenerateTestToken creates a test OAuth2 token
func GenerateTestToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  GenerateRandomString(32),
		TokenType:    "Bearer",
		RefreshToken: GenerateRandomString(32),
		Expiry:       time.Now().Add(1 * time.Hour),
	}
}

// GenerateTestOAuth1Token creates a test token carrying an OAuth1 token secret
func GenerateTestOAuth1Token() *oauth2.Token {
	token := &oauth2.Token{AccessToken: GenerateRandomString(24)}
	return token.WithExtra(map[string]interface{}{
		"oauth_token_secret": GenerateRandomString(24),
	})
}

// GenerateRandomString generates a random base64-encoded string
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("failed to generate random string: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(b)[:length]
}

// RecordingClient is an httpclient.Client that records requests and answers with a
// canned response.
type RecordingClient struct {
	mu       sync.Mutex
	requests []*http.Request

	// StatusCode of the canned response. Default: 200
	StatusCode int

	// Body of the canned response
	Body string

	// Err, when set, is returned instead of a response
	Err error
}

// Do records req and returns the canned response
func (c *RecordingClient) Do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	status := c.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     make(http.Header),
		Body:       io.NopCloser(bytes.NewBufferString(c.Body)),
		Request:    req,
	}, nil
}

// Requests returns a copy of the recorded requests
func (c *RecordingClient) Requests() []*http.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*http.Request, len(c.requests))
	copy(out, c.requests)
	return out
}

// FailingReader is an io.Reader whose reads always fail. Used to simulate an
// unavailable secure random source.
type FailingReader struct{}

// Read implements io.Reader
func (FailingReader) Read([]byte) (int, error) {
	return 0, fmt.Errorf("entropy source unavailable")
}
