package uri

import (
	"errors"
	"fmt"
)

// missingBaseMessage is the message carried by the ConfigurationError returned when a
// relative path is resolved without a base API URI.
const missingBaseMessage = "an absolute URI must be supplied when no base API URI is configured."

// ErrMissingBaseURI is the sentinel wrapped by the ConfigurationError returned for
// relative paths resolved without a base API URI.
var ErrMissingBaseURI = errors.New("missing base API URI")

// ConfigurationError reports a caller configuration mistake. It is deterministic:
// retrying the same call fails the same way.
type ConfigurationError struct {
	// Message is the human-readable description
	Message string

	// Path is the request path that triggered the error
	Path string

	// Err is the underlying sentinel (e.g. ErrMissingBaseURI)
	Err error
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return e.Message
}

// Unwrap returns the underlying sentinel error
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed absolute URI.
type ParseError struct {
	Raw string
	Err error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid URI %q: %v", e.Raw, e.Err)
}

// Unwrap returns the underlying parse failure (usually a *url.Error)
func (e *ParseError) Unwrap() error {
	return e.Err
}
