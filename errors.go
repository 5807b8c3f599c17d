package oauth

import (
	"errors"

	"github.com/giantswarm/oauth-core/uri"
)

// ConfigurationError reports a request path that cannot be resolved with the
// service's configuration, such as a relative path without a base API URI.
type ConfigurationError = uri.ConfigurationError

var (
	// ErrMissingBaseURI is matched by errors.Is for every ConfigurationError caused
	// by a relative path without base API URI
	ErrMissingBaseURI = uri.ErrMissingBaseURI

	// ErrHTTPClientRequired is returned by New when no HTTP client is given
	ErrHTTPClientRequired = errors.New("HTTP client is required")

	// ErrStorageRequired is returned by New when no token storage is given
	ErrStorageRequired = errors.New("token storage is required")

	// ErrServiceNameRequired is returned by New when no service identity can be derived
	ErrServiceNameRequired = errors.New("service name is required")
)

// IsConfigurationError reports whether err is or wraps a *ConfigurationError
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
