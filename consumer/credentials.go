package consumer

import (
	"errors"

	"golang.org/x/oauth2"
)

// ErrMissingClientID is returned when credentials carry no client identifier
var ErrMissingClientID = errors.New("client ID is required")

// Credentials identify an OAuth consumer: the client identifier and secret issued by
// the provider and the callback URL registered with it.
// The zero value is empty and fails Validate.
type Credentials struct {
	clientID     string
	clientSecret string
	callbackURL  string
}

// NewCredentials creates credentials. callbackURL may be empty for flows without a redirect.
func NewCredentials(clientID, clientSecret, callbackURL string) Credentials {
	return Credentials{
		clientID:     clientID,
		clientSecret: clientSecret,
		callbackURL:  callbackURL,
	}
}

// ClientID returns the client identifier (OAuth1 consumer key)
func (c Credentials) ClientID() string { return c.clientID }

// ClientSecret returns the client secret (OAuth1 consumer secret)
func (c Credentials) ClientSecret() string { return c.clientSecret }

// CallbackURL returns the registered callback URL, or "" if none
func (c Credentials) CallbackURL() string { return c.callbackURL }

// Validate checks that the credentials carry a client ID
func (c Credentials) Validate() error {
	if c.clientID == "" {
		return ErrMissingClientID
	}
	return nil
}

// String implements fmt.Stringer without exposing the secret
func (c Credentials) String() string {
	secret := ""
	if c.clientSecret != "" {
		secret = "[REDACTED]"
	}
	return "Credentials{ClientID: " + c.clientID + ", ClientSecret: " + secret + ", CallbackURL: " + c.callbackURL + "}"
}

// OAuth2Config builds an oauth2.Config for endpoint from the credentials.
// The returned config is a fresh value the caller may modify.
func (c Credentials) OAuth2Config(endpoint oauth2.Endpoint, scopes ...string) *oauth2.Config {
	var s []string
	if len(scopes) > 0 {
		s = append([]string(nil), scopes...)
	}
	return &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RedirectURL:  c.callbackURL,
		Endpoint:     endpoint,
		Scopes:       s,
	}
}
