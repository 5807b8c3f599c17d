package consumer

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func TestNewCredentials(t *testing.T) {
	creds := NewCredentials("id", "secret", "https://app.example.com/callback")

	if creds.ClientID() != "id" {
		t.Errorf("ClientID() = %q, want %q", creds.ClientID(), "id")
	}
	if creds.ClientSecret() != "secret" {
		t.Errorf("ClientSecret() = %q, want %q", creds.ClientSecret(), "secret")
	}
	if creds.CallbackURL() != "https://app.example.com/callback" {
		t.Errorf("CallbackURL() = %q", creds.CallbackURL())
	}
	if err := creds.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestCredentials_Validate(t *testing.T) {
	var zero Credentials
	if err := zero.Validate(); !errors.Is(err, ErrMissingClientID) {
		t.Errorf("Validate() error = %v, want ErrMissingClientID", err)
	}

	noSecret := NewCredentials("id", "", "")
	if err := noSecret.Validate(); err != nil {
		t.Errorf("Validate() for public client error = %v", err)
	}
}

func TestCredentials_StringRedactsSecret(t *testing.T) {
	creds := NewCredentials("id", "super-secret", "")
	if strings.Contains(creds.String(), "super-secret") {
		t.Errorf("String() leaks the client secret: %s", creds.String())
	}
	if !strings.Contains(creds.String(), "id") {
		t.Errorf("String() = %s, want client ID included", creds.String())
	}
}

func TestCredentials_OAuth2Config(t *testing.T) {
	creds := NewCredentials("id", "secret", "https://app.example.com/callback")
	endpoint := oauth2.Endpoint{
		AuthURL:  "https://provider.example.com/authorize",
		TokenURL: "https://provider.example.com/token",
	}

	scopes := []string{"read", "write"}
	cfg := creds.OAuth2Config(endpoint, scopes...)

	if cfg.ClientID != "id" || cfg.ClientSecret != "secret" {
		t.Errorf("OAuth2Config() client = %q/%q", cfg.ClientID, cfg.ClientSecret)
	}
	if cfg.RedirectURL != "https://app.example.com/callback" {
		t.Errorf("RedirectURL = %q", cfg.RedirectURL)
	}
	if cfg.Endpoint != endpoint {
		t.Errorf("Endpoint = %+v, want %+v", cfg.Endpoint, endpoint)
	}
	if len(cfg.Scopes) != 2 {
		t.Fatalf("Scopes = %v, want 2 entries", cfg.Scopes)
	}

	// Modifying the result must not reach the caller's slice
	cfg.Scopes[0] = "admin"
	if scopes[0] != "read" {
		t.Error("OAuth2Config() aliases the scopes argument")
	}

	// Each call returns a fresh config
	cfg.ClientID = "changed"
	if creds.OAuth2Config(endpoint).ClientID != "id" {
		t.Error("OAuth2Config() result is shared between calls")
	}
}
