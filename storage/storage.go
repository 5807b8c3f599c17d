package storage

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

var (
	// ErrTokenNotFound is returned when no token is stored for a service
	ErrTokenNotFound = errors.New("token not found")

	// ErrStateNotFound is returned when no authorization state is stored for a service
	ErrStateNotFound = errors.New("authorization state not found")
)

// TokenStorage persists issued tokens and pending authorization state, keyed by
// service identity (see oauth.Base.Service).
//
// OAuth1 tokens are carried in *oauth2.Token as well: the token secret travels in
// the "oauth_token_secret" extra field.
//
// Implementations must be safe for concurrent use: a single storage is usually
// shared by every service of an application.
// All methods accept context.Context for tracing and cancellation.
type TokenStorage interface {
	// RetrieveAccessToken returns the token stored for service.
	// Returns an error wrapping ErrTokenNotFound if there is none.
	RetrieveAccessToken(ctx context.Context, service string) (*oauth2.Token, error)

	// StoreAccessToken persists token for service, replacing any previous token
	StoreAccessToken(ctx context.Context, service string, token *oauth2.Token) error

	// HasAccessToken reports whether a token is stored for service
	HasAccessToken(ctx context.Context, service string) (bool, error)

	// ClearToken removes the token stored for service. Removing a missing token is not an error.
	ClearToken(ctx context.Context, service string) error

	// ClearAllTokens removes every stored token
	ClearAllTokens(ctx context.Context) error

	// StoreAuthorizationState persists the CSRF state issued for service's pending authorization
	StoreAuthorizationState(ctx context.Context, service, state string) error

	// HasAuthorizationState reports whether a state is stored for service
	HasAuthorizationState(ctx context.Context, service string) (bool, error)

	// RetrieveAuthorizationState returns the state stored for service.
	// Returns an error wrapping ErrStateNotFound if there is none.
	RetrieveAuthorizationState(ctx context.Context, service string) (string, error)

	// ClearAuthorizationState removes the state stored for service
	ClearAuthorizationState(ctx context.Context, service string) error

	// ClearAllAuthorizationStates removes every stored state
	ClearAllAuthorizationStates(ctx context.Context) error
}
