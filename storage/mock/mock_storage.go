// Package mock provides a hookable mock implementation of storage.TokenStorage for testing.
package mock

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"

	"github.com/giantswarm/oauth-core/storage"
)

// MockTokenStorage is a mock implementation of storage.TokenStorage.
// Every method delegates to its exported hook; the defaults keep state in memory.
// Replace a hook to inject failures or observe arguments.
type MockTokenStorage struct {
	mu     sync.RWMutex
	tokens map[string]*oauth2.Token
	states map[string]string

	RetrieveAccessTokenFunc         func(ctx context.Context, service string) (*oauth2.Token, error)
	StoreAccessTokenFunc            func(ctx context.Context, service string, token *oauth2.Token) error
	HasAccessTokenFunc              func(ctx context.Context, service string) (bool, error)
	ClearTokenFunc                  func(ctx context.Context, service string) error
	ClearAllTokensFunc              func(ctx context.Context) error
	StoreAuthorizationStateFunc     func(ctx context.Context, service, state string) error
	HasAuthorizationStateFunc       func(ctx context.Context, service string) (bool, error)
	RetrieveAuthorizationStateFunc  func(ctx context.Context, service string) (string, error)
	ClearAuthorizationStateFunc     func(ctx context.Context, service string) error
	ClearAllAuthorizationStatesFunc func(ctx context.Context) error

	countMu    sync.Mutex
	CallCounts map[string]int
}

// Compile-time interface check
var _ storage.TokenStorage = (*MockTokenStorage)(nil)

// NewMockTokenStorage creates a new mock token storage with in-memory defaults
func NewMockTokenStorage() *MockTokenStorage {
	m := &MockTokenStorage{
		tokens:     make(map[string]*oauth2.Token),
		states:     make(map[string]string),
		CallCounts: make(map[string]int),
	}

	// Set default implementations
	m.RetrieveAccessTokenFunc = func(_ context.Context, service string) (*oauth2.Token, error) {
		m.mu.RLock()
		defer m.mu.RUnlock()
		token, ok := m.tokens[service]
		if !ok {
			return nil, fmt.Errorf("%w: %s", storage.ErrTokenNotFound, service)
		}
		return token, nil
	}

	m.StoreAccessTokenFunc = func(_ context.Context, service string, token *oauth2.Token) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.tokens[service] = token
		return nil
	}

	m.HasAccessTokenFunc = func(_ context.Context, service string) (bool, error) {
		m.mu.RLock()
		defer m.mu.RUnlock()
		_, ok := m.tokens[service]
		return ok, nil
	}

	m.ClearTokenFunc = func(_ context.Context, service string) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.tokens, service)
		return nil
	}

	m.ClearAllTokensFunc = func(_ context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		clear(m.tokens)
		return nil
	}

	m.StoreAuthorizationStateFunc = func(_ context.Context, service, state string) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.states[service] = state
		return nil
	}

	m.HasAuthorizationStateFunc = func(_ context.Context, service string) (bool, error) {
		m.mu.RLock()
		defer m.mu.RUnlock()
		_, ok := m.states[service]
		return ok, nil
	}

	m.RetrieveAuthorizationStateFunc = func(_ context.Context, service string) (string, error) {
		m.mu.RLock()
		defer m.mu.RUnlock()
		state, ok := m.states[service]
		if !ok {
			return "", fmt.Errorf("%w: %s", storage.ErrStateNotFound, service)
		}
		return state, nil
	}

	m.ClearAuthorizationStateFunc = func(_ context.Context, service string) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.states, service)
		return nil
	}

	m.ClearAllAuthorizationStatesFunc = func(_ context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		clear(m.states)
		return nil
	}

	return m
}

func (m *MockTokenStorage) count(method string) {
	m.countMu.Lock()
	defer m.countMu.Unlock()
	m.CallCounts[method]++
}

// CallCount returns how many times method has been called
func (m *MockTokenStorage) CallCount(method string) int {
	m.countMu.Lock()
	defer m.countMu.Unlock()
	return m.CallCounts[method]
}

// ResetCallCounts resets all call counters
func (m *MockTokenStorage) ResetCallCounts() {
	m.countMu.Lock()
	defer m.countMu.Unlock()
	m.CallCounts = make(map[string]int)
}

// RetrieveAccessToken retrieves the token stored for service
func (m *MockTokenStorage) RetrieveAccessToken(ctx context.Context, service string) (*oauth2.Token, error) {
	m.count("RetrieveAccessToken")
	return m.RetrieveAccessTokenFunc(ctx, service)
}

// StoreAccessToken stores a token for service
func (m *MockTokenStorage) StoreAccessToken(ctx context.Context, service string, token *oauth2.Token) error {
	m.count("StoreAccessToken")
	return m.StoreAccessTokenFunc(ctx, service, token)
}

// HasAccessToken reports whether a token is stored for service
func (m *MockTokenStorage) HasAccessToken(ctx context.Context, service string) (bool, error) {
	m.count("HasAccessToken")
	return m.HasAccessTokenFunc(ctx, service)
}

// ClearToken removes the token stored for service
func (m *MockTokenStorage) ClearToken(ctx context.Context, service string) error {
	m.count("ClearToken")
	return m.ClearTokenFunc(ctx, service)
}

// ClearAllTokens removes every token
func (m *MockTokenStorage) ClearAllTokens(ctx context.Context) error {
	m.count("ClearAllTokens")
	return m.ClearAllTokensFunc(ctx)
}

// StoreAuthorizationState stores the authorization state for service
func (m *MockTokenStorage) StoreAuthorizationState(ctx context.Context, service, state string) error {
	m.count("StoreAuthorizationState")
	return m.StoreAuthorizationStateFunc(ctx, service, state)
}

// HasAuthorizationState reports whether a state is stored for service
func (m *MockTokenStorage) HasAuthorizationState(ctx context.Context, service string) (bool, error) {
	m.count("HasAuthorizationState")
	return m.HasAuthorizationStateFunc(ctx, service)
}

// RetrieveAuthorizationState retrieves the state stored for service
func (m *MockTokenStorage) RetrieveAuthorizationState(ctx context.Context, service string) (string, error) {
	m.count("RetrieveAuthorizationState")
	return m.RetrieveAuthorizationStateFunc(ctx, service)
}

// ClearAuthorizationState removes the state stored for service
func (m *MockTokenStorage) ClearAuthorizationState(ctx context.Context, service string) error {
	m.count("ClearAuthorizationState")
	return m.ClearAuthorizationStateFunc(ctx, service)
}

// ClearAllAuthorizationStates removes every state
func (m *MockTokenStorage) ClearAllAuthorizationStates(ctx context.Context) error {
	m.count("ClearAllAuthorizationStates")
	return m.ClearAllAuthorizationStatesFunc(ctx)
}
