// Package memory provides an in-memory implementation of storage.TokenStorage.
// It is suitable for development, testing, and short-lived single-process tools.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	"github.com/giantswarm/oauth-core/instrumentation"
	"github.com/giantswarm/oauth-core/internal/util"
	"github.com/giantswarm/oauth-core/security"
	"github.com/giantswarm/oauth-core/storage"
)

const (
	// storageType is reported on spans
	storageType = "memory"

	// stateLogLength is the number of characters of a state value included in debug logs
	stateLogLength = 4
)

// Store is an in-memory implementation of storage.TokenStorage.
// Tokens are keyed by service identity and optionally encrypted at rest.
type Store struct {
	mu sync.RWMutex

	tokens map[string]*oauth2.Token // service -> token (encrypted if encryptor is set)
	states map[string]string        // service -> authorization state

	// Security
	encryptor *security.Encryptor
	auditor   *security.Auditor

	// Instrumentation
	instrumentation *instrumentation.Instrumentation
	tracer          trace.Tracer

	// Atomic counters for metrics (lock-free access during metric collection)
	tokensCountAtomic atomic.Int64
	statesCountAtomic atomic.Int64

	logger *slog.Logger
}

// Compile-time interface check
var _ storage.TokenStorage = (*Store)(nil)

// New creates a new, empty in-memory store
func New() *Store {
	return &Store{
		tokens: make(map[string]*oauth2.Token),
		states: make(map[string]string),
		logger: slog.Default(),
	}
}

// SetLogger sets a custom logger
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

// SetEncryptor sets the token encryptor for encryption at rest.
// Tokens already stored are not re-encrypted; set it before storing tokens.
func (s *Store) SetEncryptor(enc *security.Encryptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.encryptor = enc
	if enc.IsEnabled() {
		s.logger.Info("Token encryption at rest enabled for storage")
	}
}

// SetAuditor sets the security auditor receiving token lifecycle events
func (s *Store) SetAuditor(auditor *security.Auditor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditor = auditor
}

// SetInstrumentation sets OpenTelemetry instrumentation for the store
func (s *Store) SetInstrumentation(inst *instrumentation.Instrumentation) {
	s.mu.Lock()
	s.instrumentation = inst
	s.tracer = nil
	if inst != nil {
		s.tracer = inst.Tracer("storage")
	}
	s.tokensCountAtomic.Store(int64(len(s.tokens)))
	s.statesCountAtomic.Store(int64(len(s.states)))
	s.mu.Unlock()

	if inst != nil {
		err := inst.RegisterStorageSizeCallbacks(
			func() int64 { return s.tokensCountAtomic.Load() },
			func() int64 { return s.statesCountAtomic.Load() },
		)
		if err != nil {
			s.logger.Warn("Failed to register storage size callbacks", "error", err)
		}
	}
}

// ============================================================
// Token operations
// ============================================================

// RetrieveAccessToken returns the token stored for service, decrypted if necessary
func (s *Store) RetrieveAccessToken(ctx context.Context, service string) (token *oauth2.Token, err error) {
	ctx, span, done := s.begin(ctx, "retrieve_access_token")
	defer func() { done(ctx, span, err) }()

	s.mu.RLock()
	encryptor := s.encryptor
	auditor := s.auditor
	stored, ok := s.tokens[service]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrTokenNotFound, service)
	}

	if !encryptor.IsEnabled() {
		return copyToken(stored), nil
	}

	token, err = storage.DecryptToken(stored, encryptor)
	if err != nil {
		auditor.LogTokenDecryptionFailed(service)
		return nil, fmt.Errorf("failed to decrypt token for %s: %w", service, err)
	}
	return token, nil
}

// StoreAccessToken persists token for service, replacing any previous token
func (s *Store) StoreAccessToken(ctx context.Context, service string, token *oauth2.Token) (err error) {
	ctx, span, done := s.begin(ctx, "store_access_token")
	defer func() { done(ctx, span, err) }()

	if service == "" {
		return fmt.Errorf("service cannot be empty")
	}
	if token == nil {
		return fmt.Errorf("token cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := storage.EncryptToken(token, s.encryptor)
	if err != nil {
		return fmt.Errorf("failed to encrypt token for %s: %w", service, err)
	}
	if stored == token {
		// keep the caller's pointer out of the map
		stored = copyToken(token)
	}

	if _, existed := s.tokens[service]; !existed {
		s.tokensCountAtomic.Add(1)
	}
	s.tokens[service] = stored

	s.logger.Debug("Stored access token", "service", service, "encrypted", s.encryptor.IsEnabled())
	s.auditor.LogTokenStored(service, s.encryptor.IsEnabled())
	return nil
}

// HasAccessToken reports whether a token is stored for service
func (s *Store) HasAccessToken(ctx context.Context, service string) (ok bool, err error) {
	ctx, span, done := s.begin(ctx, "has_access_token")
	defer func() { done(ctx, span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok = s.tokens[service]
	return ok, nil
}

// ClearToken removes the token stored for service
func (s *Store) ClearToken(ctx context.Context, service string) (err error) {
	ctx, span, done := s.begin(ctx, "clear_token")
	defer func() { done(ctx, span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[service]; ok {
		delete(s.tokens, service)
		s.tokensCountAtomic.Add(-1)
		s.logger.Debug("Cleared access token", "service", service)
		s.auditor.LogTokenCleared(service)
	}
	return nil
}

// ClearAllTokens removes every stored token
func (s *Store) ClearAllTokens(ctx context.Context) (err error) {
	ctx, span, done := s.begin(ctx, "clear_all_tokens")
	defer func() { done(ctx, span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.tokens)
	clear(s.tokens)
	s.tokensCountAtomic.Store(0)
	s.logger.Debug("Cleared all access tokens", "count", count)
	s.auditor.LogAllTokensCleared(count)
	return nil
}

// ============================================================
// Authorization state operations
// ============================================================

// StoreAuthorizationState persists the CSRF state for service's pending authorization
func (s *Store) StoreAuthorizationState(ctx context.Context, service, state string) (err error) {
	ctx, span, done := s.begin(ctx, "store_authorization_state")
	defer func() { done(ctx, span, err) }()

	if service == "" {
		return fmt.Errorf("service cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, existed := s.states[service]; !existed {
		s.statesCountAtomic.Add(1)
	}
	s.states[service] = state

	s.logger.Debug("Stored authorization state",
		"service", service,
		"state_prefix", util.SafeTruncate(state, stateLogLength))
	return nil
}

// HasAuthorizationState reports whether a state is stored for service
func (s *Store) HasAuthorizationState(ctx context.Context, service string) (ok bool, err error) {
	ctx, span, done := s.begin(ctx, "has_authorization_state")
	defer func() { done(ctx, span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok = s.states[service]
	return ok, nil
}

// RetrieveAuthorizationState returns the state stored for service
func (s *Store) RetrieveAuthorizationState(ctx context.Context, service string) (state string, err error) {
	ctx, span, done := s.begin(ctx, "retrieve_authorization_state")
	defer func() { done(ctx, span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[service]
	if !ok {
		return "", fmt.Errorf("%w: %s", storage.ErrStateNotFound, service)
	}
	return state, nil
}

// ClearAuthorizationState removes the state stored for service
func (s *Store) ClearAuthorizationState(ctx context.Context, service string) (err error) {
	ctx, span, done := s.begin(ctx, "clear_authorization_state")
	defer func() { done(ctx, span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.states[service]; ok {
		delete(s.states, service)
		s.statesCountAtomic.Add(-1)
	}
	return nil
}

// ClearAllAuthorizationStates removes every stored state
func (s *Store) ClearAllAuthorizationStates(ctx context.Context) (err error) {
	ctx, span, done := s.begin(ctx, "clear_all_authorization_states")
	defer func() { done(ctx, span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.states)
	s.statesCountAtomic.Store(0)
	return nil
}

// ============================================================
// Helpers
// ============================================================

type finishFunc func(ctx context.Context, span trace.Span, err error)

// begin starts a storage span and returns the function recording its outcome
func (s *Store) begin(ctx context.Context, operation string) (context.Context, trace.Span, finishFunc) {
	s.mu.RLock()
	tracer := s.tracer
	inst := s.instrumentation
	s.mu.RUnlock()

	start := time.Now()

	span := trace.SpanFromContext(ctx)
	if tracer != nil {
		ctx, span = tracer.Start(ctx, "storage."+operation)
		instrumentation.AddStorageAttributes(span, operation, storageType)
	}

	return ctx, span, func(ctx context.Context, span trace.Span, err error) {
		if tracer == nil {
			return
		}
		defer span.End()

		result := "success"
		if err != nil {
			result = "error"
			instrumentation.RecordError(span, err)
		} else {
			instrumentation.SetSpanSuccess(span)
		}

		durationMs := float64(time.Since(start).Microseconds()) / 1000
		inst.Metrics().RecordStorageOperation(ctx, operation, result, durationMs)
	}
}

// copyToken detaches a token from the caller. Only storage.KnownExtraFields survive,
// matching what the encrypted path preserves.
func copyToken(token *oauth2.Token) *oauth2.Token {
	out := &oauth2.Token{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
		ExpiresIn:    token.ExpiresIn,
	}
	if extra := storage.ExtractTokenExtra(token); extra != nil {
		out = out.WithExtra(extra)
	}
	return out
}
