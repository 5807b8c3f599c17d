package security

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"
)

// Event type constants for security audit logging
const (
	// EventDegradedRandom is logged when a service falls back to the non-cryptographic generator
	EventDegradedRandom = "degraded_random_source"

	// EventTokenStored is logged when a token is persisted for a service
	EventTokenStored = "token_stored"

	// EventTokenCleared is logged when a service's token is removed
	EventTokenCleared = "token_cleared"

	// EventAllTokensCleared is logged when every stored token is removed
	EventAllTokensCleared = "all_tokens_cleared" //nolint:gosec // G101: event type name, not a credential

	// EventTokenDecryptionFailed is logged when stored token material cannot be decrypted
	EventTokenDecryptionFailed = "token_decryption_failed" //nolint:gosec // G101: event type name, not a credential
)

// Auditor handles security event logging. Client identifiers are hashed.
// A nil *Auditor is valid and logs nothing.
type Auditor struct {
	logger  *slog.Logger
	enabled bool
}

// NewAuditor creates a new security auditor
func NewAuditor(logger *slog.Logger, enabled bool) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{
		logger:  logger,
		enabled: enabled,
	}
}

// Event represents a security audit event
type Event struct {
	Type      string
	Service   string
	ClientID  string
	Details   map[string]any
	Timestamp time.Time
}

// LogEvent logs a security event with the client ID hashed
func (a *Auditor) LogEvent(event Event) {
	if a == nil || !a.enabled {
		return
	}

	event.Timestamp = time.Now()

	a.logger.Info("security_audit",
		"event_type", event.Type,
		"service", event.Service,
		"client_id_hash", hashForLogging(event.ClientID),
		"details", event.Details,
		"timestamp", event.Timestamp,
	)
}

// LogDegradedRandom logs that service generates its random values in degraded mode
func (a *Auditor) LogDegradedRandom(service string) {
	a.LogEvent(Event{
		Type:    EventDegradedRandom,
		Service: service,
	})
}

// LogTokenStored logs that a token was persisted for service
func (a *Auditor) LogTokenStored(service string, encrypted bool) {
	a.LogEvent(Event{
		Type:    EventTokenStored,
		Service: service,
		Details: map[string]any{
			"encrypted": encrypted,
		},
	})
}

// LogTokenCleared logs that service's token was removed
func (a *Auditor) LogTokenCleared(service string) {
	a.LogEvent(Event{
		Type:    EventTokenCleared,
		Service: service,
	})
}

// LogAllTokensCleared logs that every stored token was removed
func (a *Auditor) LogAllTokensCleared(count int) {
	a.LogEvent(Event{
		Type: EventAllTokensCleared,
		Details: map[string]any{
			"count": count,
		},
	})
}

// LogTokenDecryptionFailed logs that service's stored token could not be decrypted,
// which usually means the encryption key changed or the data was tampered with
func (a *Auditor) LogTokenDecryptionFailed(service string) {
	a.LogEvent(Event{
		Type:    EventTokenDecryptionFailed,
		Service: service,
	})
}

// hashForLogging creates a SHA256 hash of sensitive data for logging
func hashForLogging(sensitive string) string {
	if sensitive == "" {
		return "<empty>"
	}
	hash := sha256.Sum256([]byte(sensitive))
	return hex.EncodeToString(hash[:])[:16]
}
