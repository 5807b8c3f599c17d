// Package security provides the randomness, at-rest encryption and audit logging
// primitives used by OAuth services and their token storage adapters.
//
// # Randomness
//
// RandomSource produces random bytes and URL-safe strings for protocol parameters
// (CSRF state, nonces). It runs in one of two modes:
//
//   - ModeSecure: crypto/rand, or an injected io.Reader
//   - ModeDegraded: a non-cryptographic PRNG, only selected when the secure reader
//     fails its probe and RandomConfig.AllowDegraded is set, or when ForceDegraded is set
//
// The active mode is always observable through RandomSource.Mode(). Degraded output
// is predictable and must not be used for security-sensitive values.
//
// # Encryption at rest
//
// Encryptor seals token material with XChaCha20-Poly1305
// (golang.org/x/crypto/chacha20poly1305). A nil or empty key disables encryption and
// turns Encrypt/Decrypt into pass-throughs.
//
// # Audit logging
//
// Auditor records security-relevant events (degraded randomness, token storage and
// removal, decryption failures) through slog. Client identifiers are hashed.
package security
