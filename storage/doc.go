// Package storage provides the token persistence contract for OAuth services.
//
// TokenStorage is the capability every service receives at construction. The core
// never calls it: services and application code read and write tokens through
// oauth.Base.Storage(), keyed by the service identity.
//
// This package also provides helpers for storage adapters that keep tokens
// encrypted at rest (EncryptToken, DecryptToken).
//
// Implementations are provided in subpackages:
//   - storage/memory: In-memory adapter for development and testing
//   - storage/mock: Mock adapter with injectable behaviour for unit tests
package storage
