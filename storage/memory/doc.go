// Package memory provides an in-memory token storage adapter.
//
// The Store keeps one token and one pending authorization state per service
// identity. It is safe for concurrent use and can encrypt tokens at rest:
//
//	store := memory.New()
//	enc, _ := security.NewEncryptor(key)
//	store.SetEncryptor(enc)
//
// Data is lost when the process exits. Use it for development, tests and
// short-lived tools only.
package memory
