// Package uri provides the URI value type used by OAuth services to build request
// targets, and the resolver that turns provider-relative paths into fully-qualified
// request URIs.
//
// A URI is a value: assigning or passing it copies it, so a provider's base API URI
// can be resolved into any number of request URIs without aliasing. Mutators are
// builder-style and return a new value:
//
//	base := uri.MustParse("https://api.example.com/v1/")
//	target, err := uri.Resolve("users?active=true", &base)
//	// target: https://api.example.com/v1/users?active=true
//	// base:   https://api.example.com/v1/ (unchanged)
//
// Resolving a relative path without a base fails with a *ConfigurationError.
// Absolute http:// and https:// paths never consult the base.
package uri
