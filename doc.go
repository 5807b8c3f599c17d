// Package oauth is the version-agnostic foundation concrete OAuth1 and OAuth2
// services are built on.
//
// A concrete service embeds a *Base created with New. Base composes the consumer
// credentials, an HTTP transport and a token storage adapter, and provides:
//
//   - a stable service identity used as the storage key (Service),
//   - request URI resolution against the provider's base API URI (DetermineRequestURI, RequestURI),
//   - random strings and bytes for state and nonce parameters (RandomString, RandomBytes).
//
// Base performs no network I/O, no request signing and no token caching; those belong
// to the concrete service.
//
// Basic usage:
//
//	type GitHub struct {
//		*oauth.Base
//	}
//
//	func NewGitHub(creds consumer.Credentials, store storage.TokenStorage) (*GitHub, error) {
//		base, err := oauth.New("providers.GitHub", creds, httpclient.New(), store, &oauth.Config{
//			BaseAPIURI: "https://api.github.com/",
//		})
//		if err != nil {
//			return nil, err
//		}
//		return &GitHub{Base: base}, nil
//	}
//
// Relative paths resolve against the base API URI; absolute http(s) URLs are used as is:
//
//	u, err := gh.RequestURI("user/repos?per_page=100")
//	// https://api.github.com/user/repos?per_page=100
package oauth
