// Package consumer holds the OAuth consumer credentials a service is registered with.
//
// Credentials are immutable once constructed. They can be built directly with
// NewCredentials or loaded from a TOML file and the environment with Load:
//
//	creds, err := consumer.Load(consumer.LoadOptions{
//		File:    "oauth.toml",
//		Section: "github",
//	})
//
// With the default "OAUTH_" prefix, OAUTH_GITHUB__CLIENT_ID overrides
// github.client_id from the file.
package consumer
