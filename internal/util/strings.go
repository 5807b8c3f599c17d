// Package util provides common utility functions used across the oauth-core library.
// These utilities handle string manipulation and other shared operations
// that don't fit into domain-specific packages.
package util

import "strings"

// SafeTruncate safely truncates a string to maxLen characters without panicking.
// Returns the original string if it's shorter than maxLen, otherwise returns
// the first maxLen characters. This prevents index out of bounds errors when
// logging sensitive data like tokens, where only a prefix should be shown.
//
// If maxLen is negative, it's treated as 0 and returns an empty string.
//
// Example:
//
//	SafeTruncate("very-long-token-abc123", 8) // Returns: "very-lon"
//	SafeTruncate("short", 10)                  // Returns: "short"
//	SafeTruncate("test", -1)                   // Returns: ""
func SafeTruncate(s string, maxLen int) string {
	if maxLen < 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SimpleName returns the last component of a qualified type or service name,
// splitting on '.', '/' and '\'. Surrounding whitespace is ignored.
//
// Example:
//
//	SimpleName("Vendor.Oauth.Providers.Foo")          // Returns: "Foo"
//	SimpleName(`OAuth\OAuth2\Service\GitHub`)         // Returns: "GitHub"
//	SimpleName("github.com/acme/providers/gitlab.GitLab") // Returns: "GitLab"
//	SimpleName("Plain")                               // Returns: "Plain"
func SimpleName(qualified string) string {
	qualified = strings.TrimSpace(qualified)
	if i := strings.LastIndexAny(qualified, `./\`); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
