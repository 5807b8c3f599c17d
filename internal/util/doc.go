// Package util provides common utility functions used across the oauth-core library.
//
// Key utilities:
//   - SafeTruncate: Safely truncates strings for logging sensitive data
//   - SimpleName: Strips namespace qualification from service identifiers
package util
