// Package testutil provides testing utilities, test doubles and fixtures for the
// oauth-core library: token generators, a recording HTTP client, a failing entropy
// source and OpenTelemetry readers for asserting on metrics and spans.
package testutil
