package storage

import (
	"fmt"

	"golang.org/x/oauth2"

	"github.com/giantswarm/oauth-core/security"
)

// KnownExtraFields lists the extra token fields that are preserved through encryption.
// These fields live in oauth2.Token's private 'raw' field and are only reachable
// through Token.Extra().
//
// SECURITY: This allowlist approach ensures unknown extra fields are dropped, preventing
// potential injection of malicious data. Only explicitly listed fields are preserved.
var KnownExtraFields = []string{
	"id_token",           // OIDC ID token - ENCRYPTED
	"scope",              // Granted scopes (may differ from requested)
	"expires_in",         // Token lifetime in seconds
	"oauth_token_secret", // OAuth1 token secret - ENCRYPTED
}

// SensitiveExtraFields lists extra fields that contain credentials or PII and are
// encrypted at rest.
var SensitiveExtraFields = []string{
	"id_token",
	"oauth_token_secret",
}

// ExtractTokenExtra extracts known extra fields from an oauth2.Token.
//
// Returns nil if the token is nil or has no known extra fields.
func ExtractTokenExtra(token *oauth2.Token) map[string]interface{} {
	if token == nil {
		return nil
	}

	extra := make(map[string]interface{}, len(KnownExtraFields))

	for _, field := range KnownExtraFields {
		if v := token.Extra(field); v != nil {
			extra[field] = v
		}
	}

	if len(extra) == 0 {
		return nil
	}
	return extra
}

// EncryptExtraFields returns a copy of extra with sensitive string fields encrypted.
// If encryptor is nil or disabled, returns the original map unchanged.
func EncryptExtraFields(extra map[string]interface{}, encryptor *security.Encryptor) (map[string]interface{}, error) {
	return transformExtraFields(extra, encryptor, encryptor.Encrypt, "encrypt")
}

// DecryptExtraFields returns a copy of extra with sensitive string fields decrypted.
// If encryptor is nil or disabled, returns the original map unchanged.
func DecryptExtraFields(extra map[string]interface{}, encryptor *security.Encryptor) (map[string]interface{}, error) {
	return transformExtraFields(extra, encryptor, encryptor.Decrypt, "decrypt")
}

func transformExtraFields(extra map[string]interface{}, encryptor *security.Encryptor, fn func(string) (string, error), op string) (map[string]interface{}, error) {
	if extra == nil {
		return nil, nil
	}
	if !encryptor.IsEnabled() {
		return extra, nil
	}

	sensitive := make(map[string]bool, len(SensitiveExtraFields))
	for _, field := range SensitiveExtraFields {
		sensitive[field] = true
	}

	result := make(map[string]interface{}, len(extra))
	for key, value := range extra {
		strVal, ok := value.(string)
		if !sensitive[key] || !ok || strVal == "" {
			result[key] = value
			continue
		}
		out, err := fn(strVal)
		if err != nil {
			return nil, fmt.Errorf("failed to %s extra field %s: %w", op, key, err)
		}
		result[key] = out
	}

	return result, nil
}

// EncryptToken returns a copy of token with the access token, refresh token and
// sensitive extra fields encrypted. The input token is left unchanged.
// If encryptor is nil or disabled, token is returned as-is.
func EncryptToken(token *oauth2.Token, encryptor *security.Encryptor) (*oauth2.Token, error) {
	if token == nil || !encryptor.IsEnabled() {
		return token, nil
	}

	out, err := transformToken(token, encryptor.Encrypt)
	if err != nil {
		return nil, err
	}

	if extra := ExtractTokenExtra(token); extra != nil {
		encrypted, err := EncryptExtraFields(extra, encryptor)
		if err != nil {
			return nil, err
		}
		out = out.WithExtra(encrypted)
	}
	return out, nil
}

// DecryptToken reverses EncryptToken. The input token is left unchanged.
func DecryptToken(token *oauth2.Token, encryptor *security.Encryptor) (*oauth2.Token, error) {
	if token == nil || !encryptor.IsEnabled() {
		return token, nil
	}

	out, err := transformToken(token, encryptor.Decrypt)
	if err != nil {
		return nil, err
	}

	if extra := ExtractTokenExtra(token); extra != nil {
		decrypted, err := DecryptExtraFields(extra, encryptor)
		if err != nil {
			return nil, err
		}
		out = out.WithExtra(decrypted)
	}
	return out, nil
}

func transformToken(token *oauth2.Token, fn func(string) (string, error)) (*oauth2.Token, error) {
	out := &oauth2.Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
		ExpiresIn:    token.ExpiresIn,
		TokenType:    token.TokenType,
	}

	if out.AccessToken != "" {
		v, err := fn(out.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("failed to transform access token: %w", err)
		}
		out.AccessToken = v
	}

	if out.RefreshToken != "" {
		v, err := fn(out.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("failed to transform refresh token: %w", err)
		}
		out.RefreshToken = v
	}

	return out, nil
}
