package i

import "time"

// Tokenizer signs and verifies the operator tokens that guard the run API.
type Tokenizer interface {
	// Generate signs claims into a token valid for ttl. Expiry and issuer claims are set by
	// the tokenizer and override the given ones.
	Generate(claims map[string]interface{}, ttl time.Duration) (string, error)

	// Decode verifies signature, expiry and issuer and returns the claims.
	Decode(token string) (map[string]interface{}, error)
}
