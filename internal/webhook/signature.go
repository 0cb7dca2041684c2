// Package webhook validates and parses inbound GitHub webhook events.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader is the GitHub header carrying the HMAC signature.
const SignatureHeader = "X-Hub-Signature-256"

// VerifySignature checks that signature matches "sha256=" plus the
// hex-encoded HMAC-SHA256 of body under secret. It fails closed: a
// missing secret or signature yields false. Comparison is constant time.
func VerifySignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the signature header value for a body under secret.
// Used by tests and local delivery tooling.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
