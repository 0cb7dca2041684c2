package webhook

import (
	"strings"
	"testing"
)

func TestVerifySignatureRoundTrip(t *testing.T) {
	bodies := []string{
		"",
		"{}",
		`{"action":"opened"}`,
		strings.Repeat("x", 1<<16),
	}

	for _, body := range bodies {
		sig := Sign("topsecret", []byte(body))
		if !VerifySignature("topsecret", []byte(body), sig) {
			t.Errorf("signature round trip failed for body of length %d", len(body))
		}
	}
}

func TestVerifySignatureMutations(t *testing.T) {
	body := []byte(`{"action":"opened"}`)
	sig := Sign("topsecret", body)

	// Flip each hex character in turn; every mutation must be rejected.
	for i := len("sha256="); i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == '0' {
			mutated[i] = '1'
		} else {
			mutated[i] = '0'
		}
		if VerifySignature("topsecret", body, string(mutated)) {
			t.Fatalf("mutated signature accepted at position %d", i)
		}
	}
}

func TestVerifySignatureFailsClosed(t *testing.T) {
	body := []byte("payload")
	sig := Sign("topsecret", body)

	if VerifySignature("", body, sig) {
		t.Error("missing secret must fail")
	}
	if VerifySignature("topsecret", body, "") {
		t.Error("missing signature header must fail")
	}
	if VerifySignature("wrongsecret", body, sig) {
		t.Error("wrong secret must fail")
	}
	if VerifySignature("topsecret", []byte("other payload"), sig) {
		t.Error("different body must fail")
	}
}

func TestVerifySignatureRequiresPrefix(t *testing.T) {
	body := []byte("payload")
	sig := Sign("topsecret", body)
	bare := strings.TrimPrefix(sig, "sha256=")

	if VerifySignature("topsecret", body, bare) {
		t.Error("signature without sha256= prefix must fail")
	}
}
