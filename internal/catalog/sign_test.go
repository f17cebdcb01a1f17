package catalog

import (
	"net/http"
	"testing"
	"time"

	"pantryctl/internal/session"
)

func TestSignature_Deterministic(t *testing.T) {
	s := &session.Session{DeviceID: "device-1", Key: "secret", User: "octocat"}
	at := time.Unix(1700000000, 0)

	first := Signature(s, "/v1/packages/pantry/foo", at)
	second := Signature(s, "/v1/packages/pantry/foo", at)
	if first != second {
		t.Fatalf("same inputs produced different signatures: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected hex-encoded sha256 (64 chars), got %d: %s", len(first), first)
	}
}

func TestSignature_VariesWithInputs(t *testing.T) {
	base := &session.Session{DeviceID: "device-1", Key: "secret"}
	at := time.Unix(1700000000, 0)
	reference := Signature(base, "/v1/packages/pantry/foo", at)

	tests := []struct {
		name string
		sig  string
	}{
		{name: "different path", sig: Signature(base, "/v1/packages/pantry/bar", at)},
		{name: "different timestamp", sig: Signature(base, "/v1/packages/pantry/foo", at.Add(time.Second))},
		{name: "different key", sig: Signature(&session.Session{DeviceID: "device-1", Key: "other"}, "/v1/packages/pantry/foo", at)},
		{name: "different device", sig: Signature(&session.Session{DeviceID: "device-2", Key: "secret"}, "/v1/packages/pantry/foo", at)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sig == reference {
				t.Fatalf("expected signature to change, got same value %s", tt.sig)
			}
		})
	}
}

func TestSignRequestHeaders(t *testing.T) {
	s := &session.Session{DeviceID: "device-1", Key: "secret", User: "octocat"}
	at := time.Unix(1700000000, 0)

	h := make(http.Header)
	signRequestHeaders(h, s, "/v1/posts", at)

	if got := h.Get(HeaderAuthorization); got != "signature "+Signature(s, "/v1/posts", at) {
		t.Fatalf("unexpected Authorization header: %s", got)
	}
	if got := h.Get(HeaderTimestamp); got != "1700000000" {
		t.Fatalf("unexpected timestamp header: %s", got)
	}
	if got := h.Get(HeaderDeviceID); got != "device-1" {
		t.Fatalf("unexpected device id header: %s", got)
	}
	if got := h.Get(HeaderUser); got != "octocat" {
		t.Fatalf("unexpected user header: %s", got)
	}
}

func TestSignRequestHeaders_NoUser(t *testing.T) {
	s := &session.Session{DeviceID: "device-1", Key: "secret"}
	h := make(http.Header)
	signRequestHeaders(h, s, "/v1/posts", time.Unix(1700000000, 0))
	if _, ok := h[http.CanonicalHeaderKey(HeaderUser)]; ok {
		t.Fatal("user header must be absent for sessions without a user")
	}
}
