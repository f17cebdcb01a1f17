package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"pantryctl/internal/catalog"
	"pantryctl/internal/session"
)

func TestClient_URL(t *testing.T) {
	client, err := catalog.NewClient(context.Background(), "https://api.example.com/base")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "simple join", path: "v1/packages", want: "https://api.example.com/base/v1/packages"},
		{name: "leading slash trimmed", path: "/v1/packages", want: "https://api.example.com/base/v1/packages"},
		{name: "nested package name", path: "v1/packages/pantry/foo", want: "https://api.example.com/base/v1/packages/pantry/foo"},
		{name: "query preserved", path: "v1/posts?tag=guides", want: "https://api.example.com/base/v1/posts?tag=guides"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := client.URL(tt.path).String(); got != tt.want {
				t.Fatalf("URL(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestClient_GetJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/packages/pantry/foo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "42")
		_, _ = w.Write([]byte(`{"full_name":"pantry/foo","version":"1.2.3"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := catalog.NewClient(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	var out struct {
		FullName string `json:"full_name"`
		Version  string `json:"version"`
	}
	resp, err := client.GetJSON(context.Background(), "v1/packages/pantry/foo", &out)
	if err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if out.FullName != "pantry/foo" || out.Version != "1.2.3" {
		t.Fatalf("unexpected decode result: %+v", out)
	}
	if got := resp.Header.Get("X-RateLimit-Remaining"); got != "42" {
		t.Fatalf("expected rate limit header on returned response, got %q", got)
	}
}

func TestClient_GetJSON_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, err := catalog.NewClient(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.GetJSON(context.Background(), "v1/packages/missing", nil)
	var se *catalog.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", se.StatusCode)
	}
	if !catalog.IsNotFound(err) {
		t.Fatalf("IsNotFound should report true for %v", err)
	}
}

func TestClient_SignsRequestsWithSession(t *testing.T) {
	var gotAuth, gotDevice, gotTS string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(catalog.HeaderAuthorization)
		gotDevice = r.Header.Get(catalog.HeaderDeviceID)
		gotTS = r.Header.Get(catalog.HeaderTimestamp)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	s := &session.Session{DeviceID: "device-1", Key: "secret", User: "octocat"}
	client, err := catalog.NewClient(context.Background(), server.URL,
		catalog.WithSessions(session.Static{S: s}))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	var out []any
	if _, err := client.GetJSON(context.Background(), "v1/posts", &out); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}

	if gotDevice != "device-1" {
		t.Fatalf("expected device id header, got %q", gotDevice)
	}
	unix, err := strconv.ParseInt(gotTS, 10, 64)
	if err != nil {
		t.Fatalf("unparseable timestamp header %q: %v", gotTS, err)
	}
	if want := "signature " + catalog.Signature(s, "/v1/posts", time.Unix(unix, 0)); gotAuth != want {
		t.Fatalf("Authorization = %q, want %q", gotAuth, want)
	}
}

func TestClient_UnsignedWithoutSession(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(catalog.HeaderAuthorization)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	// Provider returns no session (logged out): requests go out unsigned.
	client, err := catalog.NewClient(context.Background(), server.URL,
		catalog.WithSessions(session.Static{}))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	var out []any
	if _, err := client.GetJSON(context.Background(), "v1/posts", &out); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected unsigned request, got Authorization %q", gotAuth)
	}
}

func TestClient_BearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := catalog.NewClient(context.Background(), server.URL,
		catalog.WithBearerToken("tok-123"))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	var out []any
	if _, err := client.GetJSON(context.Background(), "v1/posts", &out); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
}
