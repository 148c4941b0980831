package prayerkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/lumenworks/prayerkit/credstore"
)

func TestTransportStampsEveryAuthenticatedRequest(t *testing.T) {
	core, _, _ := newTestCore(t, credstore.NewMemoryStore())
	if err := core.Session().Login(context.Background(), "tok-a", testUser("a")); err != nil {
		t.Fatalf("login: %v", err)
	}

	var seenAuth, seenType, seenAgent, seenReqID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		seenType = r.Header.Get("Content-Type")
		seenAgent = r.Header.Get("User-Agent")
		seenReqID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := core.HTTPClient(nil)
	req, err := http.NewRequestWithContext(
		WithRequestID(context.Background(), "req-123"),
		http.MethodGet, server.URL+"/v1/prayers", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	resp.Body.Close()

	if seenAuth != "Bearer tok-a" {
		t.Fatalf("authorization header %q", seenAuth)
	}
	if seenType != "application/json" {
		t.Fatalf("content type %q", seenType)
	}
	if seenAgent != "prayerkit/1" {
		t.Fatalf("user agent %q", seenAgent)
	}
	if seenReqID != "req-123" {
		t.Fatalf("request id %q", seenReqID)
	}
}

func TestTransportFailsFastWithoutSession(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	core, _, _ := newTestCore(t, credstore.NewMemoryStore())
	client := core.HTTPClient(nil)

	_, err := client.Get(server.URL + "/v1/prayers")
	if err == nil {
		t.Fatal("expected error for anonymous request")
	}
	if hits.Load() != 0 {
		t.Fatalf("anonymous request must not reach the network, server saw %d", hits.Load())
	}
}

func TestTransportSkipsStampWhenMarkedAnonymous(t *testing.T) {
	var seenAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	core, _, _ := newTestCore(t, credstore.NewMemoryStore())
	client := core.HTTPClient(nil)

	req, err := http.NewRequestWithContext(
		WithoutAuthorization(context.Background()),
		http.MethodPost, server.URL+"/v1/auth/login", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	resp.Body.Close()

	if seenAuth != "" {
		t.Fatalf("login exchange must go out unstamped, got %q", seenAuth)
	}
}

func TestTransport401InvalidatesSessionStructurally(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	core, _, _ := newTestCore(t, credstore.NewMemoryStore())
	if err := core.Session().Login(context.Background(), "tok-a", testUser("a")); err != nil {
		t.Fatalf("login: %v", err)
	}

	var expired atomic.Int64
	core.Bus().Subscribe(EventSessionExpired, func(any) {
		expired.Add(1)
	})

	client := core.HTTPClient(nil)
	resp, err := client.Get(server.URL + "/v1/prayers")
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	resp.Body.Close()

	if core.Session().IsLoggedIn() {
		t.Fatal("expected invalidated session after server 401")
	}
	if expired.Load() != 1 {
		t.Fatalf("expected one session-expired event, got %d", expired.Load())
	}
}
