package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// --- Helpers ---

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL)
	return client, server
}

// --- Tests ---

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	if _, err := client.Get(context.Background(), "/v1/auth/validate"); err != nil {
		t.Fatalf("Get() returned an unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header before a token is set, got %q", gotAuth)
	}

	client.SetToken("secret-token")
	if _, err := client.Get(context.Background(), "/v1/auth/validate"); err != nil {
		t.Fatalf("Get() returned an unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}

	client.SetToken("")
	if _, err := client.Get(context.Background(), "/v1/auth/validate"); err != nil {
		t.Fatalf("Get() returned an unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected cleared Authorization header, got %q", gotAuth)
	}
}

func TestClient_PostEncodesBody(t *testing.T) {
	var gotBody map[string]string
	var gotContentType string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := client.Post(context.Background(), "/v1/blocklist", map[string]string{"address": "abc"})
	if err != nil {
		t.Fatalf("Post() returned an unexpected error: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
	if gotBody["address"] != "abc" {
		t.Errorf("expected posted address 'abc', got %q", gotBody["address"])
	}
}

func TestClient_APIError(t *testing.T) {
	t.Run("message extracted", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
		}))
		defer server.Close()

		_, err := client.Post(context.Background(), "/v1/auth/signin", map[string]string{})
		apiErr, ok := err.(*APIError)
		if !ok {
			t.Fatalf("expected *APIError, got %T (%v)", err, err)
		}
		if apiErr.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", apiErr.StatusCode)
		}
		if apiErr.Message != "invalid credentials" {
			t.Errorf("expected server message, got %q", apiErr.Message)
		}
		if IsAuthFailure(err) {
			t.Error("400 must not be reported as an auth failure")
		}
	})

	t.Run("auth failure", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := client.Get(context.Background(), "/v1/blocklist")
		if !IsAuthFailure(err) {
			t.Errorf("expected auth failure, got %v", err)
		}
	})

	t.Run("transport error is not an APIError", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // force a connection error

		_, err := client.Get(context.Background(), "/v1/blocklist")
		if err == nil {
			t.Fatal("expected an error from a closed server")
		}
		if IsAuthFailure(err) {
			t.Error("transport errors must not be reported as auth failures")
		}
	})
}

func TestClient_OnResponse(t *testing.T) {
	status := http.StatusOK
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	type observed struct {
		status int
		method string
		path   string
	}
	var calls []observed
	eject := client.OnResponse(func(statusCode int, method, path string) {
		calls = append(calls, observed{statusCode, method, path})
	})

	client.Get(context.Background(), "/v1/auth/validate")
	if len(calls) != 1 {
		t.Fatalf("expected 1 observation after a success, got %d", len(calls))
	}
	if calls[0] != (observed{http.StatusOK, http.MethodGet, "/v1/auth/validate"}) {
		t.Errorf("unexpected observation: %+v", calls[0])
	}

	// Non-2xx responses must be observed exactly once too.
	status = http.StatusUnauthorized
	client.Delete(context.Background(), "/v1/blocklist/7", nil)
	if len(calls) != 2 {
		t.Fatalf("expected 2 observations after a failure, got %d", len(calls))
	}
	if calls[1].status != http.StatusUnauthorized {
		t.Errorf("expected observed 401, got %d", calls[1].status)
	}

	// Transport errors produce no response and no observation.
	badClient := NewClient("http://127.0.0.1:1")
	badClient.OnResponse(func(statusCode int, method, path string) {
		t.Error("observer must not fire for transport errors")
	})
	badClient.Get(context.Background(), "/v1/blocklist")

	eject()
	client.Get(context.Background(), "/v1/auth/validate")
	if len(calls) != 2 {
		t.Errorf("expected no observations after eject, got %d", len(calls))
	}
}
