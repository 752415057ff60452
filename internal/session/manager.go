package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"walletwatch/internal/api"
	"walletwatch/internal/store"
	"walletwatch/internal/telemetry"
)

// genericSignInError is shown when the backend supplies no message of its own.
const genericSignInError = "an error occurred during sign-in"

// State is a snapshot of the current session.
type State struct {
	Authenticated bool
	Loading       bool
	User          Profile
	LastError     string
}

// Credentials are the fields posted during sign-in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Manager is the single source of truth for authentication state. It observes
// every gateway response and demotes the session on any authorization failure.
type Manager struct {
	gateway *api.Client
	cache   store.Store

	mu    sync.Mutex
	state State

	listenerMu sync.Mutex
	listeners  []func()

	eject func()
}

// NewManager creates a session manager bound to gateway and cache and installs
// its authorization-failure observer for the process lifetime. The session
// starts in the loading, unauthenticated state.
func NewManager(gateway *api.Client, cache store.Store) *Manager {
	m := &Manager{
		gateway: gateway,
		cache:   cache,
		state:   State{Loading: true},
	}
	m.eject = gateway.OnResponse(func(statusCode int, method, path string) {
		if statusCode == http.StatusUnauthorized {
			m.handleAuthLost(method, path)
		}
	})
	return m
}

// Close unregisters the gateway observer. Only used in tests; in normal
// operation the observer lives as long as the process.
func (m *Manager) Close() {
	if m.eject != nil {
		m.eject()
	}
}

// State returns a snapshot of the session.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.state
	if m.state.User != nil {
		snapshot.User = make(Profile, len(m.state.User))
		for k, v := range m.state.User {
			snapshot.User[k] = v
		}
	}
	return snapshot
}

// OnAuthLost registers a listener invoked whenever an authorization failure is
// observed on any endpoint. The UI shell subscribes and returns the user to
// the sign-in entry point.
func (m *Manager) OnAuthLost(fn func()) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// handleAuthLost fires exactly once per failing response: the gateway invokes
// each observer once per response, and the original error still propagates to
// the caller that issued the request.
func (m *Manager) handleAuthLost(method, path string) {
	telemetry.LogInfo("authorization lost, resetting session", "method", method, "path", path)

	m.mu.Lock()
	m.state = State{}
	m.mu.Unlock()

	m.gateway.SetToken("")
	if err := m.cache.Clear(); err != nil {
		telemetry.LogError("failed to clear session cache", err)
	}

	m.listenerMu.Lock()
	listeners := make([]func(), len(m.listeners))
	copy(listeners, m.listeners)
	m.listenerMu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Restore loads the cached token and profile from the durable store. Called
// once at startup, before the initial CheckAuth probe.
func (m *Manager) Restore() {
	if token, err := m.cache.Get(store.KeyToken); err == nil && token != "" {
		m.gateway.SetToken(token)
	}
	raw, err := m.cache.Get(store.KeyUser)
	if err != nil {
		return
	}
	var profile Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		telemetry.LogError("failed to decode cached profile", err)
		return
	}
	m.mu.Lock()
	m.state.User = profile
	m.mu.Unlock()
}

// SetToken sets the process-wide bearer token and persists it. An empty token
// clears both the header and the cached value.
func (m *Manager) SetToken(token string) {
	m.gateway.SetToken(token)
	if token == "" {
		if err := m.cache.Delete(store.KeyToken); err != nil {
			telemetry.LogError("failed to delete cached token", err)
		}
		return
	}
	if err := m.cache.Set(store.KeyToken, token); err != nil {
		telemetry.LogError("failed to persist token", err)
	}
}

// CheckAuth probes the backend for session validity. Network errors and
// rejections alike demote the session; the probe never fails its caller.
func (m *Manager) CheckAuth(ctx context.Context) {
	body, err := m.gateway.Get(ctx, "/v1/auth/validate")

	valid := false
	if err != nil {
		telemetry.LogError("error checking authentication", err)
	} else {
		var payload struct {
			Valid bool `json:"valid"`
		}
		if decodeErr := json.Unmarshal(body, &payload); decodeErr != nil {
			telemetry.LogError("failed to decode validation response", decodeErr)
		} else {
			valid = payload.Valid
		}
	}

	m.mu.Lock()
	m.state.Authenticated = valid
	m.state.Loading = false
	m.mu.Unlock()
}

// SignIn exchanges credentials for a session. On success the returned profile
// is cached (state and durable store) and authoritative state is established
// by exactly one follow-up CheckAuth; the sign-in body is never trusted for
// the authentication flag. On failure the user-facing message is recorded in
// LastError and returned, and session state is not transitioned.
func (m *Manager) SignIn(ctx context.Context, creds Credentials) error {
	body, err := m.gateway.Post(ctx, "/v1/auth/signin", creds)
	if err != nil {
		message := genericSignInError
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			message = apiErr.Message
		}
		m.mu.Lock()
		m.state.LastError = message
		m.mu.Unlock()
		return errors.New(message)
	}

	var payload map[string]any
	if decodeErr := json.Unmarshal(body, &payload); decodeErr != nil {
		telemetry.LogDebug("sign-in response is not an object", "error", decodeErr)
	}

	if token, ok := payload["token"].(string); ok && token != "" {
		m.SetToken(token)
	}

	if profile := extractProfile(payload); profile != nil {
		m.mu.Lock()
		m.state.User = profile
		m.mu.Unlock()
		if encoded, encErr := json.Marshal(profile); encErr == nil {
			if err := m.cache.Set(store.KeyUser, string(encoded)); err != nil {
				telemetry.LogError("failed to persist profile", err)
			}
		}
	}

	m.CheckAuth(ctx)

	m.mu.Lock()
	m.state.LastError = ""
	m.mu.Unlock()
	return nil
}

// SignOut posts the logout request and, regardless of outcome, resets the
// session and clears the durable token and profile.
func (m *Manager) SignOut(ctx context.Context) {
	if _, err := m.gateway.Post(ctx, "/v1/auth/logout", struct{}{}); err != nil {
		telemetry.LogError("error during sign-out", err)
	}

	m.mu.Lock()
	m.state = State{}
	m.mu.Unlock()

	m.gateway.SetToken("")
	if err := m.cache.Delete(store.KeyToken); err != nil {
		telemetry.LogError("failed to delete cached token", err)
	}
	if err := m.cache.Delete(store.KeyUser); err != nil {
		telemetry.LogError("failed to delete cached profile", err)
	}
}

// extractProfile pulls a user object out of the sign-in response under the
// documented fallback priority: user, then profile, then the body itself.
func extractProfile(payload map[string]any) Profile {
	if payload == nil {
		return nil
	}
	if user, ok := payload["user"].(map[string]any); ok {
		return Profile(user)
	}
	if profile, ok := payload["profile"].(map[string]any); ok {
		return Profile(profile)
	}
	return Profile(payload)
}
