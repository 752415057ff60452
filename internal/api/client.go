package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sort"
	"strconv"
	"sync"
	"time"

	"walletwatch/internal/telemetry"
)

// ResponseObserver is invoked once for every HTTP response that flows through
// the client, including non-2xx responses. Transport failures that produce no
// response are not observed.
type ResponseObserver func(statusCode int, method, path string)

// Client handles dashboard API interactions. The bearer token is shared
// process-wide and mutated only by the session layer.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu    sync.RWMutex
	token string

	obsMu     sync.Mutex
	observers map[int]ResponseObserver
	nextObsID int
}

// NewClient creates a new dashboard API client. A cookie jar is installed so
// session cookies set by the backend are carried on subsequent requests.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
		observers: make(map[int]ResponseObserver),
	}
}

// SetToken sets the bearer token attached to every outgoing request. An empty
// token clears the Authorization header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnResponse registers a response observer and returns a function that
// unregisters it. Observers are notified in registration order.
func (c *Client) OnResponse(obs ResponseObserver) func() {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()

	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = obs

	return func() {
		c.obsMu.Lock()
		defer c.obsMu.Unlock()
		delete(c.observers, id)
	}
}

func (c *Client) notify(statusCode int, method, path string) {
	c.obsMu.Lock()
	ids := make([]int, 0, len(c.observers))
	for id := range c.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	observers := make([]ResponseObserver, 0, len(ids))
	for _, id := range ids {
		observers = append(observers, c.observers[id])
	}
	c.obsMu.Unlock()

	for _, obs := range observers {
		obs(statusCode, method, path)
	}
}

// Get issues a GET request against path and returns the response body.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Delete issues a DELETE request. body may be nil; when present it is
// JSON-encoded (used for delete-by-address).
func (c *Client) Delete(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	url := c.BaseURL + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		reader = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	telemetry.GatewayRequests.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode == http.StatusUnauthorized {
		telemetry.AuthFailures.Inc()
	}
	c.notify(resp.StatusCode, method, path)

	respBody, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewAPIError(resp.StatusCode, messageFromBody(respBody))
	}
	if readErr != nil {
		return nil, fmt.Errorf("failed to read response: %w", readErr)
	}

	return respBody, nil
}
