// Package remote talks to a vocuz data API over HTTP. Its stores satisfy the
// repository interfaces so the services run unchanged against either backend.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vocuz/vocuz/internal/api"
)

var (
	// ErrUnavailable indicates the API server could not be reached.
	ErrUnavailable = errors.New("vocuz api unavailable")

	// ErrUnexpectedStatus is returned for error responses without a known code.
	ErrUnexpectedStatus = errors.New("unexpected api response")
)

const defaultTimeout = 10 * time.Second

// Client is a bearer-authenticated JSON client. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Missions() *MissionStore { return &MissionStore{c: c} }
func (c *Client) Sessions() *FocusSessionStore { return &FocusSessionStore{c: c} }
func (c *Client) Notes() *NoteStore { return &NoteStore{c: c} }

// Ping checks that the server answers /health.
func (c *Client) Ping(ctx context.Context) error {
	var health api.HealthResponse
	return c.do(ctx, http.MethodGet, "/health", "", nil, &health)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token == "" {
		token = c.currentToken()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return responseError(method, path, resp.StatusCode, respBody)
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// responseError turns an error body back into the sentinel the server
// mapped it from.
func responseError(method, path string, status int, body []byte) error {
	var e api.ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil {
		if sentinel := api.ErrorForCode(e.Code); sentinel != nil {
			return fmt.Errorf("%s %s: %w", method, path, sentinel)
		}
		if e.Error != "" {
			return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, status, e.Error)
		}
	}
	return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, status, strings.TrimSpace(string(body)))
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
