package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrEthical07/goGuard/permission"
)

// Endpoint paths, relative to the configured base URL.
const (
	PathLogin       = "admin/login"
	PathLogout      = "admin/logout"
	PathPermissions = "admin/permissions"
)

// GenericErrorMessage is surfaced when a failure response carries no
// message field.
const GenericErrorMessage = "request failed"

const maxErrorBody = 1 << 20

// Credentials is the login request payload.
type Credentials struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// LoginResponse is the decoded credential-exchange result. Permissions may
// be empty when the backend defers them to the permissions endpoint.
type LoginResponse struct {
	Token       string
	Permissions []string
}

// APIError carries a non-2xx response: the status code and the server's
// human-readable message, verbatim.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// LatencyObserver receives the duration of each completed API call.
type LatencyObserver func(d time.Duration)

// Client is the typed backend client.
type Client struct {
	baseURL        *url.URL
	httpClient     *http.Client
	observeLatency LatencyObserver
	userAgent      string
}

// SetUserAgent sets the User-Agent header for subsequent requests. Call it
// before the client is shared; it is not synchronized.
func (c *Client) SetUserAgent(ua string) {
	c.userAgent = ua
}

// NewClient builds a [Client]. httpClient must already carry the transport
// interceptor; observe may be nil.
func NewClient(baseURL string, httpClient *http.Client, observe LatencyObserver) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("api: base url required")
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: parsed, httpClient: httpClient, observeLatency: observe}, nil
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type loginData struct {
	Token       string `json:"token"`
	Permissions []any  `json:"permissions"`
}

// Login exchanges credentials for a token. Failures decode into [*APIError]
// with the server message verbatim.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, PathLogin, creds, &env); err != nil {
		return LoginResponse{}, err
	}

	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return LoginResponse{}, fmt.Errorf("api: decode login response: %w", err)
	}
	if data.Token == "" {
		return LoginResponse{}, errors.New("api: login response missing token")
	}

	return LoginResponse{
		Token:       data.Token,
		Permissions: permission.Normalize(data.Permissions),
	}, nil
}

// Logout posts the logout endpoint. No body is sent or expected; the caller
// treats any error as best-effort.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, PathLogout, nil, nil)
}

// FetchPermissions retrieves the effective permission keys for the current
// session. The endpoint may return plain strings or objects with a key
// field; both normalize to a flat list.
func (c *Client) FetchPermissions(ctx context.Context) ([]string, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, PathPermissions, nil, &env); err != nil {
		return nil, err
	}

	var raw []any
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		return nil, fmt.Errorf("api: decode permissions response: %w", err)
	}
	return permission.Normalize(raw), nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("api: parse path %s: %w", path, err)
	}
	target := c.baseURL.ResolveReference(ref).String()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.observeLatency != nil {
		c.observeLatency(time.Since(start))
	}
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: GenericErrorMessage}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		apiErr.Message = env.Message
	}
	return apiErr
}
