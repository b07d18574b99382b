package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/DJRivera25/blogctl/internal/errors"
	"github.com/DJRivera25/blogctl/internal/log"
)

// TokenSource supplies the current bearer token, or "" when no session is held.
// The session store owns the token; the client only reads it per request.
type TokenSource func() string

// Client is the blog API client
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource

	logger *log.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithTokenSource sets the bearer token supplier
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.Tokens = ts }
}

// WithLogger sets the request logger
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a new blog API client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs an HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeBadResponse, "failed to marshal request body", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, "failed to create request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if c.Tokens != nil {
		if token := c.Tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError(err)
	}

	return resp, nil
}

// envelope is the JSON wrapper every endpoint uses: { "data": <payload> }
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// errorResponse represents an API error body
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// parseResponse unwraps the data envelope into target, mapping error statuses
// to the typed taxonomy. notFound is the code used for a 404 on this endpoint.
func parseResponse(resp *http.Response, target interface{}, notFound errors.ErrorCode) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return statusError(resp.StatusCode, body, notFound)
	}

	if target == nil {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrap(errors.ErrCodeBadResponse, "failed to decode response", err)
	}
	if len(env.Data) == 0 {
		return errors.New(errors.ErrCodeBadResponse, "response missing data envelope")
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return errors.Wrap(errors.ErrCodeBadResponse, "failed to decode response payload", err)
	}

	return nil
}

// statusError maps a non-2xx status to a typed error, carrying the server's
// message where one was provided.
func statusError(status int, body []byte, notFound errors.ErrorCode) error {
	detail := serverMessage(body)

	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if detail == "" {
			detail = "the server rejected the input"
		}
		return errors.New(errors.ErrCodeInvalidInput, detail)
	case http.StatusUnauthorized:
		if detail == "" {
			detail = "token missing or rejected"
		}
		return errors.NewUnauthorizedError(detail)
	case http.StatusForbidden:
		if detail == "" {
			detail = "perform this action"
		}
		return errors.NewForbiddenError(detail)
	case http.StatusNotFound:
		if detail == "" {
			detail = "resource not found"
		}
		return errors.New(notFound, detail)
	default:
		if detail != "" {
			return errors.New(errors.ErrCodeAPIFailure, fmt.Sprintf("request failed with status %d: %s", status, detail))
		}
		return errors.New(errors.ErrCodeAPIFailure, fmt.Sprintf("request failed with status %d", status))
	}
}

func serverMessage(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Error != "" {
			return errResp.Error
		}
		if errResp.Message != "" {
			return errResp.Message
		}
	}
	return ""
}
