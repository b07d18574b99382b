package api

import (
	"context"
	"net/http"

	"github.com/DJRivera25/blogctl/internal/errors"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginPayload is the envelope data of a successful login
type loginPayload struct {
	Access string `json:"access"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	MobileNo string `json:"mobileNo"`
}

// Login authenticates with the backend and returns the bearer token. The
// token is not stored here; the session store owns it.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	var payload loginPayload
	if err := parseResponse(resp, &payload, errors.ErrCodeBlogNotFound); err != nil {
		return "", err
	}
	if payload.Access == "" {
		return "", errors.New(errors.ErrCodeBadResponse, "login response did not carry a token")
	}

	return payload.Access, nil
}

// Register creates a new user account. The caller logs in separately.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users/register", req)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil, errors.ErrCodeBlogNotFound)
}

// GetUserDetails resolves the current token into a user record
func (c *Client) GetUserDetails(ctx context.Context) (*UserDetails, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/users/details", nil)
	if err != nil {
		return nil, err
	}

	var details UserDetails
	if err := parseResponse(resp, &details, errors.ErrCodeBlogNotFound); err != nil {
		return nil, err
	}

	return &details, nil
}
