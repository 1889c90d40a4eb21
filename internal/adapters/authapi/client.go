// Package authapi is the HTTP client for the identity service: the
// credential exchange that opens a session, and the admin-only account
// registration endpoint.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/lavanderia/laundries-cli/internal/domain"
	"github.com/lavanderia/laundries-cli/internal/ports"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"

	maxResponseBytes = 1 << 20
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

var _ ports.IdentityClient = (*Client)(nil)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool `json:"success"`
	Data    struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		Role         string `json:"role"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"data"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login exchanges credentials for an identity and token pair. A non-2xx
// status or an explicit success=false payload is domain.ErrLoginFailed;
// transport errors pass through for the caller to classify.
func (c *Client) Login(ctx context.Context, creds ports.Credentials) (ports.LoginResult, error) {
	endpoint, err := buildAPIURL(c.BaseURL, loginPath)
	if err != nil {
		return ports.LoginResult{}, err
	}

	body, err := json.Marshal(loginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("request login: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ports.LoginResult{}, fmt.Errorf("%w: status %d", domain.ErrLoginFailed, resp.StatusCode)
	}

	var payload loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return ports.LoginResult{}, fmt.Errorf("%w: decode login response: %s", domain.ErrLoginFailed, err)
	}

	if !payload.Success {
		return ports.LoginResult{}, fmt.Errorf("%w: identity service rejected credentials", domain.ErrLoginFailed)
	}
	if payload.Data.AccessToken == "" || payload.Data.ID == "" {
		return ports.LoginResult{}, fmt.Errorf("%w: login response missing required fields", domain.ErrLoginFailed)
	}

	return ports.LoginResult{
		User: domain.User{
			ID:    payload.Data.ID,
			Email: payload.Data.Email,
			Role:  domain.Role(payload.Data.Role),
		},
		AccessToken:  payload.Data.AccessToken,
		RefreshToken: payload.Data.RefreshToken,
	}, nil
}

// Register creates an account with the given role. Requires the bearer
// token of an already authenticated administrator.
func (c *Client) Register(ctx context.Context, accessToken string, creds ports.Credentials, role domain.Role) error {
	if accessToken == "" {
		return errors.New("access token is required")
	}

	endpoint, err := buildAPIURL(c.BaseURL, registerPath)
	if err != nil {
		return err
	}

	body, err := json.Marshal(registerRequest{
		Email:    creds.Email,
		Password: creds.Password,
		Role:     string(role),
	})
	if err != nil {
		return fmt.Errorf("encode register request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create register request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("request register: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("register account: status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
