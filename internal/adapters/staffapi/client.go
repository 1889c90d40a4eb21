// Package staffapi is the HTTP client for the staff directory service,
// the second leg of the login handshake.
package staffapi

import (
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

const maxResponseBytes = 1 << 20

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

var _ ports.StaffDirectoryClient = (*Client)(nil)

type profileResponse struct {
	StaffID     string `json:"staffId"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	NationalID  string `json:"nationalId"`
	DateOfBirth string `json:"dateOfBirth"`
	BranchID    string `json:"branchId"`
}

// FetchProfile loads the staff record for userID, authenticated with
// the freshly issued bearer token. A non-2xx status or an unreadable
// payload is domain.ErrProfileFailed.
func (c *Client) FetchProfile(ctx context.Context, accessToken string, userID string) (domain.StaffProfile, error) {
	if accessToken == "" {
		return domain.StaffProfile{}, errors.New("access token is required")
	}
	if userID == "" {
		return domain.StaffProfile{}, errors.New("user id is required")
	}

	endpoint, err := buildAPIURL(c.BaseURL, "/employees/"+url.PathEscape(userID))
	if err != nil {
		return domain.StaffProfile{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.StaffProfile{}, fmt.Errorf("create profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return domain.StaffProfile{}, fmt.Errorf("request profile: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.StaffProfile{}, fmt.Errorf("%w: status %d", domain.ErrProfileFailed, resp.StatusCode)
	}

	var payload profileResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return domain.StaffProfile{}, fmt.Errorf("%w: decode profile response: %s", domain.ErrProfileFailed, err)
	}

	return domain.StaffProfile{
		StaffID:     payload.StaffID,
		Name:        payload.Name,
		Address:     payload.Address,
		Phone:       payload.Phone,
		NationalID:  payload.NationalID,
		DateOfBirth: payload.DateOfBirth,
		BranchID:    payload.BranchID,
	}, nil
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
