package loops

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"awards-api/internal/config"
	"awards-api/internal/models"

	"github.com/hashicorp/go-retryablehttp"
)

// Contact lifecycle groups. A contact's group only ever moves forward along
// the funnel; the sync service decides which group to write.
const (
	GroupNominator     = "Nominator"
	GroupVoters        = "Voters"
	GroupNominee       = "Nominess"
	GroupNominatorLive = "Nominator Live"
)

// Client talks to the Loops contacts API. Upserts are two-step: find by
// email, then create or update depending on whether the contact exists.
type Client struct {
	httpClient *retryablehttp.Client
	baseURL    string
	apiKey     string
	enabled    bool
}

// NewClient creates a Loops client from config
func NewClient(cfg *config.LoopsConfig) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.RetryWaitMin = 500 * time.Millisecond
	httpClient.RetryWaitMax = 5 * time.Second
	httpClient.HTTPClient.Timeout = 15 * time.Second
	httpClient.Logger = nil

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		enabled:    cfg.Enabled,
	}
}

// Enabled reports whether syncing to Loops is turned on
func (c *Client) Enabled() bool {
	return c.enabled
}

type contactRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Company     string `json:"company,omitempty"`
	Country     string `json:"country,omitempty"`
	LinkedInURL string `json:"linkedinUrl,omitempty"`
	UserGroup   string `json:"userGroup,omitempty"`
	LiveURL     string `json:"liveUrl,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
}

type ContactRecord struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	UserGroup string `json:"userGroup"`
}

// UpsertContact creates the contact if unknown, otherwise updates it with
// the payload's user group and fields
func (c *Client) UpsertContact(ctx context.Context, payload *models.ContactPayload) error {
	first, last := splitName(payload.Name)
	req := contactRequest{
		Email:       payload.Email,
		FirstName:   first,
		LastName:    last,
		Company:     payload.Company,
		Country:     payload.Country,
		LinkedInURL: payload.LinkedInURL,
		UserGroup:   payload.UserGroup,
		LiveURL:     payload.LiveURL,
		Subcategory: payload.Subcategory,
	}

	existing, err := c.FindContact(ctx, payload.Email)
	if err != nil {
		return err
	}

	path := "/contacts/create"
	if existing != nil {
		path = "/contacts/update"
	}

	status, body, err := c.post(ctx, path, req)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("loops contact upsert failed with status %d: %s", status, string(body))
	}

	return nil
}

// FindContact looks a contact up by email. Returns nil when not found.
func (c *Client) FindContact(ctx context.Context, email string) (*ContactRecord, error) {
	path := "/contacts/find?email=" + url.QueryEscape(email)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build loops request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loops request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read loops response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("loops contact find failed with status %d: %s", resp.StatusCode, string(body))
	}

	// The find endpoint returns a list of matches
	var contacts []ContactRecord
	if err := json.Unmarshal(body, &contacts); err != nil {
		return nil, fmt.Errorf("failed to decode loops response: %w", err)
	}
	if len(contacts) == 0 {
		return nil, nil
	}

	return &contacts[0], nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (int, []byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal loops request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build loops request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("loops request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read loops response: %w", err)
	}

	slog.Debug("Loops API call", "path", path, "status", resp.StatusCode)

	return resp.StatusCode, respBody, nil
}

// splitName splits a full name into first and last on the first space
func splitName(name string) (string, string) {
	for i := 0; i < len(name); i++ {
		if name[i] == ' ' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}
