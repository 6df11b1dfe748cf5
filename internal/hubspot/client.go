package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"awards-api/internal/config"
	"awards-api/internal/models"

	"github.com/hashicorp/go-retryablehttp"
)

// Client talks to the HubSpot CRM v3 objects API. Contact and company
// upserts are idempotent: a 409 conflict on create is resolved by patching
// the existing object.
type Client struct {
	httpClient *retryablehttp.Client
	baseURL    string
	token      string
	enabled    bool
}

// NewClient creates a HubSpot client from config
func NewClient(cfg *config.HubSpotConfig) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.RetryWaitMin = 500 * time.Millisecond
	httpClient.RetryWaitMax = 5 * time.Second
	httpClient.HTTPClient.Timeout = 15 * time.Second
	httpClient.Logger = nil

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		enabled:    cfg.Enabled,
	}
}

// Enabled reports whether syncing to HubSpot is turned on
func (c *Client) Enabled() bool {
	return c.enabled
}

type contactProperties struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstname,omitempty"`
	LastName    string `json:"lastname,omitempty"`
	Company     string `json:"company,omitempty"`
	JobTitle    string `json:"jobtitle,omitempty"`
	Country     string `json:"country,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
}

type companyProperties struct {
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
}

type conflictResponse struct {
	Message string `json:"message"`
}

// UpsertContact creates or updates a HubSpot contact keyed by email
func (c *Client) UpsertContact(ctx context.Context, payload *models.ContactPayload) error {
	first, last := splitName(payload.Name)
	props := contactProperties{
		Email:       payload.Email,
		FirstName:   first,
		LastName:    last,
		Company:     payload.Company,
		JobTitle:    payload.JobTitle,
		Country:     payload.Country,
		LinkedInURL: payload.LinkedInURL,
	}

	status, body, err := c.post(ctx, "/crm/v3/objects/contacts", map[string]interface{}{"properties": props})
	if err != nil {
		return err
	}

	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusConflict:
		// Contact already exists; the conflict message carries its ID
		existingID := parseConflictID(body)
		if existingID == "" {
			return fmt.Errorf("hubspot contact conflict without existing id: %s", string(body))
		}
		return c.patch(ctx, "/crm/v3/objects/contacts/"+existingID, map[string]interface{}{"properties": props})
	default:
		return fmt.Errorf("hubspot contact upsert failed with status %d: %s", status, string(body))
	}
}

// UpsertCompany creates or updates a HubSpot company keyed by name
func (c *Client) UpsertCompany(ctx context.Context, name, domain string) error {
	props := companyProperties{Name: name, Domain: domain}

	status, body, err := c.post(ctx, "/crm/v3/objects/companies", map[string]interface{}{"properties": props})
	if err != nil {
		return err
	}

	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusConflict:
		existingID := parseConflictID(body)
		if existingID == "" {
			return fmt.Errorf("hubspot company conflict without existing id: %s", string(body))
		}
		return c.patch(ctx, "/crm/v3/objects/companies/"+existingID, map[string]interface{}{"properties": props})
	default:
		return fmt.Errorf("hubspot company upsert failed with status %d: %s", status, string(body))
	}
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (int, []byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) patch(ctx context.Context, path string, body interface{}) error {
	status, respBody, err := c.do(ctx, http.MethodPatch, path, body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("hubspot update failed with status %d: %s", status, string(respBody))
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (int, []byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal hubspot request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build hubspot request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("hubspot request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read hubspot response: %w", err)
	}

	slog.Debug("HubSpot API call", "method", method, "path", path, "status", resp.StatusCode)

	return resp.StatusCode, respBody, nil
}

// parseConflictID extracts the existing object ID out of HubSpot's 409
// message, which reads "Contact already exists. Existing ID: 12345"
func parseConflictID(body []byte) string {
	var conflict conflictResponse
	if err := json.Unmarshal(body, &conflict); err != nil {
		return ""
	}

	const marker = "Existing ID: "
	idx := bytes.Index([]byte(conflict.Message), []byte(marker))
	if idx < 0 {
		return ""
	}

	id := conflict.Message[idx+len(marker):]
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return id[:i]
		}
	}
	return id
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
