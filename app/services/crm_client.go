// Package services provides integrations with external systems
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bpnlt/tv-planner/app/dto"
)

// CRMClient talks to the agency CRM. Campaign confirmation pushes a plan
// summary there; the planner can also pull CRM campaigns in as local drafts.
type CRMClient interface {
	ListRemoteCampaigns(ctx context.Context) ([]dto.RemoteCampaign, error)
	GetRemoteCampaign(ctx context.Context, remoteID string) (*dto.RemoteCampaign, error)
	CreateRemotePlan(ctx context.Context, plan *dto.RemotePlan) error
	DeleteRemotePlan(ctx context.Context, campaignUUID string) error
}

// HTTPCRMClient implements CRMClient against the CRM's JSON API
type HTTPCRMClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewHTTPCRMClient constructs a CRM client with a bounded request timeout
func NewHTTPCRMClient(baseURL, apiKey string, timeout time.Duration) *HTTPCRMClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPCRMClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// ListRemoteCampaigns fetches every campaign visible to the planner's API key
func (c *HTTPCRMClient) ListRemoteCampaigns(ctx context.Context) ([]dto.RemoteCampaign, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/campaigns", nil)
	if err != nil {
		return nil, err
	}
	c.auth(req)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crm list campaigns: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crm list campaigns: unexpected status %d", resp.StatusCode)
	}
	var out []dto.RemoteCampaign
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("crm list campaigns: decode: %w", err)
	}
	return out, nil
}

// GetRemoteCampaign fetches one CRM campaign by its remote id
func (c *HTTPCRMClient) GetRemoteCampaign(ctx context.Context, remoteID string) (*dto.RemoteCampaign, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/campaigns/"+remoteID, nil)
	if err != nil {
		return nil, err
	}
	c.auth(req)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crm get campaign %s: %w", remoteID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crm get campaign %s: unexpected status %d", remoteID, resp.StatusCode)
	}
	var out dto.RemoteCampaign
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("crm get campaign %s: decode: %w", remoteID, err)
	}
	return &out, nil
}

// CreateRemotePlan pushes a confirmed plan summary to the CRM
func (c *HTTPCRMClient) CreateRemotePlan(ctx context.Context, plan *dto.RemotePlan) error {
	body, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/plans", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.auth(req)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("crm create plan: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("crm create plan: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// DeleteRemotePlan removes a previously pushed plan from the CRM
func (c *HTTPCRMClient) DeleteRemotePlan(ctx context.Context, campaignUUID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/api/plans/"+campaignUUID, nil)
	if err != nil {
		return err
	}
	c.auth(req)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("crm delete plan: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("crm delete plan: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *HTTPCRMClient) auth(req *http.Request) {
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
}

// NoopCRMClient is used when no CRM is configured. Reads return empty results
// and writes succeed without doing anything.
type NoopCRMClient struct{}

func (NoopCRMClient) ListRemoteCampaigns(ctx context.Context) ([]dto.RemoteCampaign, error) {
	return nil, nil
}

func (NoopCRMClient) GetRemoteCampaign(ctx context.Context, remoteID string) (*dto.RemoteCampaign, error) {
	return nil, nil
}

func (NoopCRMClient) CreateRemotePlan(ctx context.Context, plan *dto.RemotePlan) error { return nil }

func (NoopCRMClient) DeleteRemotePlan(ctx context.Context, campaignUUID string) error { return nil }
