package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"linkshortener/internal/domain"
)

// Client represents an HTTP client for the link shortener management API
type Client struct {
	serverURL  string
	httpClient *http.Client
}

// NewClient creates a new link shortener client
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateLink creates a link
func (c *Client) CreateLink(ctx context.Context, req domain.CreateLinkRequest) (*domain.Link, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/links", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var link domain.Link
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &link, nil
}

// ListLinks retrieves all links
func (c *Client) ListLinks(ctx context.Context) ([]*domain.Link, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/links", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var links []*domain.Link
	if err := json.NewDecoder(resp.Body).Decode(&links); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return links, nil
}

// DeleteLink deletes a link by slug
func (c *Client) DeleteLink(ctx context.Context, slug string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.serverURL+"/links/"+slug, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("slug '%s' not found", slug)
	}

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return nil
}

// GetLinkClicks retrieves the click events for a slug
func (c *Client) GetLinkClicks(ctx context.Context, slug string) ([]*domain.ClickEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/links/"+slug+"/clicks", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("slug '%s' not found", slug)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var clicks []*domain.ClickEvent
	if err := json.NewDecoder(resp.Body).Decode(&clicks); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return clicks, nil
}
