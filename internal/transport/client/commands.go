package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"linkshortener/internal/domain"
)

// Commands provides command-line operations for the client
type Commands struct {
	client *Client
}

// NewCommands creates a new Commands instance
func NewCommands(client *Client) *Commands {
	return &Commands{
		client: client,
	}
}

// Create creates a link and displays the result
func (c *Commands) Create(ctx context.Context, targetURL, slug string, expiresInSecs *int64) error {
	link, err := c.client.CreateLink(ctx, domain.CreateLinkRequest{
		Slug:          slug,
		TargetURL:     targetURL,
		ExpiresInSecs: expiresInSecs,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Link created:\n")
	fmt.Printf("Slug: %s\n", link.Slug)
	fmt.Printf("Shortened URL: %s\n", link.ShortenedURL)
	fmt.Printf("Target URL: %s\n", link.TargetURL)
	fmt.Printf("Created At: %s\n", link.CreatedAt.Format(time.RFC3339))
	if link.ExpiresAt != nil {
		fmt.Printf("Expires At: %s\n", link.ExpiresAt.Format(time.RFC3339))
	} else {
		fmt.Printf("Expires At: Never\n")
	}

	return nil
}

// Delete removes a link
func (c *Commands) Delete(ctx context.Context, slug string) error {
	err := c.client.DeleteLink(ctx, slug)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Printf("Slug '%s' not found\n", slug)
			return nil
		}
		return err
	}

	fmt.Printf("Link '%s' deleted successfully\n", slug)
	return nil
}

// List displays all links in a table format
func (c *Commands) List(ctx context.Context) error {
	links, err := c.client.ListLinks(ctx)
	if err != nil {
		return err
	}

	if len(links) == 0 {
		fmt.Println("No links found")
		return nil
	}

	fmt.Printf("%-10s %-50s %-20s %-20s %s\n", "Slug", "Target URL", "Created At", "Expires At", "Clicks")
	fmt.Println(strings.Repeat("-", 110))

	for _, link := range links {
		expires := "Never"
		if link.ExpiresAt != nil {
			expires = link.ExpiresAt.Format("2006-01-02 15:04:05")
		}

		targetURL := link.TargetURL
		if len(targetURL) > 50 {
			targetURL = targetURL[:47] + "..."
		}

		fmt.Printf("%-10s %-50s %-20s %-20s %d\n",
			link.Slug,
			targetURL,
			link.CreatedAt.Format("2006-01-02 15:04:05"),
			expires,
			link.Clicks,
		)
	}

	return nil
}

// Clicks displays the click events recorded for a slug
func (c *Commands) Clicks(ctx context.Context, slug string) error {
	clicks, err := c.client.GetLinkClicks(ctx, slug)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Printf("Slug '%s' not found\n", slug)
			return nil
		}
		return err
	}

	if len(clicks) == 0 {
		fmt.Printf("No clicks recorded for '%s'\n", slug)
		return nil
	}

	fmt.Printf("%-20s %-20s %s\n", "Datetime", "Client IP", "Client Browser")
	fmt.Println(strings.Repeat("-", 80))

	for _, click := range clicks {
		browser := click.ClientBrowser
		if len(browser) > 40 {
			browser = browser[:37] + "..."
		}

		fmt.Printf("%-20s %-20s %s\n",
			click.Datetime.Format("2006-01-02 15:04:05"),
			click.ClientIPAddress,
			browser,
		)
	}

	return nil
}
