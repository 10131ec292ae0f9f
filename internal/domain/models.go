package domain

import (
	"time"
)

// Link represents a shortened link with its metadata
type Link struct {
	Slug         string     `json:"slug"`
	TargetURL    string     `json:"targetUrl"`
	ShortenedURL string     `json:"shortenedUrl,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	Clicks       int64      `json:"clicks"`
}

// ClickEvent represents one successful redirect resolution. It is recorded
// exactly once per resolved redirect and never mutated afterwards.
type ClickEvent struct {
	Slug            string     `json:"slug"`
	Datetime        time.Time  `json:"datetime"`
	ClientIPAddress string     `json:"clientIpAddress"`
	ClientBrowser   string     `json:"clientBrowser"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
}

// ClickMeta carries the requester metadata captured alongside a redirect.
// ClientIP falls back to "unknown" and ClientBrowser to "" when the
// transport layer cannot determine them.
type ClickMeta struct {
	ClientIP      string
	ClientBrowser string
}

// CreateLinkRequest represents the request to create a link. Slug is
// optional; when empty a random slug is generated. ExpiresInSecs is a
// relative duration resolved to an absolute timestamp at creation time.
type CreateLinkRequest struct {
	Slug          string `json:"slug"`
	TargetURL     string `json:"targetUrl"`
	ExpiresInSecs *int64 `json:"expiresInSecs,omitempty"`
}
