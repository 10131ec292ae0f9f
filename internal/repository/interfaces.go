package repository

import (
	"context"
	"time"

	"linkshortener/internal/domain"
)

// LinkRepository defines the interface for link and click data operations
type LinkRepository interface {
	// CreateLink inserts a new link. Returns domain.ErrSlugExists when the
	// slug is already taken.
	CreateLink(ctx context.Context, slug, targetURL string, expiresAt *time.Time) (*domain.Link, error)

	// GetLink retrieves a link by slug, including its aggregated click count.
	// Returns domain.ErrLinkNotFound when the slug is absent.
	GetLink(ctx context.Context, slug string) (*domain.Link, error)

	// GetAllLinks retrieves all links with aggregated click counts, newest
	// first. Links with no clicks appear with a count of zero.
	GetAllLinks(ctx context.Context) ([]*domain.Link, error)

	// DeleteLink removes a link and its click history in one transaction.
	// Returns domain.ErrLinkNotFound when the slug is absent.
	DeleteLink(ctx context.Context, slug string) error

	// SlugExists checks whether a slug is taken
	SlugExists(ctx context.Context, slug string) (bool, error)

	// GetLinkClicks retrieves all click events for a slug ordered by datetime
	GetLinkClicks(ctx context.Context, slug string) ([]*domain.ClickEvent, error)

	// ResolveLink looks up a link and records a click event for it within a
	// single transaction. Either both succeed or neither does. Returns
	// domain.ErrLinkNotFound when the slug is absent; no click is recorded
	// in that case.
	ResolveLink(ctx context.Context, slug string, meta domain.ClickMeta) (*domain.Link, error)

	// DeleteExpired removes all links and click events whose expiry is
	// before now. Returns the number of links and clicks removed.
	DeleteExpired(ctx context.Context, now time.Time) (links int64, clicks int64, err error)

	// Close closes the repository connection
	Close() error
}
