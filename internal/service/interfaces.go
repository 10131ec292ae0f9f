package service

import (
	"context"

	"linkshortener/internal/domain"
)

// LinkService defines the interface for link management and resolution
type LinkService interface {
	// CreateLink creates a new link, generating a slug when the request
	// does not supply one
	CreateLink(ctx context.Context, req domain.CreateLinkRequest) (*domain.Link, error)

	// GetAllLinks retrieves all links with aggregated click counts
	GetAllLinks(ctx context.Context) ([]*domain.Link, error)

	// DeleteLink removes a link and its click history
	DeleteLink(ctx context.Context, slug string) error

	// GetLinkClicks retrieves the click events recorded for a slug
	GetLinkClicks(ctx context.Context, slug string) ([]*domain.ClickEvent, error)

	// ResolveLink resolves a slug to its target URL, recording a click
	// event in the same atomic unit of work
	ResolveLink(ctx context.Context, slug string, meta domain.ClickMeta) (string, error)

	// Close closes the service and its dependencies
	Close() error
}
