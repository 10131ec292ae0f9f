package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"linkshortener/internal/domain"
)

// LinkRepository is a mock implementation of repository.LinkRepository
type LinkRepository struct {
	mock.Mock
}

// CreateLink inserts a new link
func (m *LinkRepository) CreateLink(ctx context.Context, slug, targetURL string, expiresAt *time.Time) (*domain.Link, error) {
	args := m.Called(ctx, slug, targetURL, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

// GetLink retrieves a link by slug
func (m *LinkRepository) GetLink(ctx context.Context, slug string) (*domain.Link, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

// GetAllLinks retrieves all links with aggregated click counts
func (m *LinkRepository) GetAllLinks(ctx context.Context) ([]*domain.Link, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Link), args.Error(1)
}

// DeleteLink removes a link and its click history
func (m *LinkRepository) DeleteLink(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// SlugExists checks whether a slug is taken
func (m *LinkRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// GetLinkClicks retrieves all click events for a slug
func (m *LinkRepository) GetLinkClicks(ctx context.Context, slug string) ([]*domain.ClickEvent, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ClickEvent), args.Error(1)
}

// ResolveLink looks up a link and records a click event for it
func (m *LinkRepository) ResolveLink(ctx context.Context, slug string, meta domain.ClickMeta) (*domain.Link, error) {
	args := m.Called(ctx, slug, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

// DeleteExpired removes expired links and click events
func (m *LinkRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// Close closes the repository connection
func (m *LinkRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
