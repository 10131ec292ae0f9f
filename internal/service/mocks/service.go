package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"linkshortener/internal/domain"
)

// LinkService is a mock implementation of service.LinkService
type LinkService struct {
	mock.Mock
}

// CreateLink creates a new link
func (m *LinkService) CreateLink(ctx context.Context, req domain.CreateLinkRequest) (*domain.Link, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

// GetAllLinks retrieves all links with aggregated click counts
func (m *LinkService) GetAllLinks(ctx context.Context) ([]*domain.Link, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Link), args.Error(1)
}

// DeleteLink removes a link and its click history
func (m *LinkService) DeleteLink(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// GetLinkClicks retrieves the click events recorded for a slug
func (m *LinkService) GetLinkClicks(ctx context.Context, slug string) ([]*domain.ClickEvent, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ClickEvent), args.Error(1)
}

// ResolveLink resolves a slug to its target URL
func (m *LinkService) ResolveLink(ctx context.Context, slug string, meta domain.ClickMeta) (string, error) {
	args := m.Called(ctx, slug, meta)
	return args.String(0), args.Error(1)
}

// Close closes the service
func (m *LinkService) Close() error {
	args := m.Called()
	return args.Error(0)
}
