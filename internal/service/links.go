package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"linkshortener/internal/domain"
	"linkshortener/internal/repository"
	"linkshortener/internal/slug"
)

// linkService implements LinkService
type linkService struct {
	repo      repository.LinkRepository
	generator slug.Generator
}

// NewLinkService creates a new link service
func NewLinkService(repo repository.LinkRepository, generator slug.Generator) LinkService {
	return &linkService{
		repo:      repo,
		generator: generator,
	}
}

// CreateLink validates the request, assigns a slug, and persists the link.
// A caller-supplied slug is used verbatim; its uniqueness is enforced by
// the store's insert constraint. The relative expiry is resolved to an
// absolute timestamp exactly once, here.
func (s *linkService) CreateLink(ctx context.Context, req domain.CreateLinkRequest) (*domain.Link, error) {
	parsedURL, err := url.ParseRequestURI(req.TargetURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTargetURL, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: only HTTP and HTTPS are supported", domain.ErrInvalidTargetURL)
	}

	linkSlug := req.Slug
	if linkSlug == "" {
		linkSlug, err = s.generator.Generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate slug: %w", err)
		}
	}

	var expiresAt *time.Time
	if req.ExpiresInSecs != nil {
		t := time.Now().UTC().Add(time.Duration(*req.ExpiresInSecs) * time.Second)
		expiresAt = &t
	}

	link, err := s.repo.CreateLink(ctx, linkSlug, req.TargetURL, expiresAt)
	if err != nil {
		if errors.Is(err, domain.ErrSlugExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	return link, nil
}

// GetAllLinks retrieves all links with aggregated click counts
func (s *linkService) GetAllLinks(ctx context.Context) ([]*domain.Link, error) {
	links, err := s.repo.GetAllLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}
	return links, nil
}

// DeleteLink removes a link and its click history
func (s *linkService) DeleteLink(ctx context.Context, linkSlug string) error {
	return s.repo.DeleteLink(ctx, linkSlug)
}

// GetLinkClicks retrieves the click events recorded for a slug
func (s *linkService) GetLinkClicks(ctx context.Context, linkSlug string) ([]*domain.ClickEvent, error) {
	exists, err := s.repo.SlugExists(ctx, linkSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug existence: %w", err)
	}
	if !exists {
		return nil, domain.ErrLinkNotFound
	}

	clicks, err := s.repo.GetLinkClicks(ctx, linkSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to get clicks: %w", err)
	}
	return clicks, nil
}

// ResolveLink resolves a slug to its target URL. The lookup and the click
// insert run in one transaction inside the repository, so a redirect is
// only returned when its click was durably recorded.
func (s *linkService) ResolveLink(ctx context.Context, linkSlug string, meta domain.ClickMeta) (string, error) {
	link, err := s.repo.ResolveLink(ctx, linkSlug, meta)
	if err != nil {
		return "", err
	}
	return link.TargetURL, nil
}

// Close closes the service and its dependencies
func (s *linkService) Close() error {
	if err := s.repo.Close(); err != nil {
		return fmt.Errorf("failed to close repository: %w", err)
	}
	return nil
}

// Ensure linkService implements LinkService interface
var _ LinkService = (*linkService)(nil)
