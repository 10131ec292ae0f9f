package domain

import "errors"

// Sentinel errors returned by the repository and service layers. Handlers
// map these to HTTP status codes with errors.Is; anything else is treated
// as a storage failure.
var (
	// ErrSlugExists indicates a create collided with an existing slug.
	ErrSlugExists = errors.New("slug already exists")

	// ErrLinkNotFound indicates the slug has no corresponding link.
	ErrLinkNotFound = errors.New("link not found")

	// ErrInvalidTargetURL indicates a malformed or unsupported target URL.
	ErrInvalidTargetURL = errors.New("invalid target URL")

	// ErrGenerationExhausted indicates the slug generator ran out of
	// attempts without finding a free slug. This signals the slug space is
	// effectively full and is a configuration problem, not a user error.
	ErrGenerationExhausted = errors.New("slug generation exhausted retry budget")
)
