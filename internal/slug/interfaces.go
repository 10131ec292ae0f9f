package slug

import (
	"context"
)

// Generator defines the interface for producing unused slugs
type Generator interface {
	// Generate produces a slug that does not exist in the store at the time
	// of the check
	Generate(ctx context.Context) (string, error)

	// Type returns the type identifier of the generator
	Type() string
}

// ExistenceChecker reports whether a slug is already taken. Satisfied by
// repository.LinkRepository.
type ExistenceChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// Config holds configuration for slug generators
type Config struct {
	Length      int // Number of characters per slug
	MaxAttempts int // Retry budget before giving up on collision
}

// GeneratorType constants
const (
	TypeRandom = "random"
)

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Length:      4,
		MaxAttempts: 100,
	}
}
