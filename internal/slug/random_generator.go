package slug

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"linkshortener/internal/domain"
)

// alphabet is the 36-symbol slug alphabet: digits and lowercase letters
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomGenerator draws slugs uniformly at random and checks them against
// the store. Collisions are retried with a fresh draw up to the configured
// budget; exhausting the budget means the slug space is effectively full
// and surfaces as domain.ErrGenerationExhausted.
type RandomGenerator struct {
	checker ExistenceChecker
	config  Config
}

// NewRandomGenerator creates a new random slug generator
func NewRandomGenerator(config Config, checker ExistenceChecker) (*RandomGenerator, error) {
	if checker == nil {
		return nil, fmt.Errorf("existence checker required for random generator")
	}
	if config.Length <= 0 {
		return nil, fmt.Errorf("slug length must be positive, got: %d", config.Length)
	}
	if config.MaxAttempts <= 0 {
		return nil, fmt.Errorf("max attempts must be positive, got: %d", config.MaxAttempts)
	}

	return &RandomGenerator{
		checker: checker,
		config:  config,
	}, nil
}

// Generate draws random slugs until one is free or the retry budget runs out
func (g *RandomGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < g.config.MaxAttempts; attempt++ {
		candidate := g.randomSlug()

		exists, err := g.checker.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug existence: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", domain.ErrGenerationExhausted
}

// randomSlug draws one slug, each character chosen uniformly from the alphabet
func (g *RandomGenerator) randomSlug() string {
	var b strings.Builder
	b.Grow(g.config.Length)
	for i := 0; i < g.config.Length; i++ {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}

// Type returns the generator type
func (g *RandomGenerator) Type() string {
	return TypeRandom
}

// Ensure RandomGenerator implements the interface
var _ Generator = (*RandomGenerator)(nil)
