package service

import (
	"context"
	"fmt"
)

// TestGenerator is a simple sequential generator for testing purposes
type TestGenerator struct {
	counter int
}

// NewTestGenerator creates a new test generator
func NewTestGenerator() *TestGenerator {
	return &TestGenerator{counter: 0}
}

// Generate produces a predictable test slug
func (g *TestGenerator) Generate(ctx context.Context) (string, error) {
	g.counter++
	return fmt.Sprintf("t%03d", g.counter), nil
}

// Type returns the generator type
func (g *TestGenerator) Type() string {
	return "test"
}
