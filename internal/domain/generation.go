package domain

import (
	"context"
	"fmt"
)

// Generator is the shared text-generation contract between layers.
// Implementations answer strictly from the context embedded in the prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (GenerationResult, error)
}

// HealthChecker verifies generation provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// GenerationResult carries the generated text and token usage through the decorator chain.
type GenerationResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// InstructionGenerator is a domain decorator that prepends instruction text before generation.
type InstructionGenerator struct {
	inner       Generator
	instruction string
}

// NewInstructionGenerator creates a decorator that prepends instruction text.
func NewInstructionGenerator(inner Generator, instruction string) *InstructionGenerator {
	return &InstructionGenerator{inner: inner, instruction: instruction}
}

// Generate prepends the instruction and delegates to the inner generator.
func (g *InstructionGenerator) Generate(ctx context.Context, prompt string) (GenerationResult, error) {
	result, err := g.inner.Generate(ctx, g.instruction+prompt)
	if err != nil {
		return GenerationResult{}, fmt.Errorf("instruction generate: %w", err)
	}
	return result, nil
}
