package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"docsummary/internal/model"
)

// ErrEmptyGeneration is returned when the model call succeeds but yields no
// usable content. It is not retried.
var ErrEmptyGeneration = errors.New("ai returned an empty summary")

const generatorSystemPrompt = "You write concise, high-quality markdown summaries."

// Completer is the opaque text-generation collaborator (one network call).
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Generator produces Markdown summaries: admit via the rate limiter, render
// the prompt, invoke the completion API, reject empty output.
type Generator struct {
	limiter   *RateLimiter
	completer Completer
	now       func() time.Time
}

// NewGenerator constructs a Generator. The limiter is shared process-wide by
// design; the caller owns it so tests can reset it.
func NewGenerator(limiter *RateLimiter, completer Completer) *Generator {
	return &Generator{
		limiter:   limiter,
		completer: completer,
		now:       time.Now,
	}
}

// Generate returns the trimmed Markdown summary of sourceText. A rate-limit
// rejection propagates before any model call is made.
func (g *Generator) Generate(ctx context.Context, sourceText string, opts model.SummaryOptions) (string, error) {
	if err := g.limiter.Admit(g.now()); err != nil {
		return "", err
	}

	prompt := BuildSummaryPrompt(sourceText, opts)

	out, err := g.completer.Complete(ctx, generatorSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmptyGeneration
	}
	return out, nil
}
