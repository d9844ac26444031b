package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"docsummary/internal/ai/mocks"
	"docsummary/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testOptions() model.SummaryOptions {
	return model.SummaryOptions{Language: "English", Length: "medium", Tone: "neutral"}
}

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path trims output", func(t *testing.T) {
		mc := new(mocks.MockCompleter)
		mc.On("Complete", ctx, generatorSystemPrompt, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "source body")
		})).Return("\n# Summary\n- point\n", nil)

		g := NewGenerator(NewRateLimiter(), mc)
		out, err := g.Generate(ctx, "source body", testOptions())

		assert.NoError(t, err)
		assert.Equal(t, "# Summary\n- point", out)
		mc.AssertExpectations(t)
	})

	t.Run("empty output fails without retry", func(t *testing.T) {
		mc := new(mocks.MockCompleter)
		mc.On("Complete", ctx, mock.Anything, mock.Anything).Return("   \n ", nil).Once()

		g := NewGenerator(NewRateLimiter(), mc)
		_, err := g.Generate(ctx, "text", testOptions())

		assert.ErrorIs(t, err, ErrEmptyGeneration)
		mc.AssertExpectations(t)
	})

	t.Run("completer error is wrapped", func(t *testing.T) {
		mc := new(mocks.MockCompleter)
		mc.On("Complete", ctx, mock.Anything, mock.Anything).Return("", errors.New("upstream down"))

		g := NewGenerator(NewRateLimiter(), mc)
		_, err := g.Generate(ctx, "text", testOptions())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "completion call: upstream down")
	})

	t.Run("rate limit rejection prevents model call", func(t *testing.T) {
		mc := new(mocks.MockCompleter)
		limiter := NewRateLimiter()
		now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 25; i++ {
			assert.NoError(t, limiter.Admit(now))
		}

		g := NewGenerator(limiter, mc)
		g.now = func() time.Time { return now }

		_, err := g.Generate(ctx, "text", testOptions())

		assert.ErrorIs(t, err, ErrRateLimited)
		mc.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})
}
