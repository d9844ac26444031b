package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"docsummary/internal/ai"
	"docsummary/internal/cache"
	"docsummary/internal/model"
	repoMocks "docsummary/internal/repository/mocks"
	"docsummary/internal/service"
	svcMocks "docsummary/internal/service/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type summaryServiceMocks struct {
	docs      *repoMocks.MockDocumentRepository
	summaries *repoMocks.MockSummaryRepository
	pipeline  *svcMocks.MockDocumentService
	generator *svcMocks.MockMarkdownGenerator
}

func newTestSummaryService() (service.SummaryService, *summaryServiceMocks) {
	m := &summaryServiceMocks{
		docs:      new(repoMocks.MockDocumentRepository),
		summaries: new(repoMocks.MockSummaryRepository),
		pipeline:  new(svcMocks.MockDocumentService),
		generator: new(svcMocks.MockMarkdownGenerator),
	}
	svc := service.NewSummaryService(m.docs, m.summaries, m.pipeline, m.generator, cache.NewNoop(), zerolog.Nop())
	return svc, m
}

func (m *summaryServiceMocks) assertExpectations(t *testing.T) {
	m.docs.AssertExpectations(t)
	m.summaries.AssertExpectations(t)
	m.pipeline.AssertExpectations(t)
	m.generator.AssertExpectations(t)
}

func genOptions() model.SummaryOptions {
	return model.SummaryOptions{Language: "English", Length: "short", Tone: "professional"}
}

func TestSummaryService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path with stored text", func(t *testing.T) {
		svc, m := newTestSummaryService()
		m.docs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", ExtractedText: "  stored text  "}, nil)
		m.generator.On("Generate", ctx, "stored text", genOptions()).Return("# Summary", nil)
		m.summaries.On("CreateAsCurrent", ctx, mock.MatchedBy(func(sv *model.SummaryVersion) bool {
			return sv.ID != "" &&
				sv.DocumentID == "doc-1" &&
				sv.ContentMarkdown == "# Summary" &&
				sv.Language == "English" && sv.Length == "short" && sv.Tone == "professional" &&
				sv.IsCurrent
		})).Return(&model.SummaryVersion{ID: "sv-1", IsCurrent: true}, nil)

		sv, err := svc.Generate(ctx, "doc-1", genOptions())

		assert.NoError(t, err)
		assert.Equal(t, "sv-1", sv.ID)
		m.pipeline.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("empty stored text triggers exactly one re-extraction", func(t *testing.T) {
		svc, m := newTestSummaryService()
		m.docs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", ExtractedText: "   "}, nil)
		m.pipeline.On("Extract", ctx, "doc-1").
			Return(&service.ExtractionResult{DocumentID: "doc-1", ExtractedText: "recovered"}, nil).Once()
		m.generator.On("Generate", ctx, "recovered", genOptions()).Return("# Summary", nil)
		m.summaries.On("CreateAsCurrent", ctx, mock.Anything).
			Return(&model.SummaryVersion{ID: "sv-1"}, nil)

		_, err := svc.Generate(ctx, "doc-1", genOptions())

		assert.NoError(t, err)
		m.pipeline.AssertNumberOfCalls(t, "Extract", 1)
		m.assertExpectations(t)
	})

	t.Run("still empty after re-extraction fails with empty source text", func(t *testing.T) {
		svc, m := newTestSummaryService()
		m.docs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", ExtractedText: ""}, nil)
		m.pipeline.On("Extract", ctx, "doc-1").
			Return(&service.ExtractionResult{DocumentID: "doc-1", ExtractedText: "", ExtractionError: "no readable text"}, nil).Once()

		_, err := svc.Generate(ctx, "doc-1", genOptions())

		assert.ErrorIs(t, err, service.ErrEmptySourceText)
		m.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("rate limit rejection propagates without persistence", func(t *testing.T) {
		svc, m := newTestSummaryService()
		m.docs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", ExtractedText: "text"}, nil)
		m.generator.On("Generate", ctx, "text", genOptions()).
			Return("", ai.ErrBurstLimitExceeded)

		_, err := svc.Generate(ctx, "doc-1", genOptions())

		assert.ErrorIs(t, err, ai.ErrRateLimited)
		m.summaries.AssertNotCalled(t, "CreateAsCurrent", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("empty generation result propagates", func(t *testing.T) {
		svc, m := newTestSummaryService()
		m.docs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", ExtractedText: "text"}, nil)
		m.generator.On("Generate", ctx, "text", genOptions()).Return("", ai.ErrEmptyGeneration)

		_, err := svc.Generate(ctx, "doc-1", genOptions())

		assert.ErrorIs(t, err, ai.ErrEmptyGeneration)
		m.assertExpectations(t)
	})

	t.Run("persist failure is wrapped", func(t *testing.T) {
		svc, m := newTestSummaryService()
		m.docs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", ExtractedText: "text"}, nil)
		m.generator.On("Generate", ctx, "text", genOptions()).Return("# Summary", nil)
		m.summaries.On("CreateAsCurrent", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		_, err := svc.Generate(ctx, "doc-1", genOptions())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "save generated summary: db fail")
		m.assertExpectations(t)
	})

	t.Run("document not found", func(t *testing.T) {
		svc, m := newTestSummaryService()
		m.docs.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Generate(ctx, "missing", genOptions())

		assert.ErrorIs(t, err, service.ErrNotFound)
		m.assertExpectations(t)
	})
}

func TestSummaryService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, m := newTestSummaryService()
		m.summaries.On("FindByID", ctx, "sv-1").
			Return(&model.SummaryVersion{ID: "sv-1", ContentMarkdown: "# Summary"}, nil)

		sv, err := svc.Get(ctx, "sv-1")

		assert.NoError(t, err)
		assert.Equal(t, "sv-1", sv.ID)
		m.assertExpectations(t)
	})

	t.Run("validation - empty id", func(t *testing.T) {
		svc, _ := newTestSummaryService()
		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, service.ErrIDRequired)
	})

	t.Run("not found - mapping sql.ErrNoRows", func(t *testing.T) {
		svc, m := newTestSummaryService()
		m.summaries.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Get(ctx, "missing")

		assert.ErrorIs(t, err, service.ErrSummaryNotFound)
		m.assertExpectations(t)
	})
}

func TestSummaryService_UpdateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		svc, m := newTestSummaryService()
		m.summaries.On("UpdateContent", ctx, "sv-1", "# Edited").
			Return(&model.SummaryVersion{ID: "sv-1", ContentMarkdown: "# Edited"}, nil)

		sv, err := svc.UpdateContent(ctx, "sv-1", "# Edited")

		assert.NoError(t, err)
		assert.Equal(t, "# Edited", sv.ContentMarkdown)
		m.assertExpectations(t)
	})

	t.Run("validation - empty id", func(t *testing.T) {
		svc, _ := newTestSummaryService()
		_, err := svc.UpdateContent(ctx, "", "# Edited")
		assert.ErrorIs(t, err, service.ErrIDRequired)
	})

	t.Run("validation - blank content", func(t *testing.T) {
		svc, _ := newTestSummaryService()
		_, err := svc.UpdateContent(ctx, "sv-1", "   \n ")
		assert.ErrorIs(t, err, service.ErrContentRequired)
	})

	t.Run("not found - mapping sql.ErrNoRows", func(t *testing.T) {
		svc, m := newTestSummaryService()
		m.summaries.On("UpdateContent", ctx, "missing", "# Edited").Return(nil, sql.ErrNoRows)

		_, err := svc.UpdateContent(ctx, "missing", "# Edited")

		assert.ErrorIs(t, err, service.ErrSummaryNotFound)
		m.assertExpectations(t)
	})
}
