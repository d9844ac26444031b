package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"docsummary/internal/cache"
	"docsummary/internal/model"
	"docsummary/internal/repository"
)

var (
	ErrSummaryNotFound = errors.New("summary not found")
	ErrContentRequired = errors.New("content is required")

	// ErrEmptySourceText means even a fresh extraction attempt recovered no
	// usable text, so there is nothing to summarize.
	ErrEmptySourceText = errors.New("document text is empty after OCR extraction. Upload a clearer PDF and try again")
)

// MarkdownGenerator is the AI summary collaborator (rate-limited, one network
// call per invocation).
type MarkdownGenerator interface {
	Generate(ctx context.Context, sourceText string, opts model.SummaryOptions) (string, error)
}

// SummaryService defines the summary use cases.
type SummaryService interface {
	// Generate produces a new current summary version for the document. When the
	// stored text is empty it triggers exactly one re-extraction first.
	Generate(ctx context.Context, documentID string, opts model.SummaryOptions) (*model.SummaryVersion, error)

	// Get returns a single summary version by ID.
	Get(ctx context.Context, id string) (*model.SummaryVersion, error)

	// UpdateContent edits a version's Markdown in place. Options and currency
	// are untouched.
	UpdateContent(ctx context.Context, id string, contentMarkdown string) (*model.SummaryVersion, error)
}

type summaryService struct {
	docs      repository.DocumentRepository
	summaries repository.SummaryRepository
	pipeline  DocumentService
	generator MarkdownGenerator
	cache     cache.DocumentCache
	log       zerolog.Logger
}

// NewSummaryService constructs a new SummaryService. pipeline is used for the
// transparent re-extraction on empty source text.
func NewSummaryService(
	docs repository.DocumentRepository,
	summaries repository.SummaryRepository,
	pipeline DocumentService,
	generator MarkdownGenerator,
	docCache cache.DocumentCache,
	log zerolog.Logger,
) SummaryService {
	return &summaryService{
		docs:      docs,
		summaries: summaries,
		pipeline:  pipeline,
		generator: generator,
		cache:     docCache,
		log:       log,
	}
}

func (s *summaryService) Generate(ctx context.Context, documentID string, opts model.SummaryOptions) (*model.SummaryVersion, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}

	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sourceText := strings.TrimSpace(doc.ExtractedText)
	if sourceText == "" {
		res, err := s.pipeline.Extract(ctx, documentID)
		if err != nil {
			return nil, err
		}
		sourceText = strings.TrimSpace(res.ExtractedText)
	}
	if sourceText == "" {
		return nil, ErrEmptySourceText
	}

	content, err := s.generator.Generate(ctx, sourceText, opts)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stored, err := s.summaries.CreateAsCurrent(ctx, &model.SummaryVersion{
		ID:              uuid.NewString(),
		DocumentID:      documentID,
		ContentMarkdown: content,
		Language:        opts.Language,
		Length:          opts.Length,
		Tone:            opts.Tone,
		IsCurrent:       true,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("save generated summary: %w", err)
	}

	if err := s.cache.DeleteDocument(ctx, documentID); err != nil {
		s.log.Warn().Err(err).Str("document_id", documentID).Msg("document cache invalidation failed")
	}
	return stored, nil
}

func (s *summaryService) Get(ctx context.Context, id string) (*model.SummaryVersion, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	stored, err := s.summaries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("find summary: %w", err)
	}
	return stored, nil
}

func (s *summaryService) UpdateContent(ctx context.Context, id string, contentMarkdown string) (*model.SummaryVersion, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(contentMarkdown) == "" {
		return nil, ErrContentRequired
	}

	stored, err := s.summaries.UpdateContent(ctx, id, contentMarkdown)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("update summary: %w", err)
	}
	return stored, nil
}
