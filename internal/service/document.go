package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"docsummary/internal/cache"
	"docsummary/internal/extract"
	"docsummary/internal/model"
	"docsummary/internal/repository"
	"docsummary/internal/storage"
)

var (
	ErrIDRequired   = errors.New("id is required")
	ErrNotFound     = errors.New("document not found")
	ErrFileRequired = errors.New("file content is required")
)

// viewerURLTTL bounds how long a presigned download link stays valid.
const viewerURLTTL = time.Hour

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// UploadParams carries the validated upload input. MIME type and size limits
// are enforced at the HTTP boundary before any storage work begins.
type UploadParams struct {
	FileName  string
	MimeType  string
	SizeBytes int64
	Data      []byte
}

// UploadResult is the primary outcome plus the optional extraction warning.
// A failed extraction never fails the upload; it is reported alongside it.
type UploadResult struct {
	Document        *model.Document `json:"document"`
	ExtractionError string          `json:"extraction_error,omitempty"`
}

// ExtractionResult reports a manual re-extraction run.
type ExtractionResult struct {
	DocumentID      string `json:"document_id"`
	ExtractedText   string `json:"extracted_text"`
	ExtractionError string `json:"extraction_error,omitempty"`
}

// DocumentDetail combines the document row with its presigned viewer URL and
// the current summary version, if one exists.
type DocumentDetail struct {
	Document  *model.Document       `json:"document"`
	ViewerURL string                `json:"viewer_url"`
	Summary   *model.SummaryVersion `json:"summary"`
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the document pipeline use cases.
type DocumentService interface {
	// Upload stores the blob, attempts text extraction best-effort, and persists
	// metadata. The blob is rolled back only when the metadata insert fails.
	Upload(ctx context.Context, p UploadParams) (*UploadResult, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns document detail: row, viewer URL and current summary.
	Get(ctx context.Context, id string) (*DocumentDetail, error)

	// Extract re-runs OCR over the stored blob and persists the outcome, even
	// when extraction recovered nothing.
	Extract(ctx context.Context, id string) (*ExtractionResult, error)

	// Delete removes the document, its summary versions and its blob.
	Delete(ctx context.Context, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store     storage.Storage
	docs      repository.DocumentRepository
	summaries repository.SummaryRepository
	extractor extract.Extractor
	cache     cache.DocumentCache
	log       zerolog.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	store storage.Storage,
	docs repository.DocumentRepository,
	summaries repository.SummaryRepository,
	extractor extract.Extractor,
	docCache cache.DocumentCache,
	log zerolog.Logger,
) DocumentService {
	return &documentService{
		store:     store,
		docs:      docs,
		summaries: summaries,
		extractor: extractor,
		cache:     docCache,
		log:       log,
	}
}

func sanitizeFileName(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// tryExtract runs OCR and converts a failure into a warning string instead of
// an error, so extraction never aborts the surrounding operation.
func (s *documentService) tryExtract(ctx context.Context, pdf []byte) (text string, warning string) {
	text, err := s.extractor.Extract(ctx, pdf)
	if err != nil {
		s.log.Warn().Err(err).Msg("pdf extraction failed")
		return "", err.Error()
	}
	return text, ""
}

func (s *documentService) Upload(ctx context.Context, p UploadParams) (*UploadResult, error) {
	if len(p.Data) == 0 {
		return nil, ErrFileRequired
	}

	key := fmt.Sprintf("documents/%d-%s-%s", time.Now().UnixMilli(), uuid.NewString(), sanitizeFileName(p.FileName))

	// Upload to object storage
	_, err := s.store.Put(ctx, key, bytes.NewReader(p.Data), storage.PutObjectOptions{
		Size:        p.SizeBytes,
		ContentType: p.MimeType,
		Metadata: map[string]string{
			"original-filename": p.FileName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	// Best-effort extraction; failure is reported, never fatal.
	extractedText, extractionWarning := s.tryExtract(ctx, p.Data)

	doc := &model.Document{
		ID:            uuid.NewString(),
		FileName:      p.FileName,
		MimeType:      p.MimeType,
		SizeBytes:     p.SizeBytes,
		StoragePath:   key,
		ExtractedText: extractedText,
		Status:        model.StatusForText(extractedText),
		CreatedAt:     time.Now().UTC(),
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	return &UploadResult{Document: stored, ExtractionError: extractionWarning}, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.docs.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// findByID reads through the cache; cache failures count as misses.
func (s *documentService) findByID(ctx context.Context, id string) (*model.Document, error) {
	if cached, err := s.cache.GetDocument(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("document_id", id).Msg("document cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.cache.SetDocument(ctx, doc); err != nil {
		s.log.Warn().Err(err).Str("document_id", id).Msg("document cache write failed")
	}
	return doc, nil
}

// invalidate drops the cached row after any mutation of the document.
func (s *documentService) invalidate(ctx context.Context, id string) {
	if err := s.cache.DeleteDocument(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("document_id", id).Msg("document cache invalidation failed")
	}
}

// Get returns document detail with a fresh viewer URL and current summary.
func (s *documentService) Get(ctx context.Context, id string) (*DocumentDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	doc, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	viewerURL, err := s.store.PresignGet(ctx, doc.StoragePath, viewerURLTTL)
	if err != nil {
		return nil, fmt.Errorf("create viewer url: %w", err)
	}

	summary, err := s.summaries.FindCurrentByDocument(ctx, id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("fetch current summary: %w", err)
		}
		summary = nil
	}

	return &DocumentDetail{Document: doc, ViewerURL: viewerURL, Summary: summary}, nil
}

// Extract downloads the stored blob, re-runs OCR and persists the outcome.
// The row update happens regardless of extraction success; only its failure is
// a hard error.
func (s *documentService) Extract(ctx context.Context, id string) (*ExtractionResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	doc, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("download pdf for extraction: %w", err)
	}
	defer rc.Close()

	pdf, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read pdf for extraction: %w", err)
	}

	text, warning := s.tryExtract(ctx, pdf)

	if err := s.docs.UpdateExtraction(ctx, id, text, model.StatusForText(text)); err != nil {
		return nil, fmt.Errorf("update extracted text: %w", err)
	}
	s.invalidate(ctx, id)

	return &ExtractionResult{DocumentID: id, ExtractedText: text, ExtractionError: warning}, nil
}

// Delete removes summary versions, the document row and finally the blob.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}

	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.summaries.DeleteByDocument(ctx, id); err != nil {
		return fmt.Errorf("delete summary versions: %w", err)
	}
	if err := s.docs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document row: %w", err)
	}
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage object: %w", err)
	}
	s.invalidate(ctx, id)

	return nil
}
