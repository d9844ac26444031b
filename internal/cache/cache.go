// Package cache provides an optional read-through cache for document details.
// When Redis is not configured a noop implementation is used so callers never
// branch on availability.
package cache

import (
	"context"

	"docsummary/internal/model"
)

// DocumentCache caches document rows by ID. A nil document with a nil error
// means a cache miss; cache failures are reported but callers treat them as
// misses, never as request failures.
type DocumentCache interface {
	SetDocument(ctx context.Context, doc *model.Document) error
	GetDocument(ctx context.Context, id string) (*model.Document, error)
	DeleteDocument(ctx context.Context, id string) error
}

// Noop is the disabled-cache implementation: every read is a miss and every
// write succeeds.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (Noop) SetDocument(ctx context.Context, doc *model.Document) error { return nil }

func (Noop) GetDocument(ctx context.Context, id string) (*model.Document, error) { return nil, nil }

func (Noop) DeleteDocument(ctx context.Context, id string) error { return nil }
