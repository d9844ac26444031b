package mocks

import (
	"context"

	"docsummary/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockDocumentCache struct {
	mock.Mock
}

func (m *MockDocumentCache) SetDocument(ctx context.Context, doc *model.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentCache) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentCache) DeleteDocument(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
