package mocks

import (
	"context"

	"docsummary/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) Generate(ctx context.Context, documentID string, opts model.SummaryOptions) (*model.SummaryVersion, error) {
	args := m.Called(ctx, documentID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SummaryVersion), args.Error(1)
}

func (m *MockSummaryService) Get(ctx context.Context, id string) (*model.SummaryVersion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SummaryVersion), args.Error(1)
}

func (m *MockSummaryService) UpdateContent(ctx context.Context, id string, contentMarkdown string) (*model.SummaryVersion, error) {
	args := m.Called(ctx, id, contentMarkdown)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SummaryVersion), args.Error(1)
}

type MockMarkdownGenerator struct {
	mock.Mock
}

func (m *MockMarkdownGenerator) Generate(ctx context.Context, sourceText string, opts model.SummaryOptions) (string, error) {
	args := m.Called(ctx, sourceText, opts)
	return args.String(0), args.Error(1)
}
