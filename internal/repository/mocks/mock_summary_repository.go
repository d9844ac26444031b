package mocks

import (
	"context"

	"docsummary/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) CreateAsCurrent(ctx context.Context, sv *model.SummaryVersion) (*model.SummaryVersion, error) {
	args := m.Called(ctx, sv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SummaryVersion), args.Error(1)
}

func (m *MockSummaryRepository) FindByID(ctx context.Context, id string) (*model.SummaryVersion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SummaryVersion), args.Error(1)
}

func (m *MockSummaryRepository) FindCurrentByDocument(ctx context.Context, documentID string) (*model.SummaryVersion, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SummaryVersion), args.Error(1)
}

func (m *MockSummaryRepository) UpdateContent(ctx context.Context, id string, contentMarkdown string) (*model.SummaryVersion, error) {
	args := m.Called(ctx, id, contentMarkdown)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SummaryVersion), args.Error(1)
}

func (m *MockSummaryRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}
