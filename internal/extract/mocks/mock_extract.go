package mocks

import (
	"context"

	"docsummary/internal/extract"

	"github.com/stretchr/testify/mock"
)

type MockPageRenderer struct {
	mock.Mock
}

func (m *MockPageRenderer) RenderPages(ctx context.Context, pdf []byte, scale float64) ([][]byte, error) {
	args := m.Called(ctx, pdf, scale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]byte), args.Error(1)
}

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Recognize(image []byte) (string, error) {
	args := m.Called(image)
	return args.String(0), args.Error(1)
}

func (m *MockEngine) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockEngineFactory struct {
	mock.Mock
}

func (m *MockEngineFactory) New(language string) (extract.Engine, error) {
	args := m.Called(language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(extract.Engine), args.Error(1)
}

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, pdf []byte) (string, error) {
	args := m.Called(ctx, pdf)
	return args.String(0), args.Error(1)
}
