package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/codescore/internal/models"
)

type (
	MockVCSClient struct {
		mock.Mock
	}

	MockCompletionClient struct {
		mock.Mock
	}
)

func (m *MockVCSClient) ListFileCommits(ctx context.Context, target models.Target) ([]models.Commit, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commit), args.Error(1)
}

func (m *MockVCSClient) GetFilePatch(ctx context.Context, target models.Target, previous, latest models.Commit) (string, error) {
	args := m.Called(ctx, target, previous, latest)
	return args.String(0), args.Error(1)
}

func (m *MockVCSClient) ProviderName() string {
	return "mock"
}

func (m *MockCompletionClient) Complete(ctx context.Context, pair models.PromptPair) (models.Completion, error) {
	args := m.Called(ctx, pair)
	return args.Get(0).(models.Completion), args.Error(1)
}

func (m *MockCompletionClient) ModelName() string {
	return "mock-model"
}

func (m *MockCompletionClient) ProviderName() string {
	return "mock"
}
