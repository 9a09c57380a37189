package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockRepoService struct {
	mock.Mock
}

func (m *MockRepoService) ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	var resp *github.Response
	if r := args.Get(1); r != nil {
		resp = r.(*github.Response)
	}
	if args.Get(0) == nil {
		return nil, resp, args.Error(2)
	}
	return args.Get(0).([]*github.RepositoryCommit), resp, args.Error(2)
}
