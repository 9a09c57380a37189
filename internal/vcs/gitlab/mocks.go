package gitlab

import (
	"github.com/stretchr/testify/mock"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

type MockCommitsService struct {
	mock.Mock
}

func (m *MockCommitsService) ListCommits(pid any, opt *gitlab.ListCommitsOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Commit, *gitlab.Response, error) {
	args := m.Called(pid, opt)
	var resp *gitlab.Response
	if r := args.Get(1); r != nil {
		resp = r.(*gitlab.Response)
	}
	if args.Get(0) == nil {
		return nil, resp, args.Error(2)
	}
	return args.Get(0).([]*gitlab.Commit), resp, args.Error(2)
}

type MockRepoService struct {
	mock.Mock
}

func (m *MockRepoService) Compare(pid any, opt *gitlab.CompareOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Compare, *gitlab.Response, error) {
	args := m.Called(pid, opt)
	var resp *gitlab.Response
	if r := args.Get(1); r != nil {
		resp = r.(*gitlab.Response)
	}
	if args.Get(0) == nil {
		return nil, resp, args.Error(2)
	}
	return args.Get(0).(*gitlab.Compare), resp, args.Error(2)
}
