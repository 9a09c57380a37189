package gitlab

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/models"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

var testTarget = models.Target{Repository: "group/sub/project", FilePath: "app/main.go"}

func TestGitLabClient_ListFileCommits(t *testing.T) {
	t.Run("should filter by path and map commits", func(t *testing.T) {
		commitsSvc := &MockCommitsService{}
		client := NewGitLabClientWithServices(commitsSvc, &MockRepoService{})
		date := time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC)

		commitsSvc.On("ListCommits", "group/sub/project", mock.MatchedBy(func(opt *gitlab.ListCommitsOptions) bool {
			return opt.Path != nil && *opt.Path == "app/main.go"
		})).Return([]*gitlab.Commit{
			{ID: "bbb", Message: "fix bug", AuthorName: "Ana", CommittedDate: &date},
			{ID: "aaa", Message: "add feature", AuthorName: "Luis"},
		}, &gitlab.Response{}, nil)

		commits, err := client.ListFileCommits(context.Background(), testTarget)

		require.NoError(t, err)
		require.Len(t, commits, 2)
		assert.Equal(t, models.Commit{SHA: "bbb", Message: "fix bug", Author: "Ana", Date: date}, commits[0])
		assert.True(t, commits[1].Date.IsZero())
		commitsSvc.AssertExpectations(t)
	})

	t.Run("should map unauthorized responses to an invalid token", func(t *testing.T) {
		commitsSvc := &MockCommitsService{}
		client := NewGitLabClientWithServices(commitsSvc, &MockRepoService{})
		commitsSvc.On("ListCommits", "group/sub/project", mock.Anything).
			Return(nil, &gitlab.Response{Response: &http.Response{StatusCode: http.StatusUnauthorized}}, errors.New("401 Unauthorized"))

		_, err := client.ListFileCommits(context.Background(), testTarget)

		assert.True(t, errors.Is(err, domainErrors.ErrVCSTokenInvalid))
	})

	t.Run("should wrap network failures", func(t *testing.T) {
		commitsSvc := &MockCommitsService{}
		client := NewGitLabClientWithServices(commitsSvc, &MockRepoService{})
		commitsSvc.On("ListCommits", "group/sub/project", mock.Anything).
			Return(nil, nil, errors.New("connection refused"))

		_, err := client.ListFileCommits(context.Background(), testTarget)

		assert.True(t, errors.Is(err, domainErrors.ErrListCommits))
	})
}

func TestGitLabClient_GetFilePatch(t *testing.T) {
	previous := models.Commit{SHA: "aaa"}
	latest := models.Commit{SHA: "bbb"}

	t.Run("should select the diff of the target path", func(t *testing.T) {
		repoSvc := &MockRepoService{}
		client := NewGitLabClientWithServices(&MockCommitsService{}, repoSvc)

		repoSvc.On("Compare", "group/sub/project", mock.MatchedBy(func(opt *gitlab.CompareOptions) bool {
			return *opt.From == "aaa" && *opt.To == "bbb"
		})).Return(&gitlab.Compare{Diffs: []*gitlab.Diff{
			{NewPath: "README.md", Diff: "@@ readme @@"},
			{NewPath: "app/main.go", OldPath: "app/main.go", Diff: "@@ -1 +1 @@\n-a\n+b\n"},
		}}, &gitlab.Response{}, nil)

		patch, err := client.GetFilePatch(context.Background(), testTarget, previous, latest)

		require.NoError(t, err)
		assert.Equal(t, "@@ -1 +1 @@\n-a\n+b\n", patch)
	})

	t.Run("should report no diff when the path is absent", func(t *testing.T) {
		repoSvc := &MockRepoService{}
		client := NewGitLabClientWithServices(&MockCommitsService{}, repoSvc)
		repoSvc.On("Compare", "group/sub/project", mock.Anything).
			Return(&gitlab.Compare{}, &gitlab.Response{}, nil)

		_, err := client.GetFilePatch(context.Background(), testTarget, previous, latest)

		assert.True(t, errors.Is(err, domainErrors.ErrNoDiff))
	})

	t.Run("should keep the status of a failed compare", func(t *testing.T) {
		repoSvc := &MockRepoService{}
		client := NewGitLabClientWithServices(&MockCommitsService{}, repoSvc)
		repoSvc.On("Compare", "group/sub/project", mock.Anything).
			Return(nil, &gitlab.Response{Response: &http.Response{StatusCode: http.StatusNotFound}}, errors.New("404 Project Not Found"))

		_, err := client.GetFilePatch(context.Background(), testTarget, previous, latest)

		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.True(t, errors.Is(err, domainErrors.ErrDiffFetch))
		assert.Equal(t, "404", appErr.ContextString("status_code"))
	})
}

func TestNewGitLabClient(t *testing.T) {
	client, err := NewGitLabClient("tok", "https://gitlab.example.com/api/v4")

	require.NoError(t, err)
	assert.Equal(t, "gitlab", client.ProviderName())
}
