package gitlab

import (
	"context"
	"net/http"
	"strings"

	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/logger"
	"github.com/thomas-vilte/codescore/internal/models"
	"github.com/thomas-vilte/codescore/internal/vcs"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

var _ vcs.VCSClient = (*GitLabClient)(nil)

type CommitsService interface {
	ListCommits(pid any, opt *gitlab.ListCommitsOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Commit, *gitlab.Response, error)
}

type RepositoriesService interface {
	Compare(pid any, opt *gitlab.CompareOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Compare, *gitlab.Response, error)
}

// GitLabClient reads commit history and diffs from GitLab. The target
// repository is the project's full path, subgroups included.
type GitLabClient struct {
	commitsService CommitsService
	repoService    RepositoriesService
}

// NewGitLabClient builds a client for gitlab.com, or for the instance at
// baseURL when it is set.
func NewGitLabClient(token, baseURL string) (*GitLabClient, error) {
	var opts []gitlab.ClientOptionFunc
	if baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}

	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, domainErrors.ErrConfigValueInvalid.
			WithError(err).
			WithContext("key", "Github.BaseURL")
	}

	return NewGitLabClientWithServices(client.Commits, client.Repositories), nil
}

func NewGitLabClientWithServices(commitsService CommitsService, repoService RepositoriesService) *GitLabClient {
	return &GitLabClient{
		commitsService: commitsService,
		repoService:    repoService,
	}
}

func (glc *GitLabClient) ProviderName() string {
	return "gitlab"
}

func (glc *GitLabClient) ListFileCommits(ctx context.Context, target models.Target) ([]models.Commit, error) {
	log := logger.FromContext(ctx)

	if target.Owner() == "" || target.Name() == "" {
		return nil, domainErrors.ErrInvalidRepository.WithContext("repo", target.Repository)
	}

	opts := &gitlab.ListCommitsOptions{
		Path: gitlab.Ptr(target.FilePath),
		ListOptions: gitlab.ListOptions{
			Page:    1,
			PerPage: vcs.HistoryDepth,
		},
	}

	log.Debug("listing file commits",
		"project", target.Repository,
		"path", target.FilePath)

	glCommits, resp, err := glc.commitsService.ListCommits(target.Repository, opts, gitlab.WithContext(ctx))
	if err != nil {
		log.Error("failed to list commits",
			"error", err,
			"project", target.Repository,
			"path", target.FilePath)
		return nil, responseError(domainErrors.ErrListCommits, resp, err).
			WithContext("repo", target.Repository).
			WithContext("file", target.FilePath)
	}

	commits := make([]models.Commit, 0, len(glCommits))
	for _, c := range glCommits {
		if c == nil {
			continue
		}
		commit := models.Commit{
			SHA:     c.ID,
			Message: c.Message,
			Author:  c.AuthorName,
		}
		if c.CommittedDate != nil {
			commit.Date = *c.CommittedDate
		}
		commits = append(commits, commit)
	}

	log.Debug("file commits listed", "count", len(commits))
	return commits, nil
}

func (glc *GitLabClient) GetFilePatch(ctx context.Context, target models.Target, previous, latest models.Commit) (string, error) {
	log := logger.FromContext(ctx)

	opts := &gitlab.CompareOptions{
		From: gitlab.Ptr(previous.SHA),
		To:   gitlab.Ptr(latest.SHA),
	}

	compare, resp, err := glc.repoService.Compare(target.Repository, opts, gitlab.WithContext(ctx))
	if err != nil {
		log.Error("compare request failed",
			"error", err,
			"project", target.Repository)
		return "", responseError(domainErrors.ErrDiffFetch, resp, err).
			WithContext("response", err.Error())
	}

	if compare != nil {
		for _, diff := range compare.Diffs {
			if diff == nil || diff.NewPath != target.FilePath {
				continue
			}
			if strings.TrimSpace(diff.Diff) == "" {
				break
			}
			log.Debug("patch found",
				"file", diff.NewPath,
				"patch_length", len(diff.Diff))
			return diff.Diff, nil
		}
	}

	return "", domainErrors.ErrNoDiff.WithContext("file", target.FilePath)
}

func responseError(base *domainErrors.AppError, resp *gitlab.Response, err error) *domainErrors.AppError {
	if resp != nil && resp.Response != nil {
		if resp.StatusCode == http.StatusUnauthorized {
			return domainErrors.ErrVCSTokenInvalid.WithError(err)
		}
		return base.WithError(err).WithContext("status_code", resp.StatusCode)
	}
	return base.WithError(err)
}
