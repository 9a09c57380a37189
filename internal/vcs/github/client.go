package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/httpclient"
	"github.com/thomas-vilte/codescore/internal/logger"
	"github.com/thomas-vilte/codescore/internal/models"
	"github.com/thomas-vilte/codescore/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.VCSClient = (*GitHubClient)(nil)

// Placeholders accepted in the compare URL template.
const (
	RepoPlaceholder           = "{repo_name}"
	PreviousCommitPlaceholder = "{previous_commit}"
	LatestCommitPlaceholder   = "{latest_commit}"
)

const maxErrorBody = 64 * 1024

type RepositoriesService interface {
	ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error)
}

type GitHubClient struct {
	repoService RepositoriesService
	httpClient  httpclient.HTTPClient
	token       string
	diffURL     string
}

type compareResponse struct {
	Files []compareFile `json:"files"`
}

type compareFile struct {
	Filename string `json:"filename"`
	Patch    string `json:"patch"`
}

// NewGitHubClient builds a client authenticated with token. baseURL points at
// a GitHub Enterprise API root and may be empty. diffURL is the compare URL
// template with {repo_name}, {previous_commit} and {latest_commit}.
func NewGitHubClient(token, baseURL, diffURL string) (*GitHubClient, error) {
	var authClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		authClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(authClient)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, domainErrors.ErrConfigValueInvalid.
				WithError(err).
				WithContext("key", "Github.BaseURL")
		}
	}

	return &GitHubClient{
		repoService: client.Repositories,
		httpClient:  &http.Client{},
		token:       token,
		diffURL:     diffURL,
	}, nil
}

func NewGitHubClientWithServices(repoService RepositoriesService, httpClient httpclient.HTTPClient, token, diffURL string) *GitHubClient {
	return &GitHubClient{
		repoService: repoService,
		httpClient:  httpClient,
		token:       token,
		diffURL:     diffURL,
	}
}

func (ghc *GitHubClient) ProviderName() string {
	return "github"
}

func (ghc *GitHubClient) ListFileCommits(ctx context.Context, target models.Target) ([]models.Commit, error) {
	log := logger.FromContext(ctx)

	owner, repo := target.Owner(), target.Name()
	if owner == "" || repo == "" {
		return nil, domainErrors.ErrInvalidRepository.WithContext("repo", target.Repository)
	}

	opts := &github.CommitsListOptions{
		Path:        target.FilePath,
		ListOptions: github.ListOptions{PerPage: vcs.HistoryDepth},
	}

	log.Debug("listing file commits",
		"repo", target.Repository,
		"path", target.FilePath)

	ghCommits, resp, err := ghc.repoService.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		log.Error("failed to list commits",
			"error", err,
			"repo", target.Repository,
			"path", target.FilePath)
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, domainErrors.ErrVCSTokenInvalid.WithError(err)
		}
		appErr := domainErrors.ErrListCommits.
			WithError(err).
			WithContext("repo", target.Repository).
			WithContext("file", target.FilePath)
		if resp != nil {
			appErr = appErr.WithContext("status_code", resp.StatusCode)
		}
		return nil, appErr
	}

	commits := make([]models.Commit, 0, len(ghCommits))
	for _, c := range ghCommits {
		commit := models.Commit{
			SHA:     c.GetSHA(),
			Message: c.GetCommit().GetMessage(),
		}
		if author := c.GetCommit().GetAuthor(); author != nil {
			commit.Author = author.GetName()
			commit.Date = author.GetDate().Time
		}
		commits = append(commits, commit)
	}

	log.Debug("file commits listed", "count", len(commits))
	return commits, nil
}

// CompareURL fills the compare URL template for one commit pair.
func (ghc *GitHubClient) CompareURL(target models.Target, previous, latest models.Commit) string {
	return strings.NewReplacer(
		RepoPlaceholder, target.Repository,
		PreviousCommitPlaceholder, previous.SHA,
		LatestCommitPlaceholder, latest.SHA,
	).Replace(ghc.diffURL)
}

func (ghc *GitHubClient) GetFilePatch(ctx context.Context, target models.Target, previous, latest models.Commit) (string, error) {
	log := logger.FromContext(ctx)
	url := ghc.CompareURL(target, previous, latest)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", domainErrors.ErrDiffFetch.WithError(err).WithContext("url", url)
	}
	req.Header.Set("Authorization", "token "+ghc.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	log.Debug("fetching compare data", "url", url)

	resp, err := ghc.httpClient.Do(req)
	if err != nil {
		return "", domainErrors.ErrDiffFetch.WithError(err).WithContext("url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domainErrors.ErrDiffFetch.WithError(err).WithContext("url", url)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("compare request failed",
			"status", resp.StatusCode,
			"url", url)
		return "", domainErrors.ErrDiffFetch.
			WithContext("status_code", resp.StatusCode).
			WithContext("response", truncateBody(body))
	}

	var compare compareResponse
	if err := json.Unmarshal(body, &compare); err != nil {
		return "", domainErrors.ErrDiffFetch.
			WithError(fmt.Errorf("decoding compare response: %w", err)).
			WithContext("status_code", resp.StatusCode).
			WithContext("response", truncateBody(body))
	}

	for _, file := range compare.Files {
		if file.Filename != target.FilePath {
			continue
		}
		if file.Patch == "" {
			break
		}
		log.Debug("patch found",
			"file", file.Filename,
			"patch_length", len(file.Patch))
		return file.Patch, nil
	}

	return "", domainErrors.ErrNoDiff.
		WithContext("file", target.FilePath).
		WithContext("files_in_compare", len(compare.Files))
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
