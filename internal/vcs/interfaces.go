package vcs

import (
	"context"

	"github.com/thomas-vilte/codescore/internal/models"
)

// VCSClient defines the calls the score pipeline makes against a hosted
// repository service.
type VCSClient interface {
	// ListFileCommits returns the commits that touched the target file, newest first.
	ListFileCommits(ctx context.Context, target models.Target) ([]models.Commit, error)
	// GetFilePatch returns the unified diff hunks of the target file between two commits.
	GetFilePatch(ctx context.Context, target models.Target, previous, latest models.Commit) (string, error)
	// ProviderName returns the name of the provider (e.g.: "github", "gitlab")
	ProviderName() string
}

// HistoryDepth is how many commits the pipeline needs to build a diff.
const HistoryDepth = 2
