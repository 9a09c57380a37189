package providers

import (
	"github.com/thomas-vilte/codescore/internal/config"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/vcs"
	"github.com/thomas-vilte/codescore/internal/vcs/github"
	"github.com/thomas-vilte/codescore/internal/vcs/gitlab"
)

// NewVCSClient creates a VCSClient for the configured repository service
func NewVCSClient(cfg *config.Config) (vcs.VCSClient, error) {
	switch cfg.VCS.Provider {
	case config.VCSGitHub, "":
		client, err := github.NewGitHubClient(cfg.VCS.Token, cfg.VCS.BaseURL, cfg.AI.DiffURL)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.VCSGitLab:
		client, err := gitlab.NewGitLabClient(cfg.VCS.Token, cfg.VCS.BaseURL)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, domainErrors.ErrVCSNotSupported.WithContext("provider", string(cfg.VCS.Provider))
	}
}
