package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/thomas-vilte/codescore/internal/ai"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/logger"
	"github.com/thomas-vilte/codescore/internal/models"
	"github.com/thomas-vilte/codescore/internal/prompt"
	"github.com/thomas-vilte/codescore/internal/vcs"
)

// scoreVCSClient defines the methods needed by ScoreService from a VCS provider.
type scoreVCSClient interface {
	ListFileCommits(ctx context.Context, target models.Target) ([]models.Commit, error)
	GetFilePatch(ctx context.Context, target models.Target, previous, latest models.Commit) (string, error)
}

// scoreAIProvider defines the methods needed by ScoreService from an AI provider.
type scoreAIProvider interface {
	Complete(ctx context.Context, pair models.PromptPair) (models.Completion, error)
	ModelName() string
}

type ScoreService struct {
	vcsClient    scoreVCSClient
	aiService    scoreAIProvider
	template     *prompt.Template
	maxDiffChars int
}

type ScoreOption func(*ScoreService)

func WithScoreVCSClient(client scoreVCSClient) ScoreOption {
	return func(s *ScoreService) {
		s.vcsClient = client
	}
}

func WithScoreAIProvider(provider scoreAIProvider) ScoreOption {
	return func(s *ScoreService) {
		s.aiService = provider
	}
}

func WithScoreTemplate(tmpl *prompt.Template) ScoreOption {
	return func(s *ScoreService) {
		s.template = tmpl
	}
}

// WithScoreMaxDiff caps the diff inserted into the prompt. Zero disables the cap.
func WithScoreMaxDiff(maxChars int) ScoreOption {
	return func(s *ScoreService) {
		s.maxDiffChars = maxChars
	}
}

func NewScoreService(opts ...ScoreOption) *ScoreService {
	s := &ScoreService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score runs the pipeline for one target file: list its commits, diff the two
// newest, render the prompt, ask the model and extract the JSON verdict.
//
// The report is returned together with any error so the caller can show how
// far the run got. A completion without a JSON object is not an error; the
// report ends in StateResultMissing.
func (s *ScoreService) Score(ctx context.Context, target models.Target, progress func(models.ProgressEvent)) (*models.ScoreReport, error) {
	log := logger.FromContext(ctx)

	report := &models.ScoreReport{
		Target: target,
		State:  models.StateConfigLoaded,
	}

	if s.vcsClient == nil || s.aiService == nil || s.template == nil {
		return report, domainErrors.NewAppError(domainErrors.TypeInternal, "score service is not fully configured", nil)
	}

	log.Info("scoring file",
		"repo", target.Repository,
		"file", target.FilePath)

	emit(progress, models.StateCommitsFetched, map[string]interface{}{
		"Repo": target.Repository,
		"File": target.FilePath,
	})

	start := time.Now()
	step := start
	commits, err := s.vcsClient.ListFileCommits(ctx, target)
	if err != nil {
		return report, err
	}
	log.Debug("commits listed",
		"count", len(commits),
		"duration_ms", time.Since(step).Milliseconds())

	if len(commits) < vcs.HistoryDepth {
		log.Warn("not enough commit history",
			"repo", target.Repository,
			"file", target.FilePath,
			"count", len(commits))
		return report, domainErrors.ErrNotEnoughHistory.
			WithContext("repo", target.Repository).
			WithContext("file", target.FilePath).
			WithContext("count", len(commits))
	}

	report.Latest = commits[0]
	report.Previous = commits[1]
	report.State = models.StateCommitsFetched

	log.Debug("commits selected",
		"latest", report.Latest.ShortSHA(),
		"previous", report.Previous.ShortSHA())

	emit(progress, models.StateDiffFetched, map[string]interface{}{
		"Previous": report.Previous.ShortSHA(),
		"Latest":   report.Latest.ShortSHA(),
	})

	step = time.Now()
	patch, err := s.vcsClient.GetFilePatch(ctx, target, report.Previous, report.Latest)
	if err != nil {
		return report, err
	}
	log.Debug("diff fetched",
		"bytes", len(patch),
		"duration_ms", time.Since(step).Milliseconds())

	report.DiffLength = utf8.RuneCountInString(patch)
	patch, report.DiffTruncated = prompt.Truncate(patch, s.maxDiffChars)
	report.State = models.StateDiffFetched

	if report.DiffTruncated {
		log.Warn("diff truncated",
			"length", report.DiffLength,
			"max", s.maxDiffChars)
	}

	report.Prompt = s.template.Render(report.Latest.Message, patch)
	report.State = models.StatePromptAssembled

	log.Debug("prompt assembled",
		"system_length", len(report.Prompt.System),
		"user_length", len(report.Prompt.User))

	emit(progress, models.StateCompletionReceived, map[string]interface{}{
		"Model": s.aiService.ModelName(),
	})

	completion, err := s.aiService.Complete(ctx, report.Prompt)
	if err != nil {
		log.Error("completion failed",
			"error", err,
			"model", s.aiService.ModelName())
		return report, err
	}

	report.Completion = &completion
	report.State = models.StateCompletionReceived

	result, err := ai.ExtractJSON(completion.Text)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNoJSONObject) {
			log.Warn("completion has no JSON object",
				"completion_length", len(completion.Text))
			report.State = models.StateResultMissing
			return report, nil
		}
		return report, err
	}

	report.Result = result
	report.State = models.StateResultExtracted

	log.Info("file scored",
		"repo", target.Repository,
		"file", target.FilePath,
		"keys", len(result.Data),
		"duration_ms", time.Since(start).Milliseconds())

	return report, nil
}

func emit(progress func(models.ProgressEvent), state models.ScoreState, data map[string]interface{}) {
	if progress == nil {
		return
	}
	progress(models.ProgressEvent{State: state, Data: data})
}
