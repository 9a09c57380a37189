package score

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thomas-vilte/codescore/internal/commands"
	"github.com/thomas-vilte/codescore/internal/commands/completion_helper"
	"github.com/thomas-vilte/codescore/internal/config"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/i18n"
	"github.com/thomas-vilte/codescore/internal/logger"
	"github.com/thomas-vilte/codescore/internal/models"
	"github.com/thomas-vilte/codescore/internal/prompt"
	"github.com/thomas-vilte/codescore/internal/services/cost"
	"github.com/thomas-vilte/codescore/internal/ui"
	"github.com/urfave/cli/v3"
)

// Service runs one scoring pass for a target file.
type Service interface {
	Score(ctx context.Context, target models.Target, progress func(models.ProgressEvent)) (*models.ScoreReport, error)
}

// ServiceProvider builds the Service once the configuration is loaded.
type ServiceProvider func(ctx context.Context, cfg *config.Config, tmpl *prompt.Template, maxDiffChars int) (Service, error)

type CommandFactory struct {
	provider ServiceProvider
	costs    *cost.Calculator
}

func NewScoreCommandFactory(provider ServiceProvider) *CommandFactory {
	return &CommandFactory{
		provider: provider,
		costs:    cost.NewCalculator(),
	}
}

func (f *CommandFactory) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:          "score",
		Aliases:       []string{"s"},
		Usage:         t.GetMessage("score.usage", 0, nil),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.Action(t),
	}
}

// Action is also installed on the root command, so running the binary with
// no subcommand scores the configured target.
func (f *CommandFactory) Action(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		stdout, stderr := commands.Stdout(cmd), commands.Stderr(cmd)

		format, ok := ui.ParseFormat(cmd.String(commands.FlagFormat))
		if !ok {
			logger.Warn(ctx, "unknown output format", "format", cmd.String(commands.FlagFormat))
			ui.PrintError(stderr, t.GetMessage("score.unknown_format", 0, map[string]interface{}{
				"Format":    cmd.String(commands.FlagFormat),
				"Supported": supportedFormats(),
			}))
			return commands.Reported(domainErrors.ErrConfigValueInvalid.WithContext("key", commands.FlagFormat))
		}

		if timeout := cmd.Duration(commands.FlagTimeout); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		cfg, err := config.Load(cmd.String(commands.FlagConfig))
		if err != nil {
			return fail(stderr, err, t)
		}

		target, err := config.LoadTarget(cmd.String(commands.FlagTarget))
		if err != nil {
			return fail(stderr, err, t)
		}
		ctx = logger.With(ctx, "repo", target.Repository, "file", target.FilePath)

		tmpl, err := prompt.Load(cmd.String(commands.FlagPrompt))
		if err != nil {
			return fail(stderr, err, t)
		}

		maxDiff := cfg.AI.MaxDiffChars
		if v := int(cmd.Int(commands.FlagMaxDiff)); v >= 0 {
			maxDiff = v
		}

		logger.Debug(ctx, "configuration loaded",
			"config", cfg.PathFile,
			"vcs", cfg.VCS.Provider,
			"ai", cfg.AI.Provider,
			"model", cfg.AI.Model,
			"max_diff", maxDiff)

		service, err := f.provider(ctx, cfg, tmpl, maxDiff)
		if err != nil {
			return fail(stderr, err, t)
		}

		spinner := ui.NewSmartSpinner(stderr, progressMessage(t, models.ProgressEvent{
			State: models.StateCommitsFetched,
			Data:  map[string]interface{}{"Repo": target.Repository, "File": target.FilePath},
		}))
		spinner.Start()

		report, err := service.Score(ctx, target, func(e models.ProgressEvent) {
			spinner.UpdateMessage(progressMessage(t, e))
		})

		// Diagnostics share stdout with text output; structured formats keep
		// stdout for the result alone.
		diag := stdout
		if format != ui.FormatText {
			diag = stderr
		}

		if err != nil {
			spinner.Error(t.GetMessage("ui.failed", 0, nil))
			return reportFailure(ctx, diag, stderr, t, cfg, report, err)
		}
		spinner.Success(t.GetMessage("ui.done", 0, nil))

		if report.DiffTruncated {
			ui.PrintWarning(stderr, t.GetMessage("score.diff_truncated", 0, map[string]interface{}{
				"Max":    maxDiff,
				"Length": report.DiffLength,
			}))
		}

		var usage *models.TokenUsage
		if report.Completion != nil && report.Completion.Usage != nil {
			usage = report.Completion.Usage
			usage.CostUSD = f.costs.EstimateCost(usage)
		}

		renderer := ui.NewRenderer(stdout, t, isTerminal(stdout))
		if err := renderer.Render(report, format); err != nil {
			return fail(stderr, err, t)
		}

		ui.PrintTokenUsage(stderr, usage, t)
		return nil
	}
}

func progressMessage(t *i18n.Translations, e models.ProgressEvent) string {
	switch e.State {
	case models.StateCommitsFetched:
		return t.GetMessage("ui.fetching_commits", 0, e.Data)
	case models.StateDiffFetched:
		return t.GetMessage("ui.fetching_diff", 0, e.Data)
	case models.StateCompletionReceived:
		return t.GetMessage("ui.calling_model", 0, e.Data)
	default:
		return string(e.State)
	}
}

// reportFailure prints the diagnostic for a failed run. Missing history and
// completion failures end the run normally; everything else exits with 1.
func reportFailure(ctx context.Context, diag, stderr io.Writer, t *i18n.Translations, cfg *config.Config, report *models.ScoreReport, err error) error {
	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		logger.Error(ctx, "scoring failed", err, "state", reportState(report))
		ui.HandleAppError(stderr, err, t)
		return commands.Reported(err)
	}

	switch {
	case errors.Is(err, domainErrors.ErrNotEnoughHistory):
		writeLine(diag, t.GetMessage("score.not_enough_history", 0, nil))
		writeLine(diag, t.GetMessage("score.needs_two_commits", 0, nil))
		writeLine(diag, t.GetMessage("score.target", 0, map[string]interface{}{
			"Repo": appErr.ContextString("repo"),
			"File": appErr.ContextString("file"),
		}))
		writeLine(diag, t.GetMessage("score.current_commit_count", 0, map[string]interface{}{
			"Count": appErr.ContextString("count"),
		}))
		return nil

	case errors.Is(err, domainErrors.ErrDiffFetch):
		writeLine(diag, t.GetMessage("score.diff_fetch_error", 0, map[string]interface{}{
			"Provider": providerLabel(cfg.VCS.Provider),
		}))
		if status := appErr.ContextString("status_code"); status != "" {
			writeLine(diag, t.GetMessage("score.status_code", 0, map[string]interface{}{"Status": status}))
			writeLine(diag, t.GetMessage("score.response", 0, map[string]interface{}{"Body": appErr.ContextString("response")}))
		} else {
			writeLine(diag, t.GetMessage("score.error", 0, map[string]interface{}{"Message": err.Error()}))
		}
		return commands.Reported(err)

	case errors.Is(err, domainErrors.ErrNoDiff):
		writeLine(diag, t.GetMessage("score.no_diff", 0, nil))
		return commands.Reported(err)

	case isCompletionFailure(appErr):
		logger.Debug(ctx, "completion failure reported", "type", appErr.Type)
		if report != nil && report.Completion != nil {
			_, _ = fmt.Fprintf(diag, "\n%s\n%s\n", t.GetMessage("score.api_response", 0, nil), report.Completion.Text)
			if raw := appErr.ContextString("raw"); raw != "" {
				_, _ = fmt.Fprintf(diag, "\n%s\n%s\n", t.GetMessage("score.extracted_json", 0, nil), raw)
			}
		}
		_, _ = fmt.Fprintf(diag, "\n%s\n", t.GetMessage("score.error", 0, map[string]interface{}{"Message": err.Error()}))
		if body := appErr.ContextString("response"); body != "" {
			writeLine(diag, t.GetMessage("score.response_details", 0, nil))
			writeLine(diag, body)
		}
		return nil

	default:
		logger.Error(ctx, "scoring failed", err, "state", reportState(report))
		ui.HandleAppError(stderr, err, t)
		return commands.Reported(err)
	}
}

func reportState(report *models.ScoreReport) models.ScoreState {
	if report == nil {
		return ""
	}
	return report.State
}

func supportedFormats() string {
	names := make([]string, 0, len(ui.SupportedFormats()))
	for _, f := range ui.SupportedFormats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func isCompletionFailure(appErr *domainErrors.AppError) bool {
	switch appErr.Type {
	case domainErrors.TypeAITransport, domainErrors.TypeAIAuth, domainErrors.TypeAIResponse, domainErrors.TypeResultParse:
		return true
	default:
		return false
	}
}

func providerLabel(p config.VCS) string {
	if p == config.VCSGitLab {
		return "GitLab"
	}
	return "GitHub"
}

func fail(w io.Writer, err error, t *i18n.Translations) error {
	ui.HandleAppError(w, err, t)
	return commands.Reported(err)
}

func writeLine(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, s)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTerminal(f)
}
