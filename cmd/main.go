package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/thomas-vilte/codescore/internal/commands"
	configCmd "github.com/thomas-vilte/codescore/internal/commands/config"
	"github.com/thomas-vilte/codescore/internal/commands/registry"
	"github.com/thomas-vilte/codescore/internal/commands/score"
	cfg "github.com/thomas-vilte/codescore/internal/config"
	"github.com/thomas-vilte/codescore/internal/i18n"
	"github.com/thomas-vilte/codescore/internal/logger"
	"github.com/thomas-vilte/codescore/internal/prompt"
	"github.com/thomas-vilte/codescore/internal/providers"
	"github.com/thomas-vilte/codescore/internal/ui"
	"github.com/thomas-vilte/codescore/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	translations, err := i18n.NewTranslations(initialLanguage(), "")
	if err != nil {
		log.Fatalf("Error loading translations: %v", err)
	}

	app, err := initializeApp(translations)
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = app.Run(ctx, os.Args)
	stop()

	if err != nil {
		ui.StopActiveSpinner()
		if !commands.IsReported(err) {
			ui.HandleAppError(os.Stderr, err, translations)
		}
		os.Exit(commands.ExitCode(err))
	}
}

// initialLanguage picks the language for help text, which is built before
// flags are parsed. The --lang flag is applied again in Before.
func initialLanguage() string {
	if lang := os.Getenv(commands.EnvLang); lang != "" {
		for _, supported := range cfg.SupportedLanguages() {
			if lang == supported {
				return lang
			}
		}
	}
	return cfg.LangEN
}

func initializeApp(translations *i18n.Translations) (*cli.Command, error) {
	scoreFactory := score.NewScoreCommandFactory(func(ctx context.Context, c *cfg.Config, tmpl *prompt.Template, maxDiffChars int) (score.Service, error) {
		service, err := providers.NewScoreService(ctx, c, tmpl, maxDiffChars)
		if err != nil {
			return nil, err
		}
		return service, nil
	})

	registerCommand := registry.NewRegistry(translations)

	if err := registerCommand.Register("score", scoreFactory); err != nil {
		return nil, fmt.Errorf("registering 'score': %w", err)
	}

	if err := registerCommand.Register("config", configCmd.NewConfigCommandFactory()); err != nil {
		return nil, fmt.Errorf("registering 'config': %w", err)
	}

	return &cli.Command{
		Name:                  "codescore",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.FullVersion(),
		Description:           translations.GetMessage("app_description", 0, nil),
		Flags:                 commands.GlobalFlags(translations),
		Commands:              registerCommand.CreateCommands(),
		Action:                scoreFactory.Action(translations),
		EnableShellCompletion: true,
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool(commands.FlagDebug), cmd.Bool(commands.FlagVerbose))
			if err := translations.SetLanguage(cmd.String(commands.FlagLang)); err != nil {
				return ctx, err
			}
			logger.Debug(ctx, "starting", "version", version.FullVersion())
			return ctx, nil
		},
	}, nil
}
