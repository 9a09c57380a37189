package commands

import (
	"io"
	"os"

	"github.com/thomas-vilte/codescore/internal/config"
	"github.com/thomas-vilte/codescore/internal/i18n"
	"github.com/thomas-vilte/codescore/internal/prompt"
	"github.com/urfave/cli/v3"
)

const (
	FlagConfig  = "config"
	FlagTarget  = "target"
	FlagPrompt  = "prompt"
	FlagMaxDiff = "max-diff"
	FlagFormat  = "format"
	FlagTimeout = "timeout"
	FlagDebug   = "debug"
	FlagVerbose = "verbose"
	FlagLang    = "lang"

	EnvLang = "CODESCORE_LANG"
)

// GlobalFlags are declared on the root command and inherited by every
// subcommand.
func GlobalFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagConfig,
			Aliases: []string{"c"},
			Value:   config.DefaultConfigFile,
			Usage:   t.GetMessage("flags.config", 0, nil),
		},
		&cli.StringFlag{
			Name:  FlagTarget,
			Value: config.DefaultTargetFile,
			Usage: t.GetMessage("flags.target", 0, nil),
		},
		&cli.StringFlag{
			Name:  FlagPrompt,
			Value: prompt.DefaultTemplateFile,
			Usage: t.GetMessage("flags.prompt", 0, nil),
		},
		&cli.IntFlag{
			Name:  FlagMaxDiff,
			Value: -1,
			Usage: t.GetMessage("flags.max_diff", 0, nil),
		},
		&cli.StringFlag{
			Name:    FlagFormat,
			Aliases: []string{"f"},
			Value:   "text",
			Usage:   t.GetMessage("flags.format", 0, nil),
		},
		&cli.DurationFlag{
			Name:  FlagTimeout,
			Usage: t.GetMessage("flags.timeout", 0, nil),
		},
		&cli.BoolFlag{
			Name:  FlagDebug,
			Usage: t.GetMessage("flags.debug", 0, nil),
		},
		&cli.BoolFlag{
			Name:  FlagVerbose,
			Usage: t.GetMessage("flags.verbose", 0, nil),
		},
		&cli.StringFlag{
			Name:    FlagLang,
			Value:   config.LangEN,
			Usage:   t.GetMessage("flags.lang", 0, nil),
			Sources: cli.EnvVars(EnvLang),
		},
	}
}

// Stdout returns the writer results go to. Tests swap it through the root
// command.
func Stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// Stderr returns the writer for progress, warnings and errors.
func Stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
