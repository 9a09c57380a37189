package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/thomas-vilte/codescore/internal/i18n"
	"github.com/thomas-vilte/codescore/internal/models"
)

func PrintTokenUsage(w io.Writer, usage *models.TokenUsage, t *i18n.Translations) {
	if usage == nil {
		return
	}
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	_, _ = cyan.Fprint(w, "📊 ")
	_, _ = fmt.Fprintf(w, "%s: ", t.GetMessage("ui.token_usage", 0, nil))
	_, _ = fmt.Fprintf(w, "%s %d | ", t.GetMessage("ui.input", 0, nil), usage.InputTokens)
	_, _ = fmt.Fprintf(w, "%s %d | ", t.GetMessage("ui.output", 0, nil), usage.OutputTokens)
	_, _ = fmt.Fprintf(w, "%s %d\n", t.GetMessage("ui.total", 0, nil), usage.TotalTokens)
	if usage.CostUSD > 0 {
		_, _ = yellow.Fprint(w, "💰 ")
		_, _ = fmt.Fprintf(w, "%s: ", t.GetMessage("ui.cost", 0, nil))
		_, _ = yellow.Fprintf(w, "$%.4f USD\n", usage.CostUSD)
	}
	if usage.DurationMs > 0 {
		_, _ = fmt.Fprintf(w, "⏱️  %s: %dms\n", t.GetMessage("ui.duration", 0, nil), usage.DurationMs)
	}
}
