package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/codescore/internal/i18n"
	"github.com/thomas-vilte/codescore/internal/models"
)

func init() {
	color.NoColor = true
}

func newTestTranslations(t *testing.T) *i18n.Translations {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return trans
}

func scoredReport() *models.ScoreReport {
	completion := `Here is my analysis: {"score": 7, "comment": "ok | fine", "issues": [{"line": 3}]}`
	raw := `{"score": 7, "comment": "ok | fine", "issues": [{"line": 3}]}`
	return &models.ScoreReport{
		Target:     models.Target{Repository: "acme/widgets", FilePath: "target.py"},
		Latest:     models.Commit{SHA: "c2c2c2c2c2", Message: "fix bug\n\nlonger body"},
		Previous:   models.Commit{SHA: "c1c1c1c1c1", Message: "add feature"},
		Completion: &models.Completion{Text: completion},
		Result: &models.AnalysisResult{
			Raw:    raw,
			Data:   map[string]any{"score": float64(7)},
			Pretty: "{\n  \"score\": 7\n}",
		},
		State: models.StateResultExtracted,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatText, true},
		{"TEXT", FormatText, true},
		{"json", FormatJSON, true},
		{"md", FormatMarkdown, true},
		{"markdown", FormatMarkdown, true},
		{"yaml", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestRenderer_Text(t *testing.T) {
	t.Run("should print completion, span and result in order", func(t *testing.T) {
		var out bytes.Buffer
		report := scoredReport()

		require.NoError(t, NewRenderer(&out, newTestTranslations(t), false).Render(report, FormatText))

		text := out.String()
		apiIdx := strings.Index(text, "API Response:")
		spanIdx := strings.Index(text, "Extracted JSON string:")
		resultIdx := strings.Index(text, "Code Analysis Results:")
		require.True(t, apiIdx >= 0 && spanIdx > apiIdx && resultIdx > spanIdx, text)
		assert.Contains(t, text, report.Completion.Text)
		assert.Contains(t, text, report.Result.Raw)
		assert.True(t, strings.HasSuffix(text, "{\n  \"score\": 7\n}\n"))
	})

	t.Run("should print the full completion when no result was found", func(t *testing.T) {
		var out bytes.Buffer
		report := &models.ScoreReport{
			Completion: &models.Completion{Text: "Looks fine."},
			State:      models.StateResultMissing,
		}

		require.NoError(t, NewRenderer(&out, newTestTranslations(t), false).Render(report, FormatText))

		assert.Equal(t, "\nAPI Response:\nLooks fine.\n\nNo JSON object found in the completion\nFull completion text:\nLooks fine.\n", out.String())
	})

	t.Run("should print nothing without a completion", func(t *testing.T) {
		var out bytes.Buffer

		require.NoError(t, NewRenderer(&out, newTestTranslations(t), false).Render(&models.ScoreReport{}, FormatText))

		assert.Empty(t, out.String())
	})
}

func TestRenderer_JSON(t *testing.T) {
	t.Run("should print only the indented result", func(t *testing.T) {
		var out bytes.Buffer

		require.NoError(t, NewRenderer(&out, newTestTranslations(t), false).Render(scoredReport(), FormatJSON))

		assert.Equal(t, "{\n  \"score\": 7\n}\n", out.String())
	})

	t.Run("should fall back to the report without a result", func(t *testing.T) {
		var out bytes.Buffer
		report := &models.ScoreReport{
			Completion: &models.Completion{Text: "no json"},
			State:      models.StateResultMissing,
		}

		require.NoError(t, NewRenderer(&out, newTestTranslations(t), false).Render(report, FormatJSON))

		assert.Contains(t, out.String(), `"state": "result_missing"`)
		assert.Contains(t, out.String(), `"text": "no json"`)
	})
}

func TestRenderer_Markdown(t *testing.T) {
	t.Run("should build one row per key in completion order", func(t *testing.T) {
		md, err := NewRenderer(nil, newTestTranslations(t), false).Markdown(scoredReport())

		require.NoError(t, err)
		assert.Contains(t, md, "# Code Analysis Results\n")
		assert.Contains(t, md, "Repository: acme/widgets | File: target.py")
		assert.Contains(t, md, "`c2c2c2c` fix bug (previous `c1c1c1c`)")
		assert.Contains(t, md, "| score | 7 |\n| comment | ok \\| fine |\n| issues | `[{\"line\":3}]` |\n")
	})

	t.Run("should quote the completion when no result was found", func(t *testing.T) {
		report := &models.ScoreReport{
			Target:     models.Target{Repository: "acme/widgets", FilePath: "target.py"},
			Completion: &models.Completion{Text: "Looks fine."},
		}

		md, err := NewRenderer(nil, newTestTranslations(t), false).Markdown(report)

		require.NoError(t, err)
		assert.Contains(t, md, "> No JSON object found in the completion")
		assert.Contains(t, md, "```\nLooks fine.\n```")
	})

	t.Run("should render through glamour", func(t *testing.T) {
		var out bytes.Buffer

		require.NoError(t, NewRenderer(&out, newTestTranslations(t), false).Render(scoredReport(), FormatMarkdown))

		assert.Contains(t, out.String(), "Code Analysis Results")
		assert.Contains(t, out.String(), "score")
	})
}
