package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/thomas-vilte/codescore/internal/i18n"
	"github.com/thomas-vilte/codescore/internal/models"
)

type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

func SupportedFormats() []Format {
	return []Format{FormatText, FormatJSON, FormatMarkdown}
}

// ParseFormat accepts a case-insensitive format name; "md" is an alias of markdown.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatText):
		return FormatText, true
	case string(FormatJSON):
		return FormatJSON, true
	case string(FormatMarkdown), "md":
		return FormatMarkdown, true
	default:
		return "", false
	}
}

// Renderer writes a finished score report to stdout in one of the formats.
type Renderer struct {
	out           io.Writer
	t             *i18n.Translations
	markdownStyle string
	wordWrap      int
}

// NewRenderer returns a renderer writing to out. Markdown is styled for a dark
// terminal when styled is true and left plain otherwise.
func NewRenderer(out io.Writer, t *i18n.Translations, styled bool) *Renderer {
	style := "notty"
	if styled {
		style = "dark"
	}
	return &Renderer{
		out:           out,
		t:             t,
		markdownStyle: style,
		wordWrap:      100,
	}
}

func (r *Renderer) Render(report *models.ScoreReport, format Format) error {
	switch format {
	case FormatJSON:
		return r.renderJSON(report)
	case FormatMarkdown:
		return r.renderMarkdown(report)
	default:
		r.renderText(report)
		return nil
	}
}

// renderText prints the completion, the extracted span and the indented
// result, in that order.
func (r *Renderer) renderText(report *models.ScoreReport) {
	if report.Completion == nil {
		return
	}

	r.printf("\n%s\n%s\n", r.t.GetMessage("score.api_response", 0, nil), report.Completion.Text)

	if report.Result == nil {
		r.printf("\n%s\n%s\n%s\n",
			r.t.GetMessage("score.no_json", 0, nil),
			r.t.GetMessage("score.full_completion", 0, nil),
			report.Completion.Text)
		return
	}

	r.printf("\n%s\n%s\n", r.t.GetMessage("score.extracted_json", 0, nil), report.Result.Raw)
	r.printf("\n%s\n%s\n", r.t.GetMessage("score.results", 0, nil), report.Result.Pretty)
}

// renderJSON prints only the indented result so it can be piped. When there
// is no result the whole report is printed instead.
func (r *Renderer) renderJSON(report *models.ScoreReport) error {
	if report.Result != nil {
		r.printf("%s\n", report.Result.Pretty)
		return nil
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	r.printf("%s\n", data)
	return nil
}

func (r *Renderer) renderMarkdown(report *models.ScoreReport) error {
	md, err := r.Markdown(report)
	if err != nil {
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.markdownStyle),
		glamour.WithWordWrap(r.wordWrap),
	)
	if err != nil {
		return fmt.Errorf("creating glamour renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	r.printf("%s", out)
	return nil
}

// Markdown builds the markdown document for a report: a header naming the
// target and commits, then one table row per top-level result key.
func (r *Renderer) Markdown(report *models.ScoreReport) (string, error) {
	var sb strings.Builder

	sb.WriteString("# " + strings.TrimSuffix(r.t.GetMessage("score.results", 0, nil), ":") + "\n\n")
	sb.WriteString(r.t.GetMessage("score.target", 0, map[string]interface{}{
		"Repo": report.Target.Repository,
		"File": report.Target.FilePath,
	}) + "\n\n")
	if report.Latest.SHA != "" {
		fmt.Fprintf(&sb, "**%s:** `%s` %s (%s `%s`)\n\n",
			r.t.GetMessage("score.commit", 0, nil),
			report.Latest.ShortSHA(),
			firstLine(report.Latest.Message),
			r.t.GetMessage("score.previous_commit", 0, nil),
			report.Previous.ShortSHA())
	}

	if report.Result == nil {
		sb.WriteString("> " + r.t.GetMessage("score.no_json", 0, nil) + "\n\n")
		if report.Completion != nil {
			sb.WriteString("```\n" + report.Completion.Text + "\n```\n")
		}
		return sb.String(), nil
	}

	fields, err := orderedFields(report.Result.Raw)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(&sb, "| %s | %s |\n|---|---|\n",
		r.t.GetMessage("score.markdown_key", 0, nil),
		r.t.GetMessage("score.markdown_value", 0, nil))
	for _, f := range fields {
		fmt.Fprintf(&sb, "| %s | %s |\n", escapeCell(f.key), cellValue(f.value))
	}

	return sb.String(), nil
}

func (r *Renderer) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

type field struct {
	key   string
	value json.RawMessage
}

// orderedFields returns the top-level members of a JSON object in the order
// they appear.
func orderedFields(raw string) ([]field, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading result: %w", err)
	}

	var fields []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading result key: %w", err)
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("reading result value: %w", err)
		}
		fields = append(fields, field{key: key, value: value})
	}
	return fields, nil
}

func cellValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return escapeCell(s)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return escapeCell(string(raw))
	}
	if b := compact.Bytes(); len(b) > 0 && (b[0] == '{' || b[0] == '[') {
		return "`" + escapeCell(compact.String()) + "`"
	}
	return escapeCell(compact.String())
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
