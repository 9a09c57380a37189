package prompt

import (
	"errors"
	"os"
	"strings"
	"unicode/utf8"

	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/models"
)

const (
	DefaultTemplateFile = "prompt.dat"

	SystemMarker = "--- system"
	UserMarker   = "--- user"

	MessagePlaceholder = "{{message}}"
	DiffPlaceholder    = "{{diff | truncate: 100000}}"
)

// Template is a parsed prompt file split into its system and user sections.
type Template struct {
	System string
	User   string
}

// Load reads and parses the template file at path.
func Load(path string) (*Template, error) {
	if path == "" {
		path = DefaultTemplateFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domainErrors.ErrPromptMissing.WithError(err).WithContext("path", path)
	}

	tmpl, err := Parse(string(data))
	if err != nil {
		var appErr *domainErrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr.WithContext("path", path)
		}
		return nil, err
	}
	return tmpl, nil
}

// Parse splits text at the first "--- user" marker. Everything before it,
// minus the "--- system" marker, is the system section.
func Parse(text string) (*Template, error) {
	system, user, found := strings.Cut(text, UserMarker)
	if !found {
		return nil, domainErrors.ErrPromptInvalid
	}

	system = strings.Replace(system, SystemMarker, "", 1)

	return &Template{
		System: strings.TrimSpace(system),
		User:   strings.TrimSpace(user),
	}, nil
}

// Render substitutes every occurrence of the message and diff placeholders in
// the user section. Values are inserted verbatim.
func (t *Template) Render(message, diff string) models.PromptPair {
	user := strings.ReplaceAll(t.User, MessagePlaceholder, message)
	user = strings.ReplaceAll(user, DiffPlaceholder, diff)

	return models.PromptPair{
		System: t.System,
		User:   user,
	}
}

// Truncate caps diff at max characters (runes). max <= 0 disables the cap.
func Truncate(diff string, max int) (string, bool) {
	if max <= 0 || utf8.RuneCountInString(diff) <= max {
		return diff, false
	}

	count := 0
	for i := range diff {
		if count == max {
			return diff[:i], true
		}
		count++
	}
	return diff, false
}
