package config

import (
	"bufio"
	"errors"
	"os"
	"strings"

	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/models"
)

const DefaultTargetFile = "git.dat"

// LoadTarget reads the repository identifier (line 1) and the file path
// (line 2) from the data file at path. Further lines are ignored.
func LoadTarget(path string) (models.Target, error) {
	if path == "" {
		path = DefaultTargetFile
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Target{}, domainErrors.ErrTargetMissing.WithError(err).WithContext("path", path)
		}
		return models.Target{}, domainErrors.ErrTargetInvalid.WithError(err).WithContext("path", path)
	}
	defer func() { _ = f.Close() }()

	lines := make([]string, 0, 2)
	scanner := bufio.NewScanner(f)
	for len(lines) < 2 && scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return models.Target{}, domainErrors.ErrTargetInvalid.WithError(err).WithContext("path", path)
	}

	for len(lines) < 2 {
		lines = append(lines, "")
	}

	target := models.Target{
		Repository: strings.TrimPrefix(lines[0], "\ufeff"),
		FilePath:   lines[1],
	}

	if target.Repository == "" {
		return models.Target{}, domainErrors.ErrTargetInvalid.WithContext("path", path).WithContext("key", "repository")
	}
	if target.FilePath == "" {
		return models.Target{}, domainErrors.ErrTargetInvalid.WithContext("path", path).WithContext("key", "file path")
	}

	return target, nil
}
