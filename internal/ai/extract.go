package ai

import (
	"bytes"
	"encoding/json"
	"strings"

	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/models"
)

// ExtractJSON slices completion from its first '{' to its last '}' and parses
// the span as a JSON object. Prose around the span is ignored.
//
// ErrNoJSONObject means there was no brace pair at all; ErrResultParse means
// a span was found but it is not a valid JSON object.
func ExtractJSON(completion string) (*models.AnalysisResult, error) {
	start := strings.Index(completion, "{")
	end := strings.LastIndex(completion, "}")

	if start < 0 || end <= start {
		return nil, domainErrors.ErrNoJSONObject
	}

	raw := completion[start : end+1]

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, domainErrors.ErrResultParse.WithError(err).WithContext("raw", raw)
	}

	// json.Indent keeps the model's key order, which a map round-trip would lose.
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(raw), "", "  "); err != nil {
		return nil, domainErrors.ErrResultParse.WithError(err).WithContext("raw", raw)
	}

	return &models.AnalysisResult{
		Raw:    raw,
		Data:   data,
		Pretty: pretty.String(),
	}, nil
}
