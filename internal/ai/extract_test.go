package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
)

func TestExtractJSON(t *testing.T) {
	t.Run("should parse only the object inside surrounding prose", func(t *testing.T) {
		result, err := ExtractJSON(`Here is my analysis: {"score": 7, "comment": "ok"} Hope this helps.`)

		require.NoError(t, err)
		assert.Equal(t, `{"score": 7, "comment": "ok"}`, result.Raw)
		assert.Equal(t, float64(7), result.Data["score"])
		assert.Equal(t, "ok", result.Data["comment"])
		assert.Equal(t, "{\n  \"score\": 7,\n  \"comment\": \"ok\"\n}", result.Pretty)
	})

	t.Run("should keep the key order of the completion", func(t *testing.T) {
		result, err := ExtractJSON(`{"z": 1, "a": {"y": [1, 2], "b": null}}`)

		require.NoError(t, err)
		assert.Equal(t, "{\n  \"z\": 1,\n  \"a\": {\n    \"y\": [\n      1,\n      2\n    ],\n    \"b\": null\n  }\n}", result.Pretty)
	})

	t.Run("should span from the first open to the last close brace", func(t *testing.T) {
		result, err := ExtractJSON("```json\n{\"issues\": [{\"line\": 3}], \"score\": 4}\n```")

		require.NoError(t, err)
		assert.Len(t, result.Data["issues"], 1)
	})

	t.Run("should report a missing object when there are no braces", func(t *testing.T) {
		result, err := ExtractJSON("The change looks fine to me.")

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, domainErrors.ErrNoJSONObject))
	})

	t.Run("should report a missing object when braces are reversed", func(t *testing.T) {
		_, err := ExtractJSON("} nothing here {")

		assert.True(t, errors.Is(err, domainErrors.ErrNoJSONObject))
	})

	t.Run("should report a parse failure for an invalid span", func(t *testing.T) {
		_, err := ExtractJSON(`Result: {"score": 7,} and {"other": 1}`)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrResultParse))

		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, `{"score": 7,} and {"other": 1}`, appErr.ContextString("raw"))
	})

	t.Run("should report a parse failure for two separate objects", func(t *testing.T) {
		_, err := ExtractJSON(`{"a": 1} {"b": 2}`)

		assert.True(t, errors.Is(err, domainErrors.ErrResultParse))
	})
}
