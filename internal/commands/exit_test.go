package commands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		want     int
		reported bool
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain error", err: base, want: 1},
		{name: "reported", err: Reported(base), want: 1, reported: true},
		{name: "custom code", err: &ExitError{Code: 3, Err: base}, want: 3, reported: true},
		{name: "wrapped", err: fmt.Errorf("run: %w", Reported(base)), want: 1, reported: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
			assert.Equal(t, tt.reported, IsReported(tt.err))
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	base := errors.New("boom")
	err := Reported(base)

	assert.True(t, errors.Is(err, base))
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, "exit status", (&ExitError{Code: 1}).Error())
}
