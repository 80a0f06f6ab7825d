package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weathervibes/weathervibes/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"vibe missing", errors.New(errors.CodeVibeMissing, "select a vibe first"), 2},
		{"time spec missing", errors.New(errors.CodeTimeSpecMissing, "pick a month or date range"), 2},
		{"wrapped validation", fmt.Errorf("where: %w", errors.New(errors.CodeValidation, "bad date")), 2},
		{"backend error", errors.New(errors.CodeBackendError, "backend returned HTTP 502"), 1},
		{"plain error", fmt.Errorf("flag parse failed"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
