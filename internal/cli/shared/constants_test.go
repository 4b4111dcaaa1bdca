package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	cause := errors.New("username is required")

	tests := map[string]struct {
		err        error
		wantCode   int
		wantSilent bool
	}{
		"nil":            {err: nil, wantCode: ExitSuccess},
		"plain error":    {err: cause, wantCode: ExitFailure},
		"bare exit":      {err: NewExitError(ExitMissingDependency), wantCode: ExitMissingDependency, wantSilent: true},
		"wrapped exit":   {err: WrapExitError(ExitInvalidArguments, cause), wantCode: ExitInvalidArguments},
		"nested wrapped": {err: fmt.Errorf("loading: %w", WrapExitError(ExitInvalidArguments, cause)), wantCode: ExitInvalidArguments},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantCode, ExitCode(tt.err))
			assert.Equal(t, tt.wantSilent, Silent(tt.err))
		})
	}
}

func TestWrapExitError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, WrapExitError(ExitInvalidArguments, nil))

	cause := errors.New("bad interval")
	err := WrapExitError(ExitInvalidArguments, cause)
	assert.Equal(t, "bad interval", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "exit code 4", NewExitError(ExitMissingDependency).Error())
}
