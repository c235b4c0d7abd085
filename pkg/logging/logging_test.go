package logging

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger_VerbosityLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		expected  zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{99, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		SetupLogger(tt.verbosity)
		assert.Equal(t, tt.expected, zerolog.GlobalLevel())
	}
}

func TestGetLogFilePath_RespectsStateHome(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateDir)

	path := getLogFilePath()
	assert.Equal(t, filepath.Join(stateDir, "ksync", "ksync.log"), path)
}

func TestGetLogger_HasComponentField(t *testing.T) {
	logger := GetLogger("staging")
	// The logger must be usable without further setup.
	logger.Debug().Msg("test message")
}
