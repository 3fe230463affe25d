package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/pos-billing/internal/logging"
)

func TestLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pos.log")
	logger, closeLog, err := logging.New(logging.Options{Level: "warn", File: path})
	require.NoError(t, err)

	logger.Info().Msg("dropped")
	logger.Warn().Str("bill_id", "0001").Msg("kept")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), `"bill_id":"0001"`)
	assert.Contains(t, string(data), `"message":"kept"`)
}

func TestVerboseMirrorsToStderr(t *testing.T) {
	var stderr bytes.Buffer
	logger, closeLog, err := logging.New(logging.Options{Level: "error", Verbose: true, Stderr: &stderr})
	require.NoError(t, err)
	defer closeLog()

	logger.Debug().Msg("debug line")
	assert.Contains(t, stderr.String(), "debug line")
}
