package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Station-Manager/ddsctl/config"
)

func TestNewConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default().Logging
	cfg.Level = "info"

	logger, closer, err := New(cfg, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug().Msg("hidden")
	logger.Info().Str("port", "/dev/ttyUSB0").Msg("serial port ready")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "serial port ready")
	assert.Contains(t, out, "port=/dev/ttyUSB0")
}

func TestNewWithFile(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default().Logging
	cfg.Level = "debug"
	cfg.File = filepath.Join(t.TempDir(), "logs", "ddsctl.log")

	logger, closer, err := New(cfg, &buf)
	require.NoError(t, err)

	logger.Debug().Msg("command written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"command written"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}

func TestNewBadLevel(t *testing.T) {
	cfg := config.Default().Logging
	cfg.Level = "loud"

	_, _, err := New(cfg, &bytes.Buffer{})
	assert.Error(t, err)
}
