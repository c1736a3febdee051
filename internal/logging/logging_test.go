package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   zerolog.Level
		wantOK bool
	}{
		{raw: "debug", want: zerolog.DebugLevel, wantOK: true},
		{raw: " WARNING ", want: zerolog.WarnLevel, wantOK: true},
		{raw: "off", want: zerolog.Disabled, wantOK: true},
		{raw: "", want: zerolog.InfoLevel, wantOK: false},
		{raw: "chatty", want: zerolog.InfoLevel, wantOK: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseLevel(tc.raw)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestNewJSONLoggerHonoursLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Format: FormatJSON, Output: &buf})

	logger.Info().Msg("hidden")
	logger.Warn().Str("namespace", "world").Msg("namespace not loaded")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "world", entry["namespace"])
	assert.Equal(t, "autounclaim", entry["app"])
}

func TestNewEnvironmentOverridesLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")

	var buf bytes.Buffer
	logger := New(Options{Level: "debug", Format: FormatJSON, Output: &buf})
	logger.Warn().Msg("hidden")

	assert.Empty(t, buf.String())
}

func TestNewConsoleLogger(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	var buf bytes.Buffer
	logger := New(Options{Format: FormatConsole, Output: &buf, NoColor: true})
	logger.Info().Msg("auto-run started")

	assert.Contains(t, buf.String(), "INF")
	assert.Contains(t, buf.String(), "auto-run started")
}
