package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"", "console", "json", "JSON"} {
		log, err := New(Options{Format: format, Service: "test"})
		require.NoError(t, err, format)
		assert.NotNil(t, log)
	}

	_, err := New(Options{Format: "xml"})
	assert.ErrorContains(t, err, "unknown log format")
}

func TestJSONCoreLevels(t *testing.T) {
	var buf bytes.Buffer
	core, err := newCore(Options{Format: "json"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	log := zap.New(core)
	log.Debug("hidden")
	log.Info("screened", zap.Int("match_score", 83))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), buf.String())
	assert.Equal(t, "screened", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(83), entry["match_score"])
	assert.Contains(t, entry, "time")
}

func TestDebugCore(t *testing.T) {
	core, err := newCore(Options{Debug: true}, zapcore.AddSync(&bytes.Buffer{}))
	require.NoError(t, err)
	assert.True(t, core.Enabled(zapcore.DebugLevel))
}

func TestSnippet(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	zap.New(core).Info("completion", Snippet("completion", "  résumé text  ", 3))

	require.Equal(t, 1, logs.Len())
	field := logs.All()[0].ContextMap()["completion"].(map[string]any)
	assert.Equal(t, "rés...", field["preview"])
	assert.EqualValues(t, len("  résumé text  "), field["chars"])
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{in: "  short  ", limit: 10, want: "short"},
		{in: "abcdef", limit: 3, want: "abc..."},
		{in: "anything", limit: 0, want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, preview(tt.in, tt.limit))
	}
}
