package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestLoggerFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info").With("conn", "c1")

	l.Debug("hidden %d", 1)
	assert.Zero(t, buf.Len())

	l.Warn("dropped %s", "typing")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "dropped typing", line["message"])
	assert.Equal(t, "c1", line["conn"])
}
