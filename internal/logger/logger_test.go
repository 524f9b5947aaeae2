package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure("info", "json", &buf)
	defer Configure("info", "text", nil)

	Debug("hidden")
	Error("search failed", errors.New("boom"), "category", "cafe")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"search failed"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"category":"cafe"`)
}

func TestConfigureText(t *testing.T) {
	var buf bytes.Buffer
	Configure("debug", "text", &buf)
	defer Configure("info", "text", nil)

	Debug("state transition", "state", "searching")

	assert.Contains(t, buf.String(), "state=searching")
}
