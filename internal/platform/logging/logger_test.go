package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONWriter_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo).Named("roster")

	logger.Warn("list players failed", "cohort", "2308-ACC-PT-WEB-PT-A", "error", errors.New("boom"))

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"msg":"list players failed"`)
	assert.Contains(t, out, `"component":"roster"`)
	assert.Contains(t, out, `"cohort":"2308-ACC-PT-WEB-PT-A"`)
	assert.Contains(t, out, `"error":"boom"`)
}

func TestNewJSONWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelWarn)

	logger.InfoContext(context.Background(), "dropped")
	logger.ErrorContext(context.Background(), "kept")

	assert.False(t, strings.Contains(buf.String(), "dropped"))
	assert.True(t, strings.Contains(buf.String(), "kept"))
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger

	assert.NotPanics(t, func() {
		logger.Info("nothing")
		logger.With("k", "v").ErrorContext(context.Background(), "still nothing")
		_ = logger.Sync()
	})
}

func TestZapFields_OddArgs(t *testing.T) {
	fields := zapFields([]any{"a", 1, "dangling"})
	require.Len(t, fields, 2)
	assert.Equal(t, "dangling", fields[1].Key)
}
