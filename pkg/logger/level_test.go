package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelAttrReplacer(t *testing.T) {
	test := func(level slog.Level, expected string) {
		t.Run(expected, func(t *testing.T) {
			t.Parallel()
			attr := levelAttrReplacer(nil, slog.Any(slog.LevelKey, level))
			assert.Equal(t, expected, attr.Value.String())
		})
	}

	test(slog.LevelInfo, "INFO")
	test(slog.LevelError, "ERROR")
	test(LevelCritical, "CRITICAL")
	test(LevelCritical+1, "CRITICAL+1")
	test(LevelPanic, "PANIC")
	test(LevelFatal, "FATAL")
	test(LevelFatal+2, "FATAL+2")
}

func TestGCPSeverity(t *testing.T) {
	assert.Equal(t, "DEBUG", gcpSeverity(slog.LevelDebug))
	assert.Equal(t, "WARNING", gcpSeverity(slog.LevelWarn))
	assert.Equal(t, "CRITICAL", gcpSeverity(LevelCritical))
	assert.Equal(t, "EMERGENCY", gcpSeverity(LevelFatal))
}
