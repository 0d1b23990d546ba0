package logger

import (
	"log/slog"

	"github.com/gaze-network/tzbot/pkg/logger/slogx"
)

// Keys for log attributes.
const (
	LevelKey           = slog.LevelKey
	MessageKey         = slog.MessageKey
	SourceKey          = slog.SourceKey
	ErrorKey           = slogx.ErrorKey
	ErrorVerboseKey    = "error_verbose"
	ErrorStackTraceKey = "error_stacktrace"
)
