package automaxprocs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/pkg/logger"
	"github.com/gaze-network/tzbot/pkg/logger/slogx"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	mu   sync.Mutex
	undo func()

	// autoMaxProcs is -1 until Init succeeded.
	autoMaxProcs = -1

	initialMaxProcs = Current()
)

// Init sets GOMAXPROCS to the container CPU quota, if any. An explicit GOMAXPROCS env is honored.
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	log := logger.With(
		slogx.String("package", "automaxprocs"),
		slogx.String("event", "set_gomaxprocs"),
		slogx.Int("prev_maxprocs", initialMaxProcs),
	)
	printf := func(format string, v ...any) {
		var attrs []slog.Attr
		// maxprocs passes the new value, except when undoing
		if val, ok := utils.Optional(v); ok {
			if _, exists := os.LookupEnv("GOMAXPROCS"); exists {
				val = Current()
			}
			if n, ok := val.(int); ok {
				attrs = append(attrs, slogx.Int("set_maxprocs", n))
			}
		}
		log.LogAttrs(context.Background(), slog.LevelInfo, fmt.Sprintf(format, v...), attrs...)
	}

	revert, err := maxprocs.Set(maxprocs.Logger(printf), maxprocs.Min(1))
	if err != nil {
		return errors.WithStack(err)
	}
	autoMaxProcs = Current()
	undo = revert
	return nil
}

// Undo restores GOMAXPROCS to the value before Init and returns it.
func Undo() int {
	mu.Lock()
	defer mu.Unlock()
	if undo != nil {
		undo()
		undo = nil
		autoMaxProcs = -1
		return Current()
	}
	runtime.GOMAXPROCS(initialMaxProcs)
	return initialMaxProcs
}

// Current returns the current value of GOMAXPROCS.
func Current() int {
	return runtime.GOMAXPROCS(0)
}

// Value returns the GOMAXPROCS set by Init, or -1 before Init.
func Value() int {
	mu.Lock()
	defer mu.Unlock()
	return autoMaxProcs
}
