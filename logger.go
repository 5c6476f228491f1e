package ddraw

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/ddraw/backend"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

// connected holds the backends of connected Managers, so SetLogger can reach
// them.
var (
	connectedMu sync.Mutex
	connected   = make(map[backend.Backend]struct{})
)

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for ddraw and the backends of connected
// Managers. By default ddraw produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by ddraw:
//   - [slog.LevelDebug]: capability attempts, lock and blit details
//   - [slog.LevelInfo]: backend connected, display mode set
//   - [slog.LevelWarn]: capability fallback needed, surface restored
//   - [slog.LevelError]: diagnostics from the default [Reporter]
//
// Example:
//
//	ddraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	connectedMu.Lock()
	defer connectedMu.Unlock()
	for b := range connected {
		propagateLogger(b, l)
	}
}

// Logger returns the current logger used by ddraw.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by backends that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a backend if it implements
// loggerSetter.
func propagateLogger(b backend.Backend, l *slog.Logger) {
	if ls, ok := b.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}

func trackBackend(b backend.Backend) {
	connectedMu.Lock()
	connected[b] = struct{}{}
	connectedMu.Unlock()
	propagateLogger(b, Logger())
}

func untrackBackend(b backend.Backend) {
	connectedMu.Lock()
	delete(connected, b)
	connectedMu.Unlock()
}
