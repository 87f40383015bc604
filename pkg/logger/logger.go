// Package logger wires a zap core behind a logr.Logger and carries it through
// contexts. The terminal belongs to the menu, so entries only go to an
// explicit sink; without one they are dropped.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/tmenu/pkg/settings"
)

// Field names of every entry.
const (
	RootCommandKey = "root_command"
	SubCommandKey  = "sub_command"
	BinaryKey      = "binary"
	CommitKey      = "commit"
	VersionKey     = "version"
	GoVersionKey   = "go_version"
	TimeStampKey   = "timestamp"
	MessageKey     = "message"
)

// DebugLevel is the level enabled by --debug. logr's V(1) maps to it.
const DebugLevel = int8(zapcore.DebugLevel)

// Options configure a logger.
type Options struct {
	Level int8
	// Sink receives JSON lines. Nil discards everything.
	Sink io.Writer
}

type loggerKey struct{}

var (
	initOnce sync.Once
	global   *logr.Logger
	zapCore  *zap.Logger
	discard  = logr.Discard()
)

// New builds a logger from opts. The returned zap logger is nil when
// entries are discarded.
func New(opts Options) (logr.Logger, *zap.Logger) {
	if opts.Sink == nil {
		return logr.Discard(), nil
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.TimeKey = TimeStampKey
	enc.MessageKey = MessageKey

	goVersion := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(enc),
		zapcore.Lock(zapcore.AddSync(opts.Sink)),
		zap.NewAtomicLevelAt(zapcore.Level(opts.Level)),
	).With([]zapcore.Field{
		zap.String(BinaryKey, settings.CliBinaryName),
		zap.String(VersionKey, settings.VersionInformation.BuildVersion),
		zap.String(CommitKey, settings.VersionInformation.Commit),
		zap.String(GoVersionKey, goVersion),
	})
	zl := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	return zapr.NewLogger(zl), zl
}

// Init configures the process-wide logger once; later calls return it
// unchanged.
func Init(opts Options) *logr.Logger {
	initOnce.Do(func() {
		l, zl := New(opts)
		global, zapCore = &l, zl
	})
	return Global()
}

// Global returns the process-wide logger, or a discarding one before Init.
func Global() *logr.Logger {
	if global != nil {
		return global
	}
	return &discard
}

// OpenSink opens the log file at path for appending, creating parent
// directories as needed. An empty path returns a nil sink.
func OpenSink(path string) (io.WriteCloser, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path comes from the user's own flag or config
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// WithLogger attaches log to ctx. ctx is returned as is when it already
// carries log.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if cur, ok := ctx.Value(loggerKey{}).(*logr.Logger); ok && cur == log {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, log)
}

// FromContext returns the logger attached to ctx, falling back to Global.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*logr.Logger); ok && log != nil {
		return log
	}
	return Global()
}

// Sync flushes buffered entries. Call it before exiting.
func Sync() {
	if zapCore == nil {
		return
	}
	if err := zapCore.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync logger: %v\n", err)
	}
}

// isIgnorableSyncError matches the errors Sync reports for pipes and
// terminals. Windows consoles wrap ERROR_INVALID_HANDLE in *os.PathError,
// so the message is checked too.
func isIgnorableSyncError(err error) bool {
	for _, errno := range []syscall.Errno{syscall.ENOTTY, syscall.EINVAL, syscall.EIO, syscall.EBADF} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}
