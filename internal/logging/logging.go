package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// Options selects the zap core backing the process logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	Output io.Writer
}

// Logger pairs the zap core with the slog front end that the rest of the
// code base logs through.
type Logger struct {
	Zap  *zap.Logger
	Slog *slog.Logger
}

// New builds a zap core from opts and exposes it through log/slog.
// Output defaults to stderr so CLI output on stdout stays clean.
func New(opts Options) (*Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	var enc zapcore.Encoder
	switch opts.Format {
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "", "console":
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(out)), level)
	z := zap.New(core)
	return &Logger{
		Zap:  z,
		Slog: slog.New(zapslog.NewHandler(core, zapslog.WithName("cinder"))),
	}, nil
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.Zap.Sync()
}

// Nop returns a slog.Logger that discards everything. Useful for tests.
func Nop() *slog.Logger {
	return slog.New(zapslog.NewHandler(zapcore.NewNopCore()))
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Nop()
	}
	return l
}
