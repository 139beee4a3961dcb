package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
)

// Logger is the shell's zap logger. Components derive their own with For.
type Logger struct {
	*zap.Logger
}

// Config selects level, encoding and destination.
type Config struct {
	Level       string // debug, info, warn, error; empty means info
	Development bool
	Output      io.Writer // nil means stderr
	Fields      []zap.Field
}

// FromConfig maps LOG_LEVEL and LOG_DEV onto a Config writing to w.
func FromConfig(cfg config.LogConfig, w io.Writer) Config {
	return Config{
		Level:       cfg.Level,
		Development: cfg.Development,
		Output:      w,
		Fields:      []zap.Field{zap.String("service", "webdesk")},
	}
}

// New builds a logger. JSON lines in production, coloured console lines
// in development.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(newEncoder(cfg.Development), zapcore.Lock(zapcore.AddSync(out)), level)
	opts := []zap.Option{zap.AddCaller(), zap.Fields(cfg.Fields...)}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return &Logger{Logger: zap.New(core, opts...)}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// For returns a child logger named after a component. Safe on nil.
func (l *Logger) For(component string) *Logger {
	if l == nil {
		return NewNop()
	}
	return &Logger{Logger: l.Logger.Named(component)}
}

// With returns a child carrying fields on every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	if l == nil {
		return NewNop()
	}
	return &Logger{Logger: l.Logger.With(fields...)}
}

// Sync flushes buffered entries. stderr returns EINVAL on some platforms,
// so the error is dropped.
func (l *Logger) Sync() {
	_ = l.Logger.Sync()
}

func newEncoder(development bool) zapcore.Encoder {
	if development {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(enc)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(enc)
}
