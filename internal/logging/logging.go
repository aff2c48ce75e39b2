// Package logging builds the zap logger shared by the CLI and the HTTP server.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where log entries go and how verbose they are.
type Options struct {
	Development bool
	// FilePath enables a rotating JSON log file when non-empty.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns a logger that writes to stderr and, when configured, to a rotating file.
// Development mode logs at debug level with a colored console encoder.
func New(opts Options) *zap.Logger {
	level := zapcore.InfoLevel
	if opts.Development {
		level = zapcore.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(opts.Development), zapcore.Lock(os.Stderr), level),
	}
	if opts.FilePath != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			zapcore.AddSync(fileWriter(opts)),
			level,
		))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// OrNop lets constructors accept a nil logger.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func fileWriter(opts Options) *lumberjack.Logger {
	w := &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
	if w.MaxSize <= 0 {
		w.MaxSize = 100
	}
	if w.MaxBackups <= 0 {
		w.MaxBackups = 5
	}
	if w.MaxAge <= 0 {
		w.MaxAge = 30
	}
	return w
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

func consoleEncoder(dev bool) zapcore.Encoder {
	if !dev {
		return zapcore.NewJSONEncoder(encoderConfig())
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return zapcore.NewConsoleEncoder(cfg)
}
