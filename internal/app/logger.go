package app

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dshills/tickbind/internal/config"
)

// NewLevel returns the runtime-adjustable level for cfg.Level.
func NewLevel(cfg config.LogConfig) zap.AtomicLevel {
	return zap.NewAtomicLevelAt(getLevel(cfg.Level))
}

// NewLogger builds the process logger. Output goes to stderr, or to a
// size-rotated file when cfg.File is set. Changing level takes effect
// on the returned logger immediately.
func NewLogger(cfg config.LogConfig, level zap.AtomicLevel) *zap.Logger {
	core := zapcore.NewCore(
		getConsoleEncoder(),
		zapcore.AddSync(logOutput(cfg)),
		level,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

func getLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// logOutput picks the log sink. The terminal surface owns stdout, so
// console logs go to stderr.
func logOutput(cfg config.LogConfig) io.Writer {
	if cfg.File == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}

func getConsoleEncoder() zapcore.Encoder {
	conf := zap.NewProductionEncoderConfig()
	conf.TimeKey = "time"
	conf.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewConsoleEncoder(conf)
}
