package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.SugaredLogger
	once sync.Once
)

// Init builds the process-wide logger. level is one of debug, info, warn,
// error; anything else falls back to info.
func Init(level string) {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		var lvl zapcore.Level
		if err := lvl.Set(level); err != nil {
			lvl = zapcore.InfoLevel
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)

		base, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			base = zap.NewNop()
		}
		log = base.Sugar()
	})
}

func get() *zap.SugaredLogger {
	if log == nil {
		Init("info")
	}
	return log
}

// pair allows the single-argument form logger.Error("msg", err) used all
// over the repositories alongside the keyed form ("msg", "key", value).
func pair(args []any) []any {
	if len(args) == 1 {
		return []any{"error", args[0]}
	}
	return args
}

func Debug(msg string, args ...any) { get().Debugw(msg, pair(args)...) }

func Info(msg string, args ...any) { get().Infow(msg, pair(args)...) }

func Warn(msg string, args ...any) { get().Warnw(msg, pair(args)...) }

func Error(msg string, args ...any) { get().Errorw(msg, pair(args)...) }

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
