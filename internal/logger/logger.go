package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op logger until Init is called.
var Log = zap.NewNop()

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// Init builds the development logger used by every demo.
func Init() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		// Keep the no-op logger, there is nowhere to report this.
		return
	}
	Log = l
}

// SetLevel switches verbosity at runtime, e.g. for the -debug flag.
func SetLevel(debug bool) {
	if debug {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.InfoLevel)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Log.Sync()
}
