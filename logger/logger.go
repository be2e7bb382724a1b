// Package logger provides the global structured logger for mensura.
//
// Human output uses a minimal console encoder; --json switches to zap's
// production JSON encoder for machine consumption.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger instance.
	Logger *zap.SugaredLogger

	// JSONOutput tracks whether JSON output is enabled.
	JSONOutput bool
)

func init() {
	// Safe no-op logger at package load time so uses before Initialize()
	// never panic.
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger. verbosity is the count of -v flags.
func Initialize(jsonOutput bool, verbosity int) error {
	JSONOutput = jsonOutput

	level := VerbosityToLevel(verbosity)

	var zapLogger *zap.Logger
	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		var err error
		zapLogger, err = config.Build()
		if err != nil {
			return err
		}
	} else {
		zapLogger = zap.New(
			zapcore.NewCore(
				newMinimalEncoder(),
				zapcore.AddSync(os.Stderr),
				level,
			),
		)
	}

	Logger = zapLogger.Sugar()
	return nil
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	_ = Logger.Sync()
}
