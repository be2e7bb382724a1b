package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
const (
	VerbosityUser  = 0 // No flags: results and errors only
	VerbosityInfo  = 1 // -v: + per-phase progress
	VerbosityDebug = 2 // -vv: + per-dimension detail, config values
	VerbosityTrace = 3 // -vvv: + per-operator synthesis detail
)

// VerbosityToLevel maps verbosity flags (-v, -vv, ...) to zap log levels.
//
//	0 (none)  -> WarnLevel  (errors and warnings only)
//	1 (-v)    -> InfoLevel
//	2+ (-vv)  -> DebugLevel
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch verbosity {
	case VerbosityUser:
		return zapcore.WarnLevel
	case VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// ShouldLogTrace returns true for verbosity >= 3 (-vvv).
func ShouldLogTrace(verbosity int) bool {
	return verbosity >= VerbosityTrace
}
