package logger

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// newMinimalEncoder builds the console encoder used for human-readable
// output: short timestamps, colored levels, no caller or stacktrace noise.
func newMinimalEncoder() zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		NameKey:        zapcore.OmitKey,
		CallerKey:      zapcore.OmitKey,
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     minimalTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// minimalTimeEncoder renders wall-clock time only; generation runs are
// short, the date is noise.
func minimalTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05"))
}
