package compiler

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// newTraceLogger builds a console logger in the teacher's style: no
// caller/stacktrace noise, a timestamp only when attached to a real
// terminal. Used solely for load_parse_gen's optional one-line summary
// (6.5 of the design) -- diagnostics themselves go through ErrorList, not
// this logger.
func newTraceLogger() *zap.Logger {
	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.Encoding = "console"
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if term.IsTerminal(int(os.Stderr.Fd())) {
		cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cc.EncoderConfig.EncodeTime = func(t time.Time, encoder zapcore.PrimitiveArrayEncoder) {}
	}
	cc.OutputPaths = []string{"stderr"}
	cc.ErrorOutputPaths = []string{"stderr"}
	logger, err := cc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
