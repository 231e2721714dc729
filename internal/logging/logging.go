// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jacksparrot/jsp/internal/messages"
)

// New returns a console logger writing entries at or above level to w.
func New(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf(messages.LoggingInvalidLevelFmt, level, err)
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	encoderCfg.CallerKey = ""
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core), nil
}

// Install builds a logger with New and makes it the zap global.
// The returned func restores the previous global.
func Install(level string, w io.Writer) (*zap.SugaredLogger, func(), error) {
	logger, err := New(level, w)
	if err != nil {
		return nil, nil, err
	}
	restore := zap.ReplaceGlobals(logger)
	return logger.Sugar(), func() {
		_ = logger.Sync()
		restore()
	}, nil
}
