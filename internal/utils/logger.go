package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewApplicationLogger constructs a zap logger for human-readable console
// output. The tree rendering itself goes straight to stdout; the logger only
// reports boundary failures, so everything except the message is stripped.
func NewApplicationLogger() (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Encoding = "console"
	loggerConfig.DisableCaller = true
	loggerConfig.DisableStacktrace = true
	loggerConfig.EncoderConfig = zapcore.EncoderConfig{
		MessageKey:  "message",
		EncodeLevel: zapcore.CapitalLevelEncoder,
	}
	return loggerConfig.Build()
}
