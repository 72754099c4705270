// Package logging builds the service's zap logger.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stdout. format is "json" or "console".
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return newWithSink(lvl, format, zapcore.Lock(os.Stdout))
}

func newWithSink(lvl zapcore.Level, format string, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	var encoderConfig zapcore.EncoderConfig
	var encoder zapcore.Encoder
	switch format {
	case "json":
		encoderConfig = zap.NewProductionEncoderConfig()
		setKeys(&encoderConfig)
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		setKeys(&encoderConfig)
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}

	core := zapcore.NewCore(encoder, sink, lvl)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.FatalLevel)), nil
}

func setKeys(c *zapcore.EncoderConfig) {
	c.TimeKey = "ts"
	c.EncodeTime = zapcore.ISO8601TimeEncoder
	c.LevelKey = "lvl"
	c.NameKey = "name"
	c.MessageKey = "msg"
	c.CallerKey = "caller"
	c.StacktraceKey = "skt"
}
