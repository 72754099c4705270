package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", "json")
	assert.Error(t, err)
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	_, err := New("info", "xml")
	assert.Error(t, err)
}

func TestNewWithSink_JSONKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newWithSink(zapcore.InfoLevel, "json", zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("hello", zap.String("k", "v"))
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "info", line["lvl"])
	assert.Equal(t, "v", line["k"])
	assert.Contains(t, line, "ts")
}
