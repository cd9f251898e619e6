package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"WARNING", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := parseLevel("verbose")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestNew(t *testing.T) {
	l, err := New(&Config{Level: "debug", Format: "console", Output: "stderr"}, DefaultServiceName)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = New(&Config{Level: "loud"}, DefaultServiceName)
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		output, out, errOut string
	}{
		{"", "stdout", "stderr"},
		{"stdout", "stdout", "stderr"},
		{"stderr", "stderr", "stderr"},
		{"/var/log/aplus.log", "/var/log/aplus.log", "/var/log/aplus.log"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, outputPath(tt.output), tt.output)
		assert.Equal(t, tt.errOut, errorPath(tt.output), tt.output)
	}
}

func TestNewNilConfig(t *testing.T) {
	l, err := New(nil, DefaultServiceName)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
