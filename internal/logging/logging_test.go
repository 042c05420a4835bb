package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{input: "debug", want: zapcore.DebugLevel},
		{input: "INFO", want: zapcore.InfoLevel},
		{input: "warning", want: zapcore.WarnLevel},
		{input: "error", want: zapcore.ErrorLevel},
		{input: "trace", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := buildConfig(config.LoggingConfig{}, "")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, zapcore.InfoLevel, cfg.Level.Level())
}

func TestBuildConfigOverrideWins(t *testing.T) {
	cfg, err := buildConfig(config.LoggingConfig{Level: "error", Format: "console"}, "debug")
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Encoding)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())
}

func TestBuildConfigRejectsUnknownFormat(t *testing.T) {
	_, err := buildConfig(config.LoggingConfig{Format: "xml"}, "")
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "calc.log")

	logger, err := New(config.LoggingConfig{Level: "info", OutputFile: path}, "")
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
