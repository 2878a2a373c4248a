// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/litscorer/pkg/types"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       types.LogConfig
		env       string
		wantLevel zapcore.Level
		wantEnc   string
		errMsg    string
	}{
		{name: "defaults", wantLevel: zapcore.InfoLevel, wantEnc: "console"},
		{name: "explicit level and json", cfg: types.LogConfig{Level: "DEBUG", Format: "json"}, wantLevel: zapcore.DebugLevel, wantEnc: "json"},
		{name: "level from env", env: "warn", wantLevel: zapcore.WarnLevel, wantEnc: "console"},
		{name: "config beats env", cfg: types.LogConfig{Level: "error"}, env: "debug", wantLevel: zapcore.ErrorLevel, wantEnc: "console"},
		{name: "bad level", cfg: types.LogConfig{Level: "loud"}, errMsg: "invalid log level"},
		{name: "bad format", cfg: types.LogConfig{Format: "xml"}, errMsg: "invalid log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			zc, err := newConfig(tt.cfg)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, zc.Level.Level())
			assert.Equal(t, tt.wantEnc, zc.Encoding)
			assert.Equal(t, []string{"stderr"}, zc.OutputPaths)
		})
	}
}

func TestNew(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	log, err := New(types.LogConfig{Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))

	_, err = New(types.LogConfig{Level: "nope"})
	assert.Error(t, err)
}

func TestContextLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	log := zaptest.NewLogger(t)
	ctx := WithLogger(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))

	ctx = WithLogger(context.Background(), (*zap.Logger)(nil))
	assert.NotNil(t, FromContext(ctx))
}
