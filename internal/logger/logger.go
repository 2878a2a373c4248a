// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger builds the zap logger used by the CLI. Logs go to stderr so
// that stdout carries only command output.
package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/litscorer/pkg/types"
)

const defaultLevel = "info"

// Supported log encodings.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New constructs a logger from cfg. An empty level falls back to the
// LOG_LEVEL environment variable and then to info.
func New(cfg types.LogConfig) (*zap.Logger, error) {
	zc, err := newConfig(cfg)
	if err != nil {
		return nil, err
	}
	return zc.Build()
}

func newConfig(cfg types.LogConfig) (zap.Config, error) {
	levelText := strings.ToLower(strings.TrimSpace(cfg.Level))
	if levelText == "" {
		levelText = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	}
	if levelText == "" {
		levelText = defaultLevel
	}
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(levelText)); err != nil {
		return zap.Config{}, fmt.Errorf("invalid log level %q: %w", levelText, err)
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	if format == "" {
		format = FormatConsole
	}

	var enc zapcore.EncoderConfig
	switch format {
	case FormatConsole:
		enc = zapcore.EncoderConfig{
			MessageKey:     "message",
			LevelKey:       "level",
			TimeKey:        "time",
			EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05"),
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		}
	case FormatJSON:
		enc = zapcore.EncoderConfig{
			MessageKey: "message",
			TimeKey:    "timestamp",
			LevelKey:   "severity",
			EncodeTime: zapcore.RFC3339NanoTimeEncoder,
			EncodeLevel: func(l zapcore.Level, pae zapcore.PrimitiveArrayEncoder) {
				pae.AppendString(strings.ToUpper(l.String()))
			},
			EncodeDuration: zapcore.MillisDurationEncoder,
			CallerKey:      "caller",
			EncodeCaller:   zapcore.ShortCallerEncoder,
			StacktraceKey:  "stacktrace",
		}
	default:
		return zap.Config{}, fmt.Errorf("invalid log format %q (want %s or %s)", cfg.Format, FormatConsole, FormatJSON)
	}

	return zap.Config{
		Level:             level,
		Encoding:          format,
		EncoderConfig:     enc,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     format == FormatConsole,
		DisableStacktrace: true,
	}, nil
}

type ctxKey struct{}

// WithLogger returns a context carrying log.
func WithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && log != nil {
		return log
	}
	return zap.NewNop()
}
