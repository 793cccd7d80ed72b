// Package logging builds the zap-backed logr.Logger used by the command line
// tools.
package logging

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-signup/pkg/config"
)

// ParseLevel maps a config level to a zap level. Besides the zap names it
// accepts a logr verbosity ("1", "2", ...), which enables V(n) output.
func ParseLevel(raw string) (zapcore.Level, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return zapcore.InfoLevel, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("logging: verbosity must not be negative: %d", n)
		}
		return zapcore.Level(-n), nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("logging: unknown level %q", raw)
	}
	return lvl, nil
}

// New builds a logger from the log section of the configuration. The
// returned sync function flushes buffered entries.
func New(cfg config.Log, opts ...zap.Option) (logr.Logger, func(), error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return logr.Discard(), func() {}, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	zl, err := zc.Build(append([]zap.Option{zap.AddCaller()}, opts...)...)
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("logging: build zap logger: %w", err)
	}
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}

// FromCore wraps an existing zap core, for tests and embedding hosts.
func FromCore(core zapcore.Core) logr.Logger {
	return zapr.NewLogger(zap.New(core))
}
