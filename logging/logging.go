// Package logging builds the zap logger used across libseal.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bitfsorg/libseal-go/config"
)

// forbiddenKeys are field-name fragments whose values never reach a log sink.
var forbiddenKeys = []string{
	"payload", "plaintext", "ciphertext", "secret", "private", "mnemonic", "seed",
}

// Redacted replaces the value of a forbidden field.
const Redacted = "[redacted]"

// New builds a JSON logger at cfg.LogLevel writing to cfg.LogFile, or to
// stderr when LogFile is empty. Fields named like file contents or key
// material are redacted.
func New(cfg config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidLogLevel, cfg.LogLevel)
	}

	out := "stderr"
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0700); err != nil {
			return nil, fmt.Errorf("logging: create log directory: %w", err)
		}
		out = cfg.LogFile
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build(zap.WrapCore(Redact))
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger.Named("libseal"), nil
}

// Redact wraps core so that forbidden fields are replaced before encoding.
func Redact(core zapcore.Core) zapcore.Core {
	return redactCore{Core: core}
}

type redactCore struct {
	zapcore.Core
}

func (c redactCore) With(fields []zapcore.Field) zapcore.Core {
	return redactCore{Core: c.Core.With(redactFields(fields))}
}

func (c redactCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c redactCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, redactFields(fields))
}

func redactFields(fields []zapcore.Field) []zapcore.Field {
	var out []zapcore.Field
	for i, f := range fields {
		if !forbidden(f.Key) {
			continue
		}
		if out == nil {
			out = make([]zapcore.Field, len(fields))
			copy(out, fields)
		}
		out[i] = zap.String(f.Key, Redacted)
	}
	if out == nil {
		return fields
	}
	return out
}

func forbidden(key string) bool {
	k := strings.ToLower(key)
	for _, frag := range forbiddenKeys {
		if strings.Contains(k, frag) {
			return true
		}
	}
	return false
}
