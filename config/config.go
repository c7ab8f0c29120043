// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads and saves the libseal configuration file.
//
// The file is plain "key = value" lines; '#' starts a comment line.
// Unknown keys are ignored so older builds can read newer files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the library configuration.
type Config struct {
	DataDir           string
	Network           string
	LogLevel          string
	LogFile           string // empty = stderr
	MaxFileSize       int64  // bytes, inclusive upper bound
	Codec             string // "xor" or "aead"
	VerifyContentHash bool
	VerifySignature   bool
}

// Config file keys.
const (
	keyDataDir           = "datadir"
	keyNetwork           = "network"
	keyLogLevel          = "loglevel"
	keyLogFile           = "logfile"
	keyMaxFileSize       = "maxfilesize"
	keyCodec             = "codec"
	keyVerifyContentHash = "verifyhash"
	keyVerifySignature   = "verifysignature"
)

// DefaultMaxFileSize is 50 KiB.
const DefaultMaxFileSize = 50 * 1024

// DefaultDataDir returns ~/.libseal, or .libseal if the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".libseal"
	}
	return filepath.Join(home, ".libseal")
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DataDir:           DefaultDataDir(),
		Network:           "mainnet",
		LogLevel:          "info",
		LogFile:           "",
		MaxFileSize:       DefaultMaxFileSize,
		Codec:             "xor",
		VerifyContentHash: true,
		VerifySignature:   false,
	}
}

// ConfigPath returns the config file location inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(filepath.Clean(dataDir), "config")
}

// LoadConfig reads the file at path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, err := parseKeyValue(line)
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		if err := cfg.set(key, value); err != nil {
			return cfg, fmt.Errorf("%w: line %d: %w", ErrInvalidConfigLine, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return cfg, nil
}

// parseKeyValue splits "key = value" on the first '='.
func parseKeyValue(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", ErrInvalidConfigLine
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", "", ErrInvalidConfigLine
	}
	return key, strings.TrimSpace(value), nil
}

func (c *Config) set(key, value string) error {
	switch key {
	case keyDataDir:
		c.DataDir = value
	case keyNetwork:
		c.Network = value
	case keyLogLevel:
		c.LogLevel = value
	case keyLogFile:
		c.LogFile = value
	case keyCodec:
		c.Codec = value
	case keyMaxFileSize:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.MaxFileSize = n
	case keyVerifyContentHash, keyVerifySignature:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == keyVerifyContentHash {
			c.VerifyContentHash = b
		} else {
			c.VerifySignature = b
		}
	}
	return nil
}

// SaveConfig writes cfg to path, creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# libseal configuration\n\n")
	fmt.Fprintf(&b, "%s = %s\n", keyDataDir, cfg.DataDir)
	fmt.Fprintf(&b, "%s = %s\n", keyNetwork, cfg.Network)
	fmt.Fprintf(&b, "%s = %s\n", keyLogLevel, cfg.LogLevel)
	fmt.Fprintf(&b, "%s = %s\n", keyLogFile, cfg.LogFile)
	fmt.Fprintf(&b, "%s = %d\n", keyMaxFileSize, cfg.MaxFileSize)
	fmt.Fprintf(&b, "%s = %s\n", keyCodec, cfg.Codec)
	fmt.Fprintf(&b, "%s = %t\n", keyVerifyContentHash, cfg.VerifyContentHash)
	fmt.Fprintf(&b, "%s = %t\n", keyVerifySignature, cfg.VerifySignature)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
