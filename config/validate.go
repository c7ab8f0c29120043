// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"github.com/bitfsorg/libseal-go/wallet"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validCodecs lists the accepted codec names.
var validCodecs = map[string]bool{
	"xor":  true,
	"aead": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if _, err := cfg.NetworkConfig(); err != nil {
		return err
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if cfg.MaxFileSize <= 0 {
		return ErrInvalidMaxFileSize
	}

	if !validCodecs[strings.ToLower(cfg.Codec)] {
		return ErrInvalidCodec
	}

	return nil
}

// NetworkConfig resolves cfg.Network to one of the predefined wallet networks.
func (c Config) NetworkConfig() (*wallet.NetworkConfig, error) {
	net, err := wallet.GetNetwork(c.Network)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNetwork, err)
	}
	return net, nil
}
