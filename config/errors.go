// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", \"teratestnet\", or \"regtest\")")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidMaxFileSize indicates the maximum file size is not positive.
	ErrInvalidMaxFileSize = errors.New("config: max file size must be positive")

	// ErrInvalidCodec indicates the codec name is not recognized.
	ErrInvalidCodec = errors.New("config: invalid codec (must be \"xor\" or \"aead\")")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
