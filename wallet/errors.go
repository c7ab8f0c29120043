package wallet

import "errors"

var (
	// ErrInvalidMnemonic indicates the mnemonic fails BIP39 validation.
	ErrInvalidMnemonic = errors.New("wallet: invalid BIP39 mnemonic")

	// ErrInvalidEntropy indicates entropy bits is not 128 or 256.
	ErrInvalidEntropy = errors.New("wallet: entropy bits must be 128 or 256")

	// ErrIndexOutOfRange indicates an account or address index reaches the
	// BIP32 hardened boundary.
	ErrIndexOutOfRange = errors.New("wallet: index exceeds maximum (2^31-1)")

	// ErrInvalidNetwork indicates an unknown network name or id.
	ErrInvalidNetwork = errors.New("wallet: invalid network")

	// ErrInvalidSeed indicates the seed is empty or invalid.
	ErrInvalidSeed = errors.New("wallet: invalid seed")

	// ErrDerivationFailed indicates BIP32 key derivation failed.
	ErrDerivationFailed = errors.New("wallet: key derivation failed")
)
