package wallet

import (
	"fmt"

	bip32 "github.com/bsv-blockchain/go-sdk/compat/bip32"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	chaincfg "github.com/bsv-blockchain/go-sdk/transaction/chaincfg"
)

const (
	// BIP44 path constants.
	PurposeBIP44 = 44
	CoinType     = 236

	// ExternalChain is the only chain identities are derived on.
	ExternalChain = 0

	// MaxIndex is the largest non-hardened BIP32 index.
	MaxIndex = 1<<31 - 1

	// BIP32 hardened offset.
	Hardened = 0x80000000
)

// Wallet represents an HD wallet bound to one network.
type Wallet struct {
	masterKey *bip32.ExtendedKey
	network   *NetworkConfig
}

// KeyPair holds a derived public/private key pair.
type KeyPair struct {
	PrivateKey *ec.PrivateKey `json:"-"`
	PublicKey  *ec.PublicKey  `json:"public_key"`
	Path       string         `json:"path"` // Human-readable derivation path
}

// NewWallet creates a new Wallet from a BIP39 seed.
func NewWallet(seed []byte, network *NetworkConfig) (*Wallet, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	if network == nil {
		network = &MainNet
	}

	// Map our NetworkConfig to go-sdk chaincfg.Params for BIP32.
	net := &chaincfg.TestNet
	if network.Mainnet {
		net = &chaincfg.MainNet
	}

	masterKey, err := bip32.NewMaster(seed, net)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}

	return &Wallet{
		masterKey: masterKey,
		network:   network,
	}, nil
}

// NewWalletFromMnemonic is SeedFromMnemonic followed by NewWallet.
func NewWalletFromMnemonic(mnemonic, passphrase string, network *NetworkConfig) (*Wallet, error) {
	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	return NewWallet(seed, network)
}

// Network returns the wallet's network configuration.
func (w *Wallet) Network() *NetworkConfig {
	return w.network
}

// DeriveIdentityKey derives the signing key of one identity.
//
//	Path: m/44'/236'/account'/0/index
func (w *Wallet) DeriveIdentityKey(account, index uint32) (*KeyPair, error) {
	if account > MaxIndex || index > MaxIndex {
		return nil, fmt.Errorf("%w: account %d, index %d", ErrIndexOutOfRange, account, index)
	}

	// m/44'
	purpose, err := w.masterKey.Child(PurposeBIP44 + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: purpose derivation: %w", ErrDerivationFailed, err)
	}

	// m/44'/236'
	coinType, err := purpose.Child(CoinType + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: coin type derivation: %w", ErrDerivationFailed, err)
	}

	// m/44'/236'/account'
	accountKey, err := coinType.Child(account + Hardened)
	if err != nil {
		return nil, fmt.Errorf("%w: account derivation: %w", ErrDerivationFailed, err)
	}

	// m/44'/236'/account'/0
	chainKey, err := accountKey.Child(ExternalChain)
	if err != nil {
		return nil, fmt.Errorf("%w: chain derivation: %w", ErrDerivationFailed, err)
	}

	// m/44'/236'/account'/0/index
	childKey, err := chainKey.Child(index)
	if err != nil {
		return nil, fmt.Errorf("%w: index derivation: %w", ErrDerivationFailed, err)
	}

	return extKeyToKeyPair(childKey, fmt.Sprintf("m/44'/236'/%d'/0/%d", account, index))
}

// extKeyToKeyPair converts a BIP32 extended key to a KeyPair.
func extKeyToKeyPair(extKey *bip32.ExtendedKey, path string) (*KeyPair, error) {
	privKey, err := extKey.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to extract EC private key: %w", ErrDerivationFailed, err)
	}

	pubKey := privKey.PubKey()
	if pubKey == nil {
		return nil, fmt.Errorf("%w: failed to derive public key", ErrDerivationFailed)
	}

	return &KeyPair{
		PrivateKey: privKey,
		PublicKey:  pubKey,
		Path:       path,
	}, nil
}
