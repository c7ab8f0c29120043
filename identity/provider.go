// Package identity supplies the signer identity an envelope is bound to:
// an address, a network id, and a message-signing capability.
package identity

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	bsm "github.com/bsv-blockchain/go-sdk/compat/bsm"
	"github.com/bsv-blockchain/go-sdk/script"

	"github.com/bitfsorg/libseal-go/wallet"
)

// Provider is the wallet capability the vault consumes. Each call may
// suspend (for example waiting on user approval) and honors ctx.
type Provider interface {
	// Address returns the connected account address.
	Address(ctx context.Context) (string, error)

	// NetworkID returns the id of the network the account is on.
	NetworkID(ctx context.Context) (int64, error)

	// SignMessage signs message with the account key.
	SignMessage(ctx context.Context, message string) (string, error)
}

// WalletProvider is a Provider backed by an HD wallet identity key.
// Signatures are Bitcoin Signed Messages, base64-encoded.
// It starts disconnected; Connect must be called before use.
type WalletProvider struct {
	key     *wallet.KeyPair
	address string
	network *wallet.NetworkConfig

	mu        sync.RWMutex
	connected bool
}

var _ Provider = (*WalletProvider)(nil)

// NewWalletProvider derives the identity key m/44'/236'/account'/0/index
// from w and its P2PKH address on w's network.
func NewWalletProvider(w *wallet.Wallet, account, index uint32) (*WalletProvider, error) {
	if w == nil {
		return nil, ErrNilWallet
	}

	kp, err := w.DeriveIdentityKey(account, index)
	if err != nil {
		return nil, fmt.Errorf("identity: derive key: %w", err)
	}

	addr, err := script.NewAddressFromPublicKey(kp.PublicKey, w.Network().Mainnet)
	if err != nil {
		return nil, fmt.Errorf("identity: address from pubkey: %w", err)
	}

	return &WalletProvider{
		key:     kp,
		address: addr.AddressString,
		network: w.Network(),
	}, nil
}

// Connect opens the wallet session and returns the account address.
func (p *WalletProvider) Connect(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	p.connected = true
	p.mu.Unlock()
	return p.address, nil
}

// Disconnect closes the wallet session. Later calls fail with
// ErrIdentityUnavailable until Connect is called again.
func (p *WalletProvider) Disconnect() {
	p.mu.Lock()
	p.connected = false
	p.mu.Unlock()
}

// Connected reports whether the session is open.
func (p *WalletProvider) Connected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.connected
}

// KeyPath returns the derivation path of the identity key.
func (p *WalletProvider) KeyPath() string { return p.key.Path }

func (p *WalletProvider) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.Connected() {
		return ErrIdentityUnavailable
	}
	return nil
}

// Address implements Provider.
func (p *WalletProvider) Address(ctx context.Context) (string, error) {
	if err := p.ready(ctx); err != nil {
		return "", err
	}
	return p.address, nil
}

// NetworkID implements Provider.
func (p *WalletProvider) NetworkID(ctx context.Context) (int64, error) {
	if err := p.ready(ctx); err != nil {
		return 0, err
	}
	return p.network.ChainID, nil
}

// SignMessage implements Provider.
func (p *WalletProvider) SignMessage(ctx context.Context, message string) (string, error) {
	if err := p.ready(ctx); err != nil {
		return "", err
	}

	sig, err := bsm.SignMessage(p.key.PrivateKey, []byte(message))
	if err != nil {
		return "", fmt.Errorf("identity: sign message: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Static is a Provider with fixed values, for identities held outside this
// process (an external wallet that already produced the signature).
type Static struct {
	Addr      string
	Network   int64
	Signature string
}

var _ Provider = Static{}

// Address implements Provider.
func (s Static) Address(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Addr == "" {
		return "", ErrIdentityUnavailable
	}
	return s.Addr, nil
}

// NetworkID implements Provider.
func (s Static) NetworkID(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.Network, nil
}

// SignMessage implements Provider. It returns the fixed signature.
func (s Static) SignMessage(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Addr == "" {
		return "", ErrIdentityUnavailable
	}
	return s.Signature, nil
}
