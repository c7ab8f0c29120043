package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/bitfsorg/libseal-go/config"
	"github.com/bitfsorg/libseal-go/envelope"
	"github.com/bitfsorg/libseal-go/identity"
	"github.com/bitfsorg/libseal-go/logging"
	"github.com/bitfsorg/libseal-go/wallet"
)

// Vault is one user session: the connected identity plus the envelopes
// sealed during the session. UI and CLI adapters call Vault methods; nothing
// about the session lives in package-level state.
type Vault struct {
	Store    *envelope.Store
	Builder  *envelope.Builder
	Verifier *envelope.Verifier
	Log      *zap.Logger
	Network  *wallet.NetworkConfig // configured network; wallets connected by ConnectWallet live here

	mu       sync.RWMutex
	identity identity.Provider // nil = no wallet connected
}

// Opts holds the inputs to New.
type Opts struct {
	Config   config.Config
	Identity identity.Provider // optional; set later with SetIdentity
	Logger   *zap.Logger       // nil = no logging
	CodecKey []byte            // required when Config.Codec is "aead"
}

// New creates a Vault session from opts.
func New(opts *Opts) (*Vault, error) {
	if opts == nil {
		return nil, fmt.Errorf("vault: options are nil")
	}
	cfg := opts.Config
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("vault: %w", err)
	}

	network, err := cfg.NetworkConfig()
	if err != nil {
		return nil, fmt.Errorf("vault: %w", err)
	}

	codec, err := envelope.NewCodec(strings.ToLower(cfg.Codec), opts.CodecKey)
	if err != nil {
		return nil, fmt.Errorf("vault: init codec: %w", err)
	}

	verifier := envelope.NewVerifier(codec)
	verifier.VerifyContentHash = cfg.VerifyContentHash
	if cfg.VerifySignature {
		verifier.Signatures = identity.BSMVerifier{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Vault{
		Store:    envelope.NewStore(),
		Builder:  envelope.NewBuilder(codec, cfg.MaxFileSize),
		Verifier: verifier,
		Log:      logger,
		Network:  network,
		identity: opts.Identity,
	}, nil
}

// Open creates a Vault from the config file in dataDir, falling back to the
// defaults when the file does not exist, and logs as the config directs.
func Open(dataDir string, provider identity.Provider, codecKey []byte) (*Vault, error) {
	cfg, err := config.LoadConfig(config.ConfigPath(dataDir))
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("vault: load config: %w", err)
		}
		cfg = config.DefaultConfig()
	}
	cfg.DataDir = dataDir

	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault: init logging: %w", err)
	}

	return New(&Opts{
		Config:   cfg,
		Identity: provider,
		Logger:   logger,
		CodecKey: codecKey,
	})
}

// SetIdentity replaces the session's identity provider. nil disconnects.
func (v *Vault) SetIdentity(p identity.Provider) {
	v.mu.Lock()
	v.identity = p
	v.mu.Unlock()
}

// ConnectWallet opens an HD wallet from mnemonic on the configured network,
// connects the identity at m/44'/236'/account'/0/index and makes it the
// session's provider. It returns the identity address.
func (v *Vault) ConnectWallet(ctx context.Context, mnemonic, passphrase string, account, index uint32) (string, error) {
	w, err := wallet.NewWalletFromMnemonic(mnemonic, passphrase, v.Network)
	if err != nil {
		return "", fmt.Errorf("vault: open wallet: %w", err)
	}

	p, err := identity.NewWalletProvider(w, account, index)
	if err != nil {
		return "", fmt.Errorf("vault: %w", err)
	}

	addr, err := p.Connect(ctx)
	if err != nil {
		return "", fmt.Errorf("vault: connect wallet: %w", err)
	}

	v.SetIdentity(p)
	v.Log.Info("wallet connected",
		zap.String("address", addr),
		zap.String("network", v.Network.Name),
		zap.String("key_path", p.KeyPath()))
	return addr, nil
}

// provider returns the connected provider or ErrIdentityUnavailable.
func (v *Vault) provider() (identity.Provider, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.identity == nil {
		return nil, identity.ErrIdentityUnavailable
	}
	return v.identity, nil
}

// List returns the session's envelopes in the order they were sealed.
func (v *Vault) List() []envelope.Envelope {
	return v.Store.List()
}

// Get returns the envelope with the given id.
func (v *Vault) Get(id string) (envelope.Envelope, error) {
	return v.Store.Get(id)
}

// Close flushes the logger. The session's envelopes are discarded with the Vault.
func (v *Vault) Close() error {
	if err := v.Log.Sync(); err != nil && !isStdSyncErr(err) {
		return fmt.Errorf("vault: sync log: %w", err)
	}
	return nil
}

// isStdSyncErr reports the error fsync returns on a terminal or pipe.
func isStdSyncErr(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY)
}

// envelopeFields are the log fields describing env. Never the payload.
func envelopeFields(env envelope.Envelope) []zap.Field {
	md := env.Metadata()
	hash := md.ContentHash
	if len(hash) > 16 {
		hash = hash[:16]
	}
	return []zap.Field{
		zap.String("envelope_id", env.ID()),
		zap.String("file_name", md.OriginalName),
		zap.Int64("size", md.Size),
		zap.String("hash", hash),
		zap.Int64("network_id", env.NetworkID()),
		zap.String("network", networkName(env.NetworkID())),
		zap.String("signer", env.Signer()),
	}
}

// networkName labels a network id for logs; unknown ids log as "unknown".
func networkName(id int64) string {
	net, err := wallet.GetNetworkByID(id)
	if err != nil {
		return "unknown"
	}
	return net.Name
}
