package vault

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bitfsorg/libseal-go/envelope"
)

// Decrypt reveals env for the claimed signer and network. The envelope is
// not modified.
func (v *Vault) Decrypt(env envelope.Envelope, signer string, networkID int64) ([]byte, error) {
	plaintext, err := v.Verifier.Reveal(env, signer, networkID)
	if err != nil {
		v.Log.Warn("decrypt refused",
			zap.String("envelope_id", env.ID()),
			zap.String("claimed_signer", signer),
			zap.Int64("claimed_network_id", networkID),
			zap.Error(err))
		return nil, fmt.Errorf("vault: decrypt: %w", err)
	}

	v.Log.Info("file decrypted", envelopeFields(env)...)
	return plaintext, nil
}

// DecryptFile runs the full reveal flow for a stored envelope against the
// connected identity: the signer approves DecryptMessage(name), then the
// envelope is revealed for the signer's address and current network.
func (v *Vault) DecryptFile(ctx context.Context, id string) ([]byte, error) {
	p, err := v.provider()
	if err != nil {
		return nil, fmt.Errorf("vault: decrypt: %w", err)
	}

	env, err := v.Store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("vault: decrypt: %w", err)
	}

	// The approval signature is requested but not bound to the envelope.
	if _, err := p.SignMessage(ctx, envelope.DecryptMessage(env.Metadata().OriginalName)); err != nil {
		return nil, fmt.Errorf("vault: decrypt: sign: %w", err)
	}

	addr, err := p.Address(ctx)
	if err != nil {
		return nil, fmt.Errorf("vault: decrypt: address: %w", err)
	}

	networkID, err := p.NetworkID(ctx)
	if err != nil {
		return nil, fmt.Errorf("vault: decrypt: network: %w", err)
	}

	return v.Decrypt(env, addr, networkID)
}
