package vault

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bitfsorg/libseal-go/envelope"
)

// Encrypt seals fileBytes for signer on networkID and appends the envelope
// to the session store.
func (v *Vault) Encrypt(fileBytes []byte, fileName string, fileSize int64, signer string, networkID int64, signature string) (envelope.Envelope, error) {
	env, err := v.Builder.Build(fileBytes, fileName, fileSize, signature, signer, networkID)
	if err != nil {
		v.Log.Warn("encrypt refused",
			zap.String("file_name", fileName),
			zap.Int64("size", fileSize),
			zap.Error(err))
		return envelope.Envelope{}, fmt.Errorf("vault: encrypt: %w", err)
	}

	if err := v.Store.Append(env); err != nil {
		v.Log.Warn("store refused", append(envelopeFields(env), zap.Error(err))...)
		return envelope.Envelope{}, fmt.Errorf("vault: store envelope: %w", err)
	}

	v.Log.Info("file encrypted", envelopeFields(env)...)
	return env, nil
}

// EncryptFile runs the full upload flow against the connected identity:
// the signer approves EncryptMessage(name, size), then the file is sealed
// for the signer's address and current network.
func (v *Vault) EncryptFile(ctx context.Context, name string, data []byte) (envelope.Envelope, error) {
	p, err := v.provider()
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("vault: encrypt: %w", err)
	}

	// Reject a file Build would refuse before asking the signer for anything.
	if err := v.Builder.CheckInput(name, int64(len(data))); err != nil {
		return envelope.Envelope{}, fmt.Errorf("vault: encrypt: %w", err)
	}

	addr, err := p.Address(ctx)
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("vault: encrypt: address: %w", err)
	}

	size := int64(len(data))
	sig, err := p.SignMessage(ctx, envelope.EncryptMessage(name, size))
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("vault: encrypt: sign: %w", err)
	}

	networkID, err := p.NetworkID(ctx)
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("vault: encrypt: network: %w", err)
	}

	return v.Encrypt(data, name, size, addr, networkID, sig)
}
