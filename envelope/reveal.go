package envelope

import (
	"fmt"
	"strings"
)

// SignatureVerifier checks that signature is a valid signature of message
// by the holder of address.
type SignatureVerifier interface {
	VerifyMessage(address, message, signature string) error
}

// Verifier gates reveal on the (signer, network) binding of an Envelope.
//
// The identity and network checks always run. VerifyContentHash re-hashes the
// revealed bytes against the recorded content hash. Signatures, when set,
// checks the carried signature over EncryptMessage against the signer.
type Verifier struct {
	Codec             Codec
	VerifyContentHash bool
	Signatures        SignatureVerifier
}

// NewVerifier creates a Verifier that deobfuscates with codec and
// re-verifies content hashes. A nil codec selects the XOR codec.
func NewVerifier(codec Codec) *Verifier {
	return &Verifier{Codec: codec, VerifyContentHash: true}
}

// Check runs the access gate without touching the payload.
func (v *Verifier) Check(env Envelope, claimedSigner string, claimedNetwork int64) error {
	if !strings.EqualFold(env.signer, claimedSigner) {
		return &VerificationError{
			EnvelopeID: env.id,
			Reason:     ErrIdentityMismatch,
			Want:       env.signer,
			Got:        claimedSigner,
		}
	}

	if env.networkID != claimedNetwork {
		return &VerificationError{
			EnvelopeID: env.id,
			Reason:     ErrNetworkMismatch,
			Want:       fmt.Sprint(env.networkID),
			Got:        fmt.Sprint(claimedNetwork),
		}
	}

	if v.Signatures != nil {
		msg := EncryptMessage(env.metadata.OriginalName, env.metadata.Size)
		if err := v.Signatures.VerifyMessage(env.signer, msg, env.signature); err != nil {
			return fmt.Errorf("%w: envelope %s: %w", ErrSignatureInvalid, env.id, err)
		}
	}

	return nil
}

// Reveal returns the original bytes of env if claimedSigner (compared
// case-insensitively) and claimedNetwork match the envelope's binding.
// env is never modified; the returned slice is freshly allocated.
func (v *Verifier) Reveal(env Envelope, claimedSigner string, claimedNetwork int64) ([]byte, error) {
	if err := v.Check(env, claimedSigner, claimedNetwork); err != nil {
		return nil, err
	}

	plaintext, err := v.codec().Deobfuscate(env.payload)
	if err != nil {
		return nil, fmt.Errorf("envelope %s: %w", env.id, err)
	}

	if v.VerifyContentHash {
		if got := ContentHash(plaintext); got != env.metadata.ContentHash {
			return nil, fmt.Errorf("%w: envelope %s", ErrContentHashMismatch, env.id)
		}
	}

	return plaintext, nil
}

func (v *Verifier) codec() Codec {
	if v.Codec == nil {
		return XORCodec{Key: DefaultXORKey}
	}
	return v.Codec
}
