package envelope

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// DefaultXORKey is the constant byte the XOR codec applies to every byte.
const DefaultXORKey byte = 0xAA

// Codec names accepted by NewCodec.
const (
	CodecXOR  = "xor"
	CodecAEAD = "aead"
)

// Codec turns raw bytes into a text-safe payload and back.
type Codec interface {
	// Obfuscate transforms b into an encoded payload string.
	Obfuscate(b []byte) (string, error)

	// Deobfuscate recovers the original bytes from an encoded payload.
	// A malformed payload yields an error wrapping ErrCodec.
	Deobfuscate(payload string) ([]byte, error)
}

// NewCodec returns the codec registered under name. The key is ignored for
// the xor codec and must be chacha20poly1305.KeySize bytes for aead.
func NewCodec(name string, key []byte) (Codec, error) {
	switch name {
	case "", CodecXOR:
		return XORCodec{Key: DefaultXORKey}, nil
	case CodecAEAD:
		return NewAEADCodec(key)
	default:
		return nil, fmt.Errorf("%w: unknown codec %q", ErrCodec, name)
	}
}

// XORCodec applies a single-byte exclusive-or to every byte and encodes the
// result as standard base64. It is a reversible placeholder, not encryption.
type XORCodec struct {
	Key byte
}

var _ Codec = XORCodec{}

// Obfuscate implements Codec.
func (c XORCodec) Obfuscate(b []byte) (string, error) {
	return base64.StdEncoding.EncodeToString(c.apply(b)), nil
}

// Deobfuscate implements Codec.
func (c XORCodec) Deobfuscate(payload string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCodec, err)
	}
	return c.apply(raw), nil
}

func (c XORCodec) apply(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[i] = v ^ c.Key
	}
	return out
}

// AEADCodec seals payloads with XChaCha20-Poly1305 under a fixed key.
// Encoded form: base64(nonce(24B) || ciphertext || tag(16B)).
type AEADCodec struct {
	key []byte
}

var _ Codec = (*AEADCodec)(nil)

// NewAEADCodec creates an AEADCodec. key must be exactly 32 bytes.
func NewAEADCodec(key []byte) (*AEADCodec, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: aead key must be %d bytes, got %d", ErrCodec, chacha20poly1305.KeySize, len(key))
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &AEADCodec{key: k}, nil
}

// Obfuscate implements Codec.
func (c *AEADCodec) Obfuscate(b []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCodec, err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(b)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("envelope: random nonce generation failed: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, b, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Deobfuscate implements Codec.
func (c *AEADCodec) Deobfuscate(payload string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCodec, err)
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCodec, err)
	}
	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("%w: sealed payload too short (%d bytes)", ErrCodec, len(raw))
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed", ErrCodec)
	}

	// Normalize nil to empty slice for consistency.
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
