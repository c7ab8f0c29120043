package identity

import (
	"encoding/base64"
	"fmt"

	bsm "github.com/bsv-blockchain/go-sdk/compat/bsm"

	"github.com/bitfsorg/libseal-go/envelope"
)

// BSMVerifier checks base64 Bitcoin Signed Message signatures against a
// P2PKH address.
type BSMVerifier struct{}

var _ envelope.SignatureVerifier = BSMVerifier{}

// VerifyMessage implements envelope.SignatureVerifier.
func (BSMVerifier) VerifyMessage(address, message, signature string) error {
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSignature, err)
	}
	if err := bsm.VerifyMessage(address, sig, []byte(message)); err != nil {
		return fmt.Errorf("%w: %w", ErrBadSignature, err)
	}
	return nil
}
