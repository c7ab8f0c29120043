package envelope

import (
	"errors"
	"fmt"
)

var (
	// ErrIdentityUnavailable indicates no signer identity was supplied, usually
	// because the wallet is not connected.
	ErrIdentityUnavailable = errors.New("envelope: identity unavailable")

	// ErrIdentityMismatch indicates a reveal was requested by an identity other
	// than the one that built the envelope.
	ErrIdentityMismatch = errors.New("envelope: signer identity does not match")

	// ErrNetworkMismatch indicates a reveal was requested on a different network
	// than the one recorded at build time.
	ErrNetworkMismatch = errors.New("envelope: network id does not match")

	// ErrCodec indicates the payload could not be obfuscated or deobfuscated.
	ErrCodec = errors.New("envelope: malformed payload")

	// ErrInputTooLarge indicates the file exceeds the configured maximum size.
	ErrInputTooLarge = errors.New("envelope: input exceeds maximum size")

	// ErrInvalidInput indicates a missing file name or a size that disagrees
	// with the supplied bytes.
	ErrInvalidInput = errors.New("envelope: invalid input")

	// ErrContentHashMismatch indicates the revealed bytes do not hash to the
	// content hash recorded in the envelope metadata.
	ErrContentHashMismatch = errors.New("envelope: content hash mismatch after reveal")

	// ErrSignatureInvalid indicates the carried signature does not verify
	// against the signer identity.
	ErrSignatureInvalid = errors.New("envelope: signature verification failed")

	// ErrDuplicateID indicates an envelope with the same id is already stored.
	ErrDuplicateID = errors.New("envelope: duplicate envelope id")

	// ErrNotFound indicates no envelope exists for the given id.
	ErrNotFound = errors.New("envelope: not found")
)

// VerificationError reports why the reveal gate refused an envelope.
// It matches its Reason with errors.Is.
type VerificationError struct {
	EnvelopeID string
	Reason     error
	Want       string
	Got        string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%v: envelope %s (recorded %q, claimed %q)", e.Reason, e.EnvelopeID, e.Want, e.Got)
}

func (e *VerificationError) Unwrap() error { return e.Reason }
