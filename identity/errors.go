package identity

import (
	"errors"
	"fmt"

	"github.com/bitfsorg/libseal-go/envelope"
)

var (
	// ErrIdentityUnavailable indicates the provider is missing or not connected.
	// It matches envelope.ErrIdentityUnavailable under errors.Is.
	ErrIdentityUnavailable = fmt.Errorf("identity: wallet not connected: %w", envelope.ErrIdentityUnavailable)

	// ErrNilWallet indicates a nil wallet was provided.
	ErrNilWallet = errors.New("identity: wallet is nil")

	// ErrMalformedSignature indicates a signature is not valid base64.
	ErrMalformedSignature = errors.New("identity: malformed signature encoding")

	// ErrBadSignature indicates a signature does not verify for the address.
	ErrBadSignature = errors.New("identity: signature does not match address")
)
