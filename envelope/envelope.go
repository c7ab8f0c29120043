// Package envelope binds an obfuscated file payload to the identity and
// network that produced it, and gates reveal on that binding.
//
// Data flow:
//
//	raw bytes -> ContentHash -> metadata.ContentHash
//	raw bytes -> Codec.Obfuscate -> payload
//	hash + payload + signer + network -> Builder.Build -> Envelope
//	Envelope + claimed (signer, network) -> Verifier.Reveal -> raw bytes
package envelope

import (
	"encoding/json"
	"time"
)

// MaxFileSize is the default upper bound on input size (50 KiB, inclusive).
const MaxFileSize = 50 * 1024

// TimestampLayout renders upload timestamps as ISO-8601 UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FileMetadata describes the original file sealed in an Envelope.
type FileMetadata struct {
	OriginalName string
	Size         int64
	UploadedAt   time.Time
	ContentHash  string // hex SHA-256 of the original bytes
}

// UploadTimestamp returns UploadedAt in ISO-8601 form.
func (m FileMetadata) UploadTimestamp() string {
	return m.UploadedAt.UTC().Format(TimestampLayout)
}

// Envelope is an obfuscated payload bound to a signer identity and network.
// It has no setters: once built, nothing about it changes.
type Envelope struct {
	id        string
	payload   string
	metadata  FileMetadata
	signature string
	networkID int64
	signer    string
}

// ID returns the envelope's unique id.
func (e Envelope) ID() string { return e.id }

// Payload returns the encoded obfuscated payload.
func (e Envelope) Payload() string { return e.payload }

// Metadata returns a copy of the original file's metadata.
func (e Envelope) Metadata() FileMetadata { return e.metadata }

// Signature returns the signature carried for audit and display.
func (e Envelope) Signature() string { return e.signature }

// NetworkID returns the network the envelope was built on.
func (e Envelope) NetworkID() int64 { return e.networkID }

// Signer returns the signer identity exactly as recorded.
func (e Envelope) Signer() string { return e.signer }

// IsZero reports whether e is the zero Envelope.
func (e Envelope) IsZero() bool { return e.id == "" }

type metadataJSON struct {
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	UploadDate   string `json:"uploadDate"`
	Hash         string `json:"hash"`
}

type envelopeJSON struct {
	ID            string       `json:"id"`
	EncryptedData string       `json:"encryptedData"`
	Metadata      metadataJSON `json:"metadata"`
	Signature     string       `json:"signature"`
	ChainID       int64        `json:"chainId"`
	SignerAddress string       `json:"signerAddress"`
}

// MarshalJSON renders the envelope in its display form.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelopeJSON{
		ID:            e.id,
		EncryptedData: e.payload,
		Metadata: metadataJSON{
			OriginalName: e.metadata.OriginalName,
			Size:         e.metadata.Size,
			UploadDate:   e.metadata.UploadTimestamp(),
			Hash:         e.metadata.ContentHash,
		},
		Signature:     e.signature,
		ChainID:       e.networkID,
		SignerAddress: e.signer,
	})
}
