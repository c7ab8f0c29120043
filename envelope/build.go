package envelope

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// validate is shared; it caches struct info.
var validate = validator.New()

// buildRequest is the validated shape of Build's positional inputs.
type buildRequest struct {
	FileName string `validate:"required"`
	FileSize int64  `validate:"gte=0"`
	Signer   string `validate:"required"`
}

// Builder assembles Envelopes. Zero-valued fields fall back to defaults:
// the XOR codec, MaxFileSize, time.Now and random UUIDs.
type Builder struct {
	Codec   Codec
	MaxSize int64
	Now     func() time.Time
	NewID   func() string
}

// NewBuilder creates a Builder that obfuscates with codec and accepts inputs
// of at most maxSize bytes. A nil codec or non-positive maxSize selects the default.
func NewBuilder(codec Codec, maxSize int64) *Builder {
	return &Builder{Codec: codec, MaxSize: maxSize}
}

// Build hashes and obfuscates fileBytes and binds the result to signer and
// networkID. It has no storage side effects; callers append the returned
// Envelope to a Store themselves.
func (b *Builder) Build(fileBytes []byte, fileName string, fileSize int64, signature, signer string, networkID int64) (Envelope, error) {
	req := buildRequest{
		FileName: fileName,
		FileSize: fileSize,
		Signer:   strings.TrimSpace(signer),
	}
	if err := validateRequest(req); err != nil {
		return Envelope{}, err
	}

	maxSize := b.Limit()
	if int64(len(fileBytes)) > maxSize {
		return Envelope{}, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(fileBytes), maxSize)
	}
	if fileSize != int64(len(fileBytes)) {
		return Envelope{}, fmt.Errorf("%w: declared size %d, got %d bytes", ErrInvalidInput, fileSize, len(fileBytes))
	}

	contentHash := ContentHash(fileBytes)

	payload, err := b.codec().Obfuscate(fileBytes)
	if err != nil {
		if errors.Is(err, ErrCodec) {
			return Envelope{}, err
		}
		return Envelope{}, fmt.Errorf("%w: %w", ErrCodec, err)
	}

	return Envelope{
		id:      b.newID(),
		payload: payload,
		metadata: FileMetadata{
			OriginalName: fileName,
			Size:         fileSize,
			UploadedAt:   b.now().UTC(),
			ContentHash:  contentHash,
		},
		signature: signature,
		networkID: networkID,
		signer:    signer,
	}, nil
}

func validateRequest(req buildRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// Report the signer first: without an identity nothing else matters.
	for _, fe := range verrs {
		if fe.Field() == "Signer" {
			return fmt.Errorf("%w: signer identity is empty", ErrIdentityUnavailable)
		}
	}
	fe := verrs[0]
	return fmt.Errorf("%w: %s failed %q", ErrInvalidInput, fe.Field(), fe.Tag())
}

// CheckInput runs the checks Build applies to the file name and size alone,
// so callers can reject a file before collecting a signature for it.
func (b *Builder) CheckInput(fileName string, fileSize int64) error {
	if err := validate.Var(fileName, "required"); err != nil {
		return fmt.Errorf("%w: FileName failed %q", ErrInvalidInput, "required")
	}
	if maxSize := b.Limit(); fileSize > maxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, fileSize, maxSize)
	}
	return nil
}

// Limit returns the largest accepted input size in bytes.
func (b *Builder) Limit() int64 { return b.maxSize() }

func (b *Builder) codec() Codec {
	if b.Codec == nil {
		return XORCodec{Key: DefaultXORKey}
	}
	return b.Codec
}

func (b *Builder) maxSize() int64 {
	if b.MaxSize <= 0 {
		return MaxFileSize
	}
	return b.MaxSize
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b *Builder) newID() string {
	if b.NewID == nil {
		return uuid.NewString()
	}
	return b.NewID()
}
