package payload

import "fmt"

// CodecFactory builds a Codec for a requested feature set, optionally
// supplying a password for crypto-wrapped variants.
type CodecFactory interface {
	CreateCodec(features Features) (Codec, error)
	// Password returns the password this factory encrypts with, if any.
	Password() (string, bool)
}

// FabA is the default factory: legacy formats route to FabTextOnly,
// anything else gets wrapped with a length header.
type FabA struct{}

// Password implements CodecFactory.
func (FabA) Password() (string, bool) { return "", false }

// CreateCodec implements CodecFactory.
func (FabA) CreateCodec(features Features) (Codec, error) {
	switch {
	case features == Features(TextOnly) || features == Features(TextAndDocumentsTerminated):
		return FabTextOnly{}.CreateCodec(features)
	case features == Features(TextAndDocuments):
		return &flexCodec{
			enc: NewEncoderWithLengthHeader(Features(TextAndDocuments).With(LengthHeader)),
			dec: DecoderWithLengthHeader{},
		}, nil
	case features.Has(LengthHeader):
		return &flexCodec{
			enc: NewEncoderWithLengthHeader(features),
			dec: DecoderWithLengthHeader{},
		}, nil
	default:
		return nil, fmt.Errorf("payload: unsupported message format: %d", byte(features))
	}
}
