package payload

import (
	"bufio"
	"fmt"
	"io"
)

// DecoderLegacyV1 reads bytes until the first 0xFF terminator (the original
// "naive, only one terminator" scheme).
type DecoderLegacyV1 struct{}

// Decode implements Decoder.
func (DecoderLegacyV1) Decode(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	var buf []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			break
		}
		if b == 0xFF {
			break
		}
		buf = append(buf, b)
	}
	return buf, nil
}

// DecoderLegacyV2 reads to the end of the stream, strips trailing 0x00
// padding, then strips up to two trailing 0xFF terminator bytes.
type DecoderLegacyV2 struct{}

// Decode implements Decoder.
func (DecoderLegacyV2) Decode(r io.Reader) ([]byte, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	end := len(buf)
	for end > 0 && buf[end-1] == 0x00 {
		end--
	}
	buf = buf[:end]
	for i := 0; i < 2 && len(buf) > 0 && buf[len(buf)-1] == 0xFF; i++ {
		buf = buf[:len(buf)-1]
	}
	return buf, nil
}

// FabTextOnly builds the legacy plain-text-only codec pair: a
// length-header encoder (the original migrated encoding to the newer
// format even for "legacy" feature requests) paired with whichever legacy
// decoder matches the requested feature set.
type FabTextOnly struct{}

// CreateCodec implements CodecFactory.
func (FabTextOnly) CreateCodec(features Features) (Codec, error) {
	switch {
	case features.Has(TextOnly):
		return &flexCodec{
			enc: NewEncoderWithLengthHeader(Features(TextOnly).With(LengthHeader)),
			dec: DecoderLegacyV1{},
		}, nil
	case features.Has(TextAndDocumentsTerminated):
		return &flexCodec{
			enc: NewEncoderWithLengthHeader(Features(TextAndDocuments).With(LengthHeader)),
			dec: DecoderLegacyV2{},
		}, nil
	default:
		return nil, fmt.Errorf("payload: unsupported message format: %d", byte(features))
	}
}

// flexCodec pairs an independently-chosen encoder and decoder under one
// Codec, mirroring PayloadFlexCodec.
type flexCodec struct {
	enc Encoder
	dec Decoder
}

func (c *flexCodec) Version() Features                  { return c.enc.Version() }
func (c *flexCodec) Encode(content []byte) ([]byte, error) { return c.enc.Encode(content) }
func (c *flexCodec) Decode(r io.Reader) ([]byte, error)    { return c.dec.Decode(r) }
