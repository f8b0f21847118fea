package payload

import (
	"encoding/binary"
	"fmt"
	"io"
)

// EncoderWithLengthHeader frames content as
// [features byte][length uint32 big-endian][content][0xFF terminator].
type EncoderWithLengthHeader struct {
	version Features
}

// NewEncoderWithLengthHeader builds an encoder stamping version as the
// feature byte.
func NewEncoderWithLengthHeader(version Features) *EncoderWithLengthHeader {
	return &EncoderWithLengthHeader{version: version}
}

// Version implements Encoder.
func (e *EncoderWithLengthHeader) Version() Features { return e.version }

// Encode implements Encoder.
func (e *EncoderWithLengthHeader) Encode(content []byte) ([]byte, error) {
	buf := make([]byte, 0, len(content)+6)
	buf = append(buf, byte(e.version))
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(content)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, content...)
	buf = append(buf, 0xFF)
	return buf, nil
}

// DecoderWithLengthHeader reads a length-prefixed body out of a stream that
// has already had its feature byte consumed by the caller (the orchestrator
// peeks the feature byte to pick which decoder to use before decoding).
type DecoderWithLengthHeader struct{}

// Decode implements Decoder.
func (DecoderWithLengthHeader) Decode(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("payload: reading length header: %w", err)
	}
	length := binary.BigEndian.Uint32(lenBuf[:])

	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("payload: reading body: %w", err)
	}
	if uint32(len(rest)) < length {
		return nil, fmt.Errorf("payload: declared length %d exceeds available data %d", length, len(rest))
	}
	return rest[:length], nil
}
