package message

import (
	"fmt"
	"io"

	"github.com/Nerggg/multi-stegano/payload"
)

// RawMessage is an uninterpreted payload body: no zip container, no text
// convention, just whatever bytes the codec framed. Grounded on
// stegano-core/src/raw_message.rs.
type RawMessage struct {
	Content []byte
}

// RawMessageFromRawData decodes a RawMessage out of r, reading the leading
// feature byte to pick the right codec from factory. Named distinctly from
// Message's FromRawData since Go has no per-type static-method namespacing.
func RawMessageFromRawData(r io.Reader, factory payload.CodecFactory) (*RawMessage, error) {
	var versionBuf [1]byte
	if _, err := io.ReadFull(r, versionBuf[:]); err != nil {
		return nil, fmt.Errorf("message: reading feature byte: %w", err)
	}

	codec, err := factory.CreateCodec(payload.Features(versionBuf[0]))
	if err != nil {
		return nil, err
	}

	content, err := codec.Decode(r)
	if err != nil {
		return nil, err
	}
	return &RawMessage{Content: content}, nil
}
