package orchestrate

import (
	"bytes"
	stdimage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/Nerggg/multi-stegano/media/universal"
)

func stdimageDecode(data []byte) (stdimage.Image, string, error) {
	return stdimage.Decode(bytes.NewReader(data))
}

// readAll pulls up to maxBytes out of an LSB decoder, tolerating a short
// underlying source (io.EOF) the way message/payload framing expects: the
// declared length inside the frame, not the cover medium's raw capacity,
// is authoritative.
func readAll(decoder *universal.Decoder, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		return nil, nil
	}
	buf := make([]byte, maxBytes)
	n, err := decoder.Read(buf)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}
