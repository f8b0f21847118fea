package universal

import (
	"io"

	"github.com/Nerggg/multi-stegano/bitio"
	"github.com/Nerggg/multi-stegano/media"
)

// PrimitiveSource yields cover primitives one at a time, in the order the
// matching encoder consumed them. It is exhausted (ok == false) once the
// cover medium runs out of addressable units.
type PrimitiveSource interface {
	Next() (media.Primitive, bool)
}

// Decoder implements io.Reader by decoding one bit per primitive pulled from
// a PrimitiveSource and packing those bits little-endian into whole bytes,
// exactly as the Rust UniversalDecoder<I, A> does via bitstream_io's
// LittleEndian bit writer.
type Decoder struct {
	src  PrimitiveSource
	algo UnveilAlgorithm
}

// NewDecoder builds a Decoder over src using algo to turn each primitive
// into a bit.
func NewDecoder(src PrimitiveSource, algo UnveilAlgorithm) *Decoder {
	return &Decoder{src: src, algo: algo}
}

// Read fills buf with decoded bytes. It requests len(buf)*8 primitives from
// the source, decodes each into a bit, and packs them LSB-first into buf.
// Like the original, a short underlying source yields fewer whole bytes
// rather than an error — the caller discovers truncation via n < len(buf).
func (d *Decoder) Read(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	w := bitio.NewWriter()
	wanted := len(buf) * 8
	for i := 0; i < wanted; i++ {
		p, ok := d.src.Next()
		if !ok {
			break
		}
		w.WriteBit(d.algo.Decode(p))
	}
	n := len(w.Bytes())
	copy(buf, w.Bytes())
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// ReadFull reads exactly n bytes, or returns an error if the underlying
// source runs out first — a convenience the payload/message layer uses when
// it knows exactly how many bytes it expects (e.g. a fixed-size header).
func ReadFull(d *Decoder, n int) ([]byte, error) {
	buf := make([]byte, n)
	read := 0
	for read < n {
		m, err := d.Read(buf[read:])
		read += m
		if m == 0 || err != nil {
			if read < n {
				return buf[:read], io.ErrUnexpectedEOF
			}
			break
		}
	}
	return buf, nil
}
