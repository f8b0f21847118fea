package universal

import "github.com/Nerggg/multi-stegano/media"

// PrimitiveSink yields mutable cover primitives one at a time so the encoder
// can write bits back into the cover medium in place.
type PrimitiveSink interface {
	Next() (media.MutPrimitive, bool)
}

// Encoder implements io.Writer by consuming one primitive per bit of the
// written bytes and encoding each bit via algo.
type Encoder struct {
	sink PrimitiveSink
	algo HideAlgorithm
}

// NewEncoder builds an Encoder over sink using algo to write each bit.
func NewEncoder(sink PrimitiveSink, algo HideAlgorithm) *Encoder {
	return &Encoder{sink: sink, algo: algo}
}

// Write encodes every bit of p into successive primitives, LSB-first per
// byte (bit 0 first, bit 7 last), the same order in which Decoder packs the
// bits back into bytes on read-back.
func (e *Encoder) Write(p []byte) (int, error) {
	for _, b := range p {
		for i := 0; i < 8; i++ {
			bit := (b>>uint(i))&1 == 1
			mp, ok := e.sink.Next()
			if !ok {
				return len(p), errCapacity
			}
			e.algo.Encode(mp, bit)
		}
	}
	return len(p), nil
}

var errCapacity = capacityError{}

type capacityError struct{}

func (capacityError) Error() string { return "media capacity exceeded while hiding data" }
