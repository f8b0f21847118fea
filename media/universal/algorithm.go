package universal

import "github.com/Nerggg/multi-stegano/media"

// UnveilAlgorithm turns one cover primitive into a single decoded bit.
type UnveilAlgorithm interface {
	Decode(p media.Primitive) bool
}

// HideAlgorithm writes one message bit into a mutable cover primitive.
type HideAlgorithm interface {
	Encode(p media.MutPrimitive, bit bool)
}

// OneBitUnveil extracts the LSB of a primitive, identically for image color
// channels and audio samples.
type OneBitUnveil struct{}

// Decode implements UnveilAlgorithm.
func (OneBitUnveil) Decode(p media.Primitive) bool {
	return p.LSB()
}

// OneBitHide writes a bit into the LSB of a primitive.
type OneBitHide struct{}

// Encode implements HideAlgorithm.
func (OneBitHide) Encode(p media.MutPrimitive, bit bool) {
	p.SetLSB(bit)
}

// OneBitInLowFrequencyHide is the "LowFrequencies" concealer variant. Its
// Encode sets the LSB exactly like OneBitHide, and the channel iterators
// yield the same primitives for both concealers, so its bits are read back
// with OneBitUnveil (see DESIGN.md Open Question on Concealer semantics).
type OneBitInLowFrequencyHide struct{}

// Encode implements HideAlgorithm.
func (OneBitInLowFrequencyHide) Encode(p media.MutPrimitive, bit bool) {
	p.SetLSB(bit)
}
