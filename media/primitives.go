// Package media defines the polymorphism layer that lets the universal
// encoder/decoder operate identically over image color channels and audio
// samples: a MediaPrimitive carries one addressable unit of cover data.
package media

// Primitive is one read-only addressable unit of cover data: either a single
// image color channel byte, or a 16-bit audio sample.
type Primitive struct {
	channel byte
	sample  int16
	isAudio bool
}

// ImageColorChannel builds a Primitive wrapping one 8-bit color channel.
func ImageColorChannel(v byte) Primitive {
	return Primitive{channel: v}
}

// AudioSample builds a Primitive wrapping one 16-bit PCM sample.
func AudioSample(v int16) Primitive {
	return Primitive{sample: v, isAudio: true}
}

// IsAudio reports whether this primitive wraps an audio sample rather than
// an image color channel.
func (p Primitive) IsAudio() bool {
	return p.isAudio
}

// Channel returns the wrapped color channel byte (valid when !IsAudio()).
func (p Primitive) Channel() byte {
	return p.channel
}

// Sample returns the wrapped audio sample (valid when IsAudio()).
func (p Primitive) Sample() int16 {
	return p.sample
}

// LSB returns the least-significant bit of the wrapped value, regardless of
// its underlying kind.
func (p Primitive) LSB() bool {
	if p.isAudio {
		return p.sample&0x1 != 0
	}
	return p.channel&0x1 != 0
}

// MutPrimitive is the mutable counterpart of Primitive: it lets an encoding
// algorithm write a decision back into the underlying cover data without the
// iterator needing to know which kind it is.
type MutPrimitive struct {
	channel *byte
	sample  *int16
}

// MutImageColorChannel builds a MutPrimitive over a color channel byte.
func MutImageColorChannel(v *byte) MutPrimitive {
	return MutPrimitive{channel: v}
}

// MutAudioSample builds a MutPrimitive over a 16-bit PCM sample.
func MutAudioSample(v *int16) MutPrimitive {
	return MutPrimitive{sample: v}
}

// IsAudio reports whether this primitive wraps an audio sample.
func (p MutPrimitive) IsAudio() bool {
	return p.sample != nil
}

// SetLSB overwrites the least-significant bit of the wrapped value, leaving
// the remaining bits untouched.
func (p MutPrimitive) SetLSB(bit bool) {
	if p.sample != nil {
		if bit {
			*p.sample |= 1
		} else {
			*p.sample &^= 1
		}
		return
	}
	if bit {
		*p.channel |= 1
	} else {
		*p.channel &^= 1
	}
}

// LSB returns the current least-significant bit of the wrapped value.
func (p MutPrimitive) LSB() bool {
	if p.sample != nil {
		return *p.sample&0x1 != 0
	}
	return *p.channel&0x1 != 0
}
