package image

import (
	stdimage "image"

	"github.com/Nerggg/multi-stegano/media/universal"
)

// Concealer selects where within a color channel a bit gets stored. Both
// variants currently read back identically (see DESIGN.md); LowFrequencies
// is carried for API parity with the original and future coefficient
// selection strategies.
type Concealer int

const (
	LeastSignificantBit Concealer = iota
	LowFrequencies
)

// LSBOptions configures least-significant-bit hiding in a raster image's
// color channels. Defaults match the original concealer's behavior.
type LSBOptions struct {
	// ColorChannelStepIncrement skips ahead this many channel primitives
	// between each bit written/read, spreading the payload more thinly
	// across the carrier. 1 means every channel is used.
	ColorChannelStepIncrement int
	// SkipAlphaChannel excludes the alpha channel from carrying bits.
	SkipAlphaChannel bool
	// Concealer selects the bit-placement strategy within each channel.
	Concealer Concealer
	// SkipLastRowAndColumn excludes the final pixel row and column, which
	// some image editors touch up on save/resize and could flip bits.
	SkipLastRowAndColumn bool
}

// DefaultLSBOptions matches the original implementation's defaults.
func DefaultLSBOptions() LSBOptions {
	return LSBOptions{
		ColorChannelStepIncrement: 1,
		SkipAlphaChannel:          true,
		Concealer:                 LeastSignificantBit,
		SkipLastRowAndColumn:      true,
	}
}

// NewLSBEncoder returns a universal.Encoder that hides bits into img's
// color channels in place.
func NewLSBEncoder(img *stdimage.NRGBA, opts LSBOptions) *universal.Encoder {
	sink := NewChannelSink(img, opts.SkipLastRowAndColumn, opts.SkipAlphaChannel, opts.ColorChannelStepIncrement)
	var algo universal.HideAlgorithm = universal.OneBitHide{}
	if opts.Concealer == LowFrequencies {
		algo = universal.OneBitInLowFrequencyHide{}
	}
	return universal.NewEncoder(sink, algo)
}

// NewLSBDecoder returns a universal.Decoder that reads bits back out of
// img's color channels.
func NewLSBDecoder(img *stdimage.NRGBA, opts LSBOptions) *universal.Decoder {
	source := NewChannelSource(img, opts.SkipLastRowAndColumn, opts.SkipAlphaChannel, opts.ColorChannelStepIncrement)
	return universal.NewDecoder(source, universal.OneBitUnveil{})
}

// LSBCapacity returns the number of bytes img can carry under opts.
func LSBCapacity(img *stdimage.NRGBA, opts LSBOptions) int {
	step := opts.ColorChannelStepIncrement
	if step < 1 {
		step = 1
	}
	total := Capacity(img.Bounds(), opts.SkipLastRowAndColumn, opts.SkipAlphaChannel)
	return (total + step - 1) / step / 8
}

// ToNRGBA converts any decoded image.Image into the *image.NRGBA this
// codec operates on, copying pixel data if the source isn't already NRGBA.
func ToNRGBA(img stdimage.Image) *stdimage.NRGBA {
	if nrgba, ok := img.(*stdimage.NRGBA); ok {
		return nrgba
	}
	bounds := img.Bounds()
	out := stdimage.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}
