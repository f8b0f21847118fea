// Package image adapts Go's standard image package into the universal
// bit-transport layer, giving column-major, alpha-aware access to a raster
// image's color channels the way the original F5/LSB codecs need it.
package image

import (
	"image"

	"github.com/Nerggg/multi-stegano/media"
)

// channelGeometry captures the column-major walk order over an image's
// color channels: outer loop over columns, inner loop over rows, innermost
// over the 3 or 4 channels of each pixel — mirroring the original's
// row-buffered transpose iterator.
type channelGeometry struct {
	width, height int
	channels      int // 3 (skip alpha) or 4
	stepIncrement int
}

func newGeometry(bounds image.Rectangle, skipLastRowAndColumn, skipAlphaChannel bool, stepIncrement int) channelGeometry {
	width := bounds.Dx()
	height := bounds.Dy()
	if skipLastRowAndColumn {
		width--
		height--
	}
	channels := 4
	if skipAlphaChannel {
		channels = 3
	}
	if stepIncrement < 1 {
		stepIncrement = 1
	}
	return channelGeometry{width: width, height: height, channels: channels, stepIncrement: stepIncrement}
}

func (g channelGeometry) total() int {
	return g.width * g.height * g.channels
}

// position converts a linear walk index into (col, row, channel), in
// column-major order.
func (g channelGeometry) position(i int) (col, row, channel int) {
	pixelIndex := i / g.channels
	channel = i % g.channels
	col = pixelIndex / g.height
	row = pixelIndex % g.height
	return
}

// ChannelSource reads an *image.NRGBA's color channels in column-major
// order, implementing universal.PrimitiveSource.
type ChannelSource struct {
	img  *image.NRGBA
	geom channelGeometry
	i    int
}

// NewChannelSource wraps img for reading, honoring the same
// skip-last-row-and-column and skip-alpha-channel conventions as the
// original encoder/decoder.
func NewChannelSource(img *image.NRGBA, skipLastRowAndColumn, skipAlphaChannel bool, stepIncrement int) *ChannelSource {
	return &ChannelSource{img: img, geom: newGeometry(img.Bounds(), skipLastRowAndColumn, skipAlphaChannel, stepIncrement)}
}

// Next returns the next color channel as a media.Primitive.
func (s *ChannelSource) Next() (media.Primitive, bool) {
	if s.i >= s.geom.total() {
		return media.Primitive{}, false
	}
	col, row, channel := s.geom.position(s.i)
	s.i += s.geom.stepIncrement
	offset := s.img.PixOffset(col, row) + channel
	return media.ImageColorChannel(s.img.Pix[offset]), true
}

// ChannelSink writes an *image.NRGBA's color channels in the same
// column-major order, implementing universal.PrimitiveSink.
type ChannelSink struct {
	img  *image.NRGBA
	geom channelGeometry
	i    int
}

// NewChannelSink wraps img for writing.
func NewChannelSink(img *image.NRGBA, skipLastRowAndColumn, skipAlphaChannel bool, stepIncrement int) *ChannelSink {
	return &ChannelSink{img: img, geom: newGeometry(img.Bounds(), skipLastRowAndColumn, skipAlphaChannel, stepIncrement)}
}

// Next returns the next color channel as a mutable media.MutPrimitive.
func (s *ChannelSink) Next() (media.MutPrimitive, bool) {
	if s.i >= s.geom.total() {
		return media.MutPrimitive{}, false
	}
	col, row, channel := s.geom.position(s.i)
	s.i += s.geom.stepIncrement
	offset := s.img.PixOffset(col, row) + channel
	return media.MutImageColorChannel(&s.img.Pix[offset]), true
}

// Capacity returns the number of channel primitives this geometry exposes,
// used for capacity-estimation before hiding a payload.
func Capacity(bounds image.Rectangle, skipLastRowAndColumn, skipAlphaChannel bool) int {
	g := newGeometry(bounds, skipLastRowAndColumn, skipAlphaChannel, 1)
	return g.total()
}
