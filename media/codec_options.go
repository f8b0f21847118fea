package media

// CodecKind selects which concealment strategy a hide/unveil operation
// uses, independent of the concrete cover format. This package only carries
// the selector itself, to avoid media/image and media/audio (which both
// import media for Primitive/MutPrimitive) importing back into media for a
// dispatch helper. The orchestrate package does not read it: it picks the
// codec from the cover and output file extensions.
type CodecKind int

const (
	// CodecLSB hides one bit per color channel or audio sample's LSB.
	CodecLSB CodecKind = iota
	// CodecF5 hides bits via F5 matrix encoding into JPEG DCT coefficients.
	CodecF5
)
