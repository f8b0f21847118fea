package image

import (
	"fmt"

	"github.com/Nerggg/multi-stegano/f5"
	"github.com/Nerggg/multi-stegano/jpeg"
)

// F5Options configures F5 matrix encoding into a JPEG's DCT coefficients.
type F5Options struct {
	// FixedW pins the matrix-encoding parameter; 0 lets the encoder choose
	// automatically based on message size and available coefficients.
	FixedW uint8
	// PermutationSeed shuffles coefficient order before embedding, deriving
	// from a password so extraction without it finds nothing coherent. Nil
	// disables shuffling.
	PermutationSeed []byte
}

// F5Hide embeds message into the JPEG file jpegData's DCT coefficients and
// returns a complete, re-encoded JPEG file.
func F5Hide(jpegData []byte, message []byte, opts F5Options) ([]byte, error) {
	segs, err := jpeg.Parse(jpegData)
	if err != nil {
		return nil, fmt.Errorf("image: parsing JPEG: %w", err)
	}

	coeffs, err := jpeg.DecodeScan(segs)
	if err != nil {
		return nil, fmt.Errorf("image: decoding JPEG scan: %w", err)
	}

	var enc *f5.Encoder
	if opts.FixedW != 0 {
		enc = f5.NewEncoderWithW(opts.FixedW)
	} else {
		enc = f5.NewEncoder()
	}

	if err := enc.Embed(coeffs.Data, message, opts.PermutationSeed); err != nil {
		return nil, fmt.Errorf("image: embedding message: %w", err)
	}

	scanData, err := jpeg.EncodeScan(segs, coeffs)
	if err != nil {
		return nil, fmt.Errorf("image: re-encoding JPEG scan: %w", err)
	}

	return jpeg.WriteJPEG(segs, scanData), nil
}

// F5Unveil recovers a message previously embedded by F5Hide from a JPEG
// file's DCT coefficients.
func F5Unveil(jpegData []byte, opts F5Options) ([]byte, error) {
	segs, err := jpeg.Parse(jpegData)
	if err != nil {
		return nil, fmt.Errorf("image: parsing JPEG: %w", err)
	}

	coeffs, err := jpeg.DecodeScan(segs)
	if err != nil {
		return nil, fmt.Errorf("image: decoding JPEG scan: %w", err)
	}

	dec := f5.NewDecoder()
	message, err := dec.Extract(coeffs.Data, opts.PermutationSeed)
	if err != nil {
		return nil, fmt.Errorf("image: extracting message: %w", err)
	}
	return message, nil
}

// F5Capacity estimates how many message bytes jpegData's DCT coefficients
// can carry.
func F5Capacity(jpegData []byte) (int, error) {
	segs, err := jpeg.Parse(jpegData)
	if err != nil {
		return 0, fmt.Errorf("image: parsing JPEG: %w", err)
	}
	coeffs, err := jpeg.DecodeScan(segs)
	if err != nil {
		return 0, fmt.Errorf("image: decoding JPEG scan: %w", err)
	}
	return f5.NewEncoder().Capacity(coeffs.Data), nil
}
