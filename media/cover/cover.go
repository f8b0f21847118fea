// Package cover dispatches a loaded cover file to the right concrete media
// kind (image or audio) by extension, mirroring the original's Media enum
// and from_file/save_to_writer. It sits above media/image and media/audio
// since both of those import media's primitive types directly.
package cover

import (
	"bytes"
	goimage "image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/Nerggg/multi-stegano/media/audio"
	stegimage "github.com/Nerggg/multi-stegano/media/image"
	"github.com/Nerggg/multi-stegano/stegerr"
)

// Kind identifies which concrete cover medium a Cover value wraps.
type Kind int

const (
	KindImage Kind = iota
	KindAudio
)

// Cover is a steganographic cover container: either a decoded raster image
// or a decoded WAV file.
type Cover struct {
	Kind  Kind
	Image *goimage.NRGBA
	Audio *audio.File
}

// FromBytes loads a Cover from raw file bytes, dispatching on the file
// extension exactly like the original's from_file: any format Go's image
// package recognizes decodes to KindImage, WAV decodes to KindAudio,
// anything else is rejected.
func FromBytes(data []byte, fileName string) (*Cover, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
		img, _, err := goimage.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, stegerr.ErrInvalidImageMedia
		}
		return &Cover{Kind: KindImage, Image: stegimage.ToNRGBA(img)}, nil
	case ".wav":
		f, err := audio.Parse(data)
		if err != nil {
			return nil, stegerr.ErrInvalidAudioMedia
		}
		return &Cover{Kind: KindAudio, Audio: f}, nil
	default:
		return nil, stegerr.ErrUnsupportedMedia
	}
}

// Encode serializes c back to bytes in its native format: PNG for images,
// WAV for audio.
func (c *Cover) Encode() ([]byte, error) {
	switch c.Kind {
	case KindImage:
		var buf bytes.Buffer
		if err := png.Encode(&buf, c.Image); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case KindAudio:
		return audio.Encode(c.Audio), nil
	default:
		return nil, stegerr.ErrUnsupportedMedia
	}
}

// Dimensions returns the image's width and height, for capacity-error
// reporting. Only meaningful for KindImage.
func (c *Cover) Dimensions() (width, height int) {
	if c.Kind != KindImage {
		return 0, 0
	}
	b := c.Image.Bounds()
	return b.Dx(), b.Dy()
}

// EstimateNeededDimensions scales width/height by the ratio of message size
// to available capacity, mirroring the original's capacity-error estimate:
// estimated_needed_dimensions = msg_len*8/3 color-channel primitives.
func EstimateNeededDimensions(width, height, messageLen int) (w, h int) {
	capacity := width * height
	if capacity == 0 {
		return width, height
	}
	estimatedNeeded := messageLen * 8 / 3
	scale := float64(estimatedNeeded) / float64(capacity)
	return int(scale * float64(width)), int(scale * float64(height))
}
