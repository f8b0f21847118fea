// Package stegerr collects the error taxonomy shared by every codec and
// orchestration layer, mirroring the SteganoError enum of the original
// implementation so callers can distinguish failure classes with errors.Is.
package stegerr

import (
	"errors"
	"strconv"
)

var (
	// ErrUnsupportedMedia is returned when a cover file's extension does not
	// map to a known media kind (png, wav, jpg/jpeg).
	ErrUnsupportedMedia = errors.New("unsupported media type")
	// ErrInvalidAudioMedia is returned when a WAV file fails to parse.
	ErrInvalidAudioMedia = errors.New("invalid or corrupt audio media")
	// ErrInvalidImageMedia is returned when a PNG/JPEG file fails to parse.
	ErrInvalidImageMedia = errors.New("invalid or corrupt image media")
	// ErrNoSecretData is returned when a decode completes but no text and no
	// files were recovered.
	ErrNoSecretData = errors.New("no secret data found")
	// ErrInvalidFileName is returned when a file name sanitizes to empty.
	ErrInvalidFileName = errors.New("invalid file name")
	// ErrCarrierNotSet is returned by orchestration builders when no cover
	// medium was supplied before Execute.
	ErrCarrierNotSet = errors.New("carrier medium not set")
	// ErrTargetNotSet is returned by orchestration builders when no output
	// path was supplied before Execute.
	ErrTargetNotSet = errors.New("output target not set")
	// ErrMissingMessage is returned when neither text nor files were given
	// to a hide request.
	ErrMissingMessage = errors.New("no message or files provided")
	// ErrMissingFiles is returned when a features selection requires files
	// but none were provided.
	ErrMissingFiles = errors.New("no files provided")
	// ErrDecryption is returned when authenticated decryption fails (wrong
	// password or corrupted/tampered payload).
	ErrDecryption = errors.New("decryption failed")
)

// UnsupportedMessageFormatError is returned when a payload's version byte
// carries no feature bits this codec understands.
type UnsupportedMessageFormatError struct {
	Version byte
}

func (e *UnsupportedMessageFormatError) Error() string {
	return "unsupported message format, version byte: 0x" + strconv.FormatUint(uint64(e.Version), 16)
}

// ImageCapacityError is returned when a cover image is too small to hold a
// message, along with the minimum dimensions estimated to fit it.
type ImageCapacityError struct {
	Width, Height                   int
	EstimatedWidth, EstimatedHeight int
}

func (e *ImageCapacityError) Error() string {
	return "image too small to embed message: have " +
		strconv.Itoa(e.Width) + "x" + strconv.Itoa(e.Height) + ", need at least " +
		strconv.Itoa(e.EstimatedWidth) + "x" + strconv.Itoa(e.EstimatedHeight)
}
