package models

import (
	"errors"
	"net/http"

	"github.com/Nerggg/multi-stegano/stegerr"
)

// Predefined errors for steganography operations
var (
	ErrInvalidMP3           = errors.New("failed to decode audio data, not a valid MP3 file")
	ErrInsufficientCapacity = errors.New("insufficient audio capacity for the provided data")
	ErrInvalidLSB           = errors.New("LSB value must be between 1 and 4")
	ErrInvalidMethod        = errors.New("invalid steganography method, must be 'lsb' or 'parity'")
	ErrInvalidStegoKey      = errors.New("steganography key cannot be empty when encryption or random start is enabled")
	ErrInvalidSignature     = errors.New("invalid steganography signature - data may not be embedded or corrupted")
	ErrFileTooLarge         = errors.New("file size exceeds maximum allowed limit")
	ErrInvalidFileFormat    = errors.New("invalid file format")
	ErrCorruptedData        = errors.New("embedded data appears to be corrupted")
	ErrExtractionFailed     = errors.New("failed to extract data - wrong key or parameters")
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// StatusFor classifies err against the sentinel taxonomies of this package
// and of stegerr, returning the HTTP status and machine-readable code a
// handler should report for it. Unrecognized errors map to a generic 500.
func StatusFor(err error) (status int, code string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, ErrInvalidLSB),
		errors.Is(err, ErrInvalidMethod),
		errors.Is(err, ErrInvalidStegoKey),
		errors.Is(err, ErrInvalidFileFormat),
		errors.Is(err, stegerr.ErrUnsupportedMedia),
		errors.Is(err, stegerr.ErrMissingMessage),
		errors.Is(err, stegerr.ErrMissingFiles),
		errors.Is(err, stegerr.ErrInvalidFileName),
		errors.Is(err, stegerr.ErrCarrierNotSet),
		errors.Is(err, stegerr.ErrTargetNotSet):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, ErrInsufficientCapacity):
		return http.StatusBadRequest, "CAPACITY_EXCEEDED"
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"
	case errors.Is(err, ErrInvalidMP3),
		errors.Is(err, stegerr.ErrInvalidAudioMedia),
		errors.Is(err, stegerr.ErrInvalidImageMedia):
		return http.StatusBadRequest, "INVALID_FORMAT"
	case errors.Is(err, ErrInvalidSignature),
		errors.Is(err, ErrCorruptedData),
		errors.Is(err, ErrExtractionFailed),
		errors.Is(err, stegerr.ErrNoSecretData),
		errors.Is(err, stegerr.ErrDecryption):
		return http.StatusUnprocessableEntity, "EXTRACTION_FAILED"
	default:
		var imgCapErr *stegerr.ImageCapacityError
		if errors.As(err, &imgCapErr) {
			return http.StatusBadRequest, "CAPACITY_EXCEEDED"
		}
		var fmtErr *stegerr.UnsupportedMessageFormatError
		if errors.As(err, &fmtErr) {
			return http.StatusBadRequest, "INVALID_FORMAT"
		}
		return http.StatusInternalServerError, "PROCESSING_ERROR"
	}
}
