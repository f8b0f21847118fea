package orchestrate

import (
	"bytes"
	"os"

	"github.com/Nerggg/multi-stegano/message"
	"github.com/Nerggg/multi-stegano/payload"
	"github.com/Nerggg/multi-stegano/stegerr"
)

// UnveilRawRequest recovers the codec's decoded content verbatim, with no
// zip/text interpretation, and writes it to a single destination file.
// Grounded on api/unveil_raw.rs's UnveilRawApi.
type UnveilRawRequest struct {
	inner          UnveilRequest
	destinationSet bool
	destination    string
}

// PrepareUnveilRaw starts a new raw-unveil request with the original
// implementation's LSB defaults.
func PrepareUnveilRaw() *UnveilRawRequest {
	return &UnveilRawRequest{inner: *PrepareUnveil()}
}

// FromSecretFile sets the cover file (image or audio) that contains the
// hidden data.
func (r *UnveilRawRequest) FromSecretFile(path string) *UnveilRawRequest {
	r.inner.FromSecretFile(path)
	return r
}

// IntoRawFile sets the single file the decoded content is written to.
func (r *UnveilRawRequest) IntoRawFile(path string) *UnveilRawRequest {
	r.destination = path
	r.destinationSet = true
	return r
}

// UsingPassword supplies the password used to decrypt the hidden data, if
// it was encrypted.
func (r *UnveilRawRequest) UsingPassword(password string) *UnveilRawRequest {
	r.inner.UsingPassword(password)
	return r
}

// Execute runs the raw unveil process, blocking until the destination file
// has been written.
func (r *UnveilRawRequest) Execute() error {
	if r.inner.secretMedia == "" {
		return stegerr.ErrCarrierNotSet
	}
	if !r.destinationSet {
		return stegerr.ErrTargetNotSet
	}

	factory := payload.CodecFactory(payload.FabA{})
	if pw, ok := r.inner.password.Get(); ok {
		factory = payload.NewFabS(pw)
	}

	raw, err := r.inner.decodeRawMessageBytes()
	if err != nil {
		return err
	}

	rawMsg, err := message.RawMessageFromRawData(bytes.NewReader(raw), factory)
	if err != nil {
		return err
	}

	return os.WriteFile(r.destination, rawMsg.Content, 0o644)
}
