package orchestrate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nerggg/multi-stegano/media/audio"
	stegimage "github.com/Nerggg/multi-stegano/media/image"
	"github.com/Nerggg/multi-stegano/message"
	"github.com/Nerggg/multi-stegano/payload"
	"github.com/Nerggg/multi-stegano/stegerr"
)

// UnveilRequest is a fluent builder for recovering a Message previously
// hidden by HideRequest. Grounded on api/unveil.rs's UnveilApi.
type UnveilRequest struct {
	secretMedia  string
	outputFolder string
	password     Password
	lsbOptions   stegimage.LSBOptions
	f5Options    stegimage.F5Options
}

// PrepareUnveil starts a new unveil request with the original
// implementation's LSB defaults.
func PrepareUnveil() *UnveilRequest {
	return &UnveilRequest{lsbOptions: stegimage.DefaultLSBOptions()}
}

// FromSecretFile sets the cover file (image or audio) that contains the
// hidden data.
func (r *UnveilRequest) FromSecretFile(path string) *UnveilRequest {
	r.secretMedia = path
	return r
}

// IntoOutputFolder sets the directory recovered files are written into.
func (r *UnveilRequest) IntoOutputFolder(path string) *UnveilRequest {
	r.outputFolder = path
	return r
}

// UsingPassword supplies the password used to decrypt the hidden data, if
// it was encrypted.
func (r *UnveilRequest) UsingPassword(password string) *UnveilRequest {
	r.password = NewPassword(password)
	return r
}

// WithLSBOptions overrides the LSB channel-iteration options used for
// PNG/LSB cover files.
func (r *UnveilRequest) WithLSBOptions(opts stegimage.LSBOptions) *UnveilRequest {
	r.lsbOptions = opts
	return r
}

// WithF5Options overrides the F5 matrix-encoding parameters used for JPEG
// cover files.
func (r *UnveilRequest) WithF5Options(opts stegimage.F5Options) *UnveilRequest {
	r.f5Options = opts
	return r
}

// Execute runs the unveil process, blocking until every recovered file
// (and the hidden text, if any, as secret-message.txt) has been written
// into the output folder.
func (r *UnveilRequest) Execute() error {
	if r.secretMedia == "" {
		return stegerr.ErrCarrierNotSet
	}
	if r.outputFolder == "" {
		return stegerr.ErrTargetNotSet
	}

	factory := payload.CodecFactory(payload.FabA{})
	if pw, ok := r.password.Get(); ok {
		factory = payload.NewFabS(pw)
	}

	raw, err := r.decodeRawMessageBytes()
	if err != nil {
		return err
	}

	msg, err := message.FromRawData(bytes.NewReader(raw), factory)
	if err != nil {
		return err
	}

	files := msg.Files
	if msg.HasText {
		files = append(files, message.NamedFile{Name: "secret-message.txt", Data: []byte(msg.Text)})
	}
	if len(files) == 0 {
		return stegerr.ErrNoSecretData
	}

	for _, f := range files {
		target := filepath.Join(r.outputFolder, filepath.Base(f.Name))
		if err := os.WriteFile(target, f.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// decodeRawMessageBytes pulls the full decoded bit-stream out of the cover
// medium without interpreting it; the caller reads the feature byte and
// framing itself via message.FromRawData.
func (r *UnveilRequest) decodeRawMessageBytes() ([]byte, error) {
	data, err := os.ReadFile(r.secretMedia)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(r.secretMedia))
	switch ext {
	case ".wav":
		wav, err := audio.Parse(data)
		if err != nil {
			return nil, stegerr.ErrInvalidAudioMedia
		}
		decoder := audio.NewLSBDecoder(wav.Samples)
		return readAll(decoder, len(wav.Samples)/8)
	case ".jpg", ".jpeg":
		return stegimage.F5Unveil(data, r.f5Options)
	case ".png", ".gif":
		img, _, err := stdimageDecode(data)
		if err != nil {
			return nil, stegerr.ErrInvalidImageMedia
		}
		nrgba := stegimage.ToNRGBA(img)
		decoder := stegimage.NewLSBDecoder(nrgba, r.lsbOptions)
		return readAll(decoder, stegimage.LSBCapacity(nrgba, r.lsbOptions))
	default:
		return nil, stegerr.ErrUnsupportedMedia
	}
}
