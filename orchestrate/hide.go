package orchestrate

import (
	"bytes"
	"errors"
	stdimage "image"
	stdjpeg "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nerggg/multi-stegano/media/audio"
	"github.com/Nerggg/multi-stegano/media/cover"
	stegimage "github.com/Nerggg/multi-stegano/media/image"
	"github.com/Nerggg/multi-stegano/message"
	"github.com/Nerggg/multi-stegano/payload"
	"github.com/Nerggg/multi-stegano/stegerr"
)

// HideRequest is a fluent builder for a single hide operation: embed a
// message and/or files into a cover image or audio file, writing the
// result to an output path. Grounded on api/hide.rs's HideApi.
type HideRequest struct {
	message     string
	hasMessage  bool
	files       []string
	image       string
	output      string
	password    Password
	lsbOptions  stegimage.LSBOptions
	hasLSBStep  bool
	f5Options   stegimage.F5Options
}

// PrepareHide starts a new hide request with the original implementation's
// LSB defaults.
func PrepareHide() *HideRequest {
	return &HideRequest{lsbOptions: stegimage.DefaultLSBOptions()}
}

// WithMessage sets the text that will be hidden.
func (r *HideRequest) WithMessage(msg string) *HideRequest {
	r.message = msg
	r.hasMessage = true
	return r
}

// WithFile adds one file to the set of files to hide.
func (r *HideRequest) WithFile(path string) *HideRequest {
	r.files = append(r.files, path)
	return r
}

// WithFiles replaces the set of files to hide.
func (r *HideRequest) WithFiles(paths []string) *HideRequest {
	r.files = paths
	return r
}

// WithImage sets the carrier image or audio file to hide data into.
func (r *HideRequest) WithImage(path string) *HideRequest {
	r.image = path
	return r
}

// WithOutput sets the path the resulting cover file is written to.
func (r *HideRequest) WithOutput(path string) *HideRequest {
	r.output = path
	return r
}

// UsingPassword enables encryption for everything this request hides.
func (r *HideRequest) UsingPassword(password string) *HideRequest {
	r.password = NewPassword(password)
	return r
}

// WithColorStepIncrement sets the LSB color-channel step increment. Only
// applies to PNG/LSB output; ignored for JPEG/F5 output.
func (r *HideRequest) WithColorStepIncrement(step int) *HideRequest {
	r.lsbOptions.ColorChannelStepIncrement = step
	r.hasLSBStep = true
	return r
}

// WithF5Options overrides the F5 matrix-encoding parameters used when the
// output path is a JPEG.
func (r *HideRequest) WithF5Options(opts stegimage.F5Options) *HideRequest {
	r.f5Options = opts
	return r
}

func (r *HideRequest) validate() error {
	if !r.hasMessage && r.files == nil {
		return stegerr.ErrMissingMessage
	}
	return nil
}

// Execute runs the hide operation, blocking until the output file has been
// written.
func (r *HideRequest) Execute() error {
	if err := r.validate(); err != nil {
		return err
	}
	if r.image == "" {
		return stegerr.ErrCarrierNotSet
	}
	if r.output == "" {
		return stegerr.ErrTargetNotSet
	}

	msg := message.Empty()
	if r.hasMessage {
		msg.AddFile("secret-message.txt", []byte(r.message))
	}
	for _, f := range r.files {
		data, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		msg.AddFile(filepath.Base(f), data)
	}

	factory := payload.CodecFactory(payload.FabA{})
	if pw, ok := r.password.Get(); ok {
		factory = payload.NewFabS(pw)
	}

	raw, err := message.ToRawData(msg, factory)
	if err != nil {
		return err
	}

	carrierData, err := os.ReadFile(r.image)
	if err != nil {
		return err
	}

	outData, err := r.hideIntoCarrier(carrierData, raw)
	if err != nil {
		return err
	}

	return os.WriteFile(r.output, outData, 0o644)
}

func (r *HideRequest) hideIntoCarrier(carrierData, msgData []byte) ([]byte, error) {
	inExt := strings.ToLower(filepath.Ext(r.image))
	outExt := strings.ToLower(filepath.Ext(r.output))

	switch inExt {
	case ".wav":
		return hideIntoAudio(carrierData, msgData)
	case ".png", ".jpg", ".jpeg", ".gif":
		return r.hideIntoImage(carrierData, inExt, outExt, msgData)
	default:
		return nil, stegerr.ErrUnsupportedMedia
	}
}

func hideIntoAudio(carrierData, msgData []byte) ([]byte, error) {
	wav, err := audio.Parse(carrierData)
	if err != nil {
		return nil, stegerr.ErrInvalidAudioMedia
	}

	encoder := audio.NewLSBEncoder(wav.Samples)
	if _, err := encoder.Write(msgData); err != nil {
		return nil, errors.New("orchestrate: audio encoding failed: " + err.Error())
	}
	return audio.Encode(wav), nil
}

func (r *HideRequest) hideIntoImage(carrierData []byte, inExt, outExt string, msgData []byte) ([]byte, error) {
	decoded, _, err := stdimage.Decode(bytes.NewReader(carrierData))
	if err != nil {
		return nil, stegerr.ErrInvalidImageMedia
	}
	nrgba := stegimage.ToNRGBA(decoded)

	wantsJPEGOutput := outExt == ".jpg" || outExt == ".jpeg"
	if wantsJPEGOutput {
		jpegData := carrierData
		if inExt != ".jpg" && inExt != ".jpeg" {
			var buf bytes.Buffer
			if err := stdjpeg.Encode(&buf, nrgba, nil); err != nil {
				return nil, err
			}
			jpegData = buf.Bytes()
		}
		out, err := stegimage.F5Hide(jpegData, msgData, r.f5Options)
		if err != nil {
			return nil, translateF5HideError(err, nrgba, msgData)
		}
		return out, nil
	}

	encoder := stegimage.NewLSBEncoder(nrgba, r.lsbOptions)
	if _, err := encoder.Write(msgData); err != nil {
		return nil, capacityError(nrgba, msgData)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, nrgba); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func translateF5HideError(err error, nrgba *stdimage.NRGBA, msgData []byte) error {
	return capacityError(nrgba, msgData)
}

// capacityError reports a cover image's shortfall the way the original's
// ImageCapacityError does: estimated_needed_dimensions = msg_len*8/3
// color-channel primitives.
func capacityError(nrgba *stdimage.NRGBA, msgData []byte) error {
	bounds := nrgba.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	estW, estH := cover.EstimateNeededDimensions(width, height, len(msgData))
	return &stegerr.ImageCapacityError{
		Width: width, Height: height,
		EstimatedWidth: estW, EstimatedHeight: estH,
	}
}
