package audio

import (
	"github.com/Nerggg/multi-stegano/media"
	"github.com/Nerggg/multi-stegano/media/universal"
)

// SampleSource yields a WAV file's samples in order, implementing
// universal.PrimitiveSource — the Go counterpart of AudioWavIter.
type SampleSource struct {
	samples []int16
	i       int
}

// NewSampleSource wraps samples for reading.
func NewSampleSource(samples []int16) *SampleSource {
	return &SampleSource{samples: samples}
}

// Next returns the next sample as a media.Primitive.
func (s *SampleSource) Next() (media.Primitive, bool) {
	if s.i >= len(s.samples) {
		return media.Primitive{}, false
	}
	v := s.samples[s.i]
	s.i++
	return media.AudioSample(v), true
}

// SampleSink yields a WAV file's samples in order for mutation, implementing
// universal.PrimitiveSink — the Go counterpart of AudioWavIterMut.
type SampleSink struct {
	samples []int16
	i       int
}

// NewSampleSink wraps samples for writing.
func NewSampleSink(samples []int16) *SampleSink {
	return &SampleSink{samples: samples}
}

// Next returns the next sample as a media.MutPrimitive.
func (s *SampleSink) Next() (media.MutPrimitive, bool) {
	if s.i >= len(s.samples) {
		return media.MutPrimitive{}, false
	}
	p := &s.samples[s.i]
	s.i++
	return media.MutAudioSample(p), true
}

// NewLSBEncoder returns a universal.Encoder that hides bits into samples'
// least-significant bits in place.
func NewLSBEncoder(samples []int16) *universal.Encoder {
	return universal.NewEncoder(NewSampleSink(samples), universal.OneBitHide{})
}

// NewLSBDecoder returns a universal.Decoder that reads bits back out of
// samples.
func NewLSBDecoder(samples []int16) *universal.Decoder {
	return universal.NewDecoder(NewSampleSource(samples), universal.OneBitUnveil{})
}

// LSBCapacity returns the number of bytes samples can carry.
func LSBCapacity(samples []int16) int {
	return len(samples) / 8
}
