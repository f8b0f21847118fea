// Package audio adapts raw PCM WAV data into the universal bit-transport
// layer. No third-party WAV parsing library appears anywhere in the
// example pack (the teacher itself only carries an MP3 decoder, go-mp3, for
// a wholly different container format) so this package parses the RIFF/WAVE
// container directly — see DESIGN.md.
package audio

import (
	"encoding/binary"
	"fmt"
)

// Format describes the subset of a WAV file's fmt chunk this package cares
// about: PCM, mono or multi-channel, 16 bits per sample.
type Format struct {
	NumChannels   uint16
	SampleRate    uint32
	BitsPerSample uint16
}

// File is a parsed WAV file: its format plus every 16-bit PCM sample in
// interleaved channel order.
type File struct {
	Format  Format
	Samples []int16
}

// Parse reads a PCM WAV file's RIFF container, returning its format and
// sample data. Only 16-bit PCM (format tag 1) is supported.
func Parse(data []byte) (*File, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("audio: not a RIFF/WAVE file")
	}

	var format Format
	var formatSeen bool
	var samples []int16

	pos := 12
	for pos+8 <= len(data) {
		chunkID := string(data[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+chunkSize > len(data) {
			chunkSize = len(data) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("audio: fmt chunk too short")
			}
			tag := binary.LittleEndian.Uint16(data[body : body+2])
			if tag != 1 {
				return nil, fmt.Errorf("audio: unsupported WAV format tag %d (only PCM is supported)", tag)
			}
			format.NumChannels = binary.LittleEndian.Uint16(data[body+2 : body+4])
			format.SampleRate = binary.LittleEndian.Uint32(data[body+4 : body+8])
			format.BitsPerSample = binary.LittleEndian.Uint16(data[body+14 : body+16])
			if format.BitsPerSample != 16 {
				return nil, fmt.Errorf("audio: unsupported bit depth %d (only 16-bit PCM is supported)", format.BitsPerSample)
			}
			formatSeen = true

		case "data":
			if !formatSeen {
				return nil, fmt.Errorf("audio: data chunk seen before fmt chunk")
			}
			samples = make([]int16, chunkSize/2)
			for i := range samples {
				samples[i] = int16(binary.LittleEndian.Uint16(data[body+i*2 : body+i*2+2]))
			}
		}

		pos = body + chunkSize
		if chunkSize%2 == 1 {
			pos++ // chunks are word-aligned
		}
	}

	if !formatSeen {
		return nil, fmt.Errorf("audio: missing fmt chunk")
	}
	return &File{Format: format, Samples: samples}, nil
}

// Encode writes f back out as a canonical 44-byte-header PCM WAV file.
func Encode(f *File) []byte {
	dataSize := len(f.Samples) * 2
	blockAlign := f.Format.NumChannels * (f.Format.BitsPerSample / 8)
	byteRate := f.Format.SampleRate * uint32(blockAlign)

	out := make([]byte, 44+dataSize)
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+dataSize))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:24], f.Format.NumChannels)
	binary.LittleEndian.PutUint32(out[24:28], f.Format.SampleRate)
	binary.LittleEndian.PutUint32(out[28:32], byteRate)
	binary.LittleEndian.PutUint16(out[32:34], blockAlign)
	binary.LittleEndian.PutUint16(out[34:36], f.Format.BitsPerSample)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataSize))
	for i, s := range f.Samples {
		binary.LittleEndian.PutUint16(out[44+i*2:44+i*2+2], uint16(s))
	}
	return out
}
