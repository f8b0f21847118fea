package jpeg

import (
	"bytes"
	"testing"
)

func TestWriteJPEGStructure(t *testing.T) {
	segs := buildSingleComponentSegments(1)
	segs.Segments = []Segment{
		{Marker: MarkerDQT, Data: []byte{0x00, 1, 2, 3}},
		{Marker: SOF(0), Data: []byte{8, 0, 8, 0, 8, 1, 1, 0x11, 0}},
		{Marker: MarkerDHT, Data: []byte{0x00, 1, 2, 3}},
	}

	scanData := []byte{0xAB, 0xCD}
	out := WriteJPEG(segs, scanData)

	if out[0] != 0xFF || out[1] != 0xD8 {
		t.Fatalf("output does not start with SOI")
	}
	if out[len(out)-2] != 0xFF || out[len(out)-1] != 0xD9 {
		t.Fatalf("output does not end with EOI")
	}
	if !bytes.Contains(out, scanData) {
		t.Errorf("output does not contain scan data")
	}
	if !bytes.Contains(out, []byte{0xFF, 0xDA}) {
		t.Errorf("output does not contain SOS marker")
	}
}

func dhtPayload(classID byte, lengths [16]byte, values []byte) []byte {
	payload := append([]byte{classID}, lengths[:]...)
	return append(payload, values...)
}

func TestWriteJPEGRoundtrip(t *testing.T) {
	segs := buildSingleComponentSegments(1)

	dcLengths := [16]byte{}
	dcLengths[1] = 2
	dcLengths[2] = 4
	acLengths := [16]byte{}
	acLengths[1] = 2
	acLengths[2] = 1

	segs.Segments = []Segment{
		{Marker: SOF(0), Data: []byte{8, 0, 8, 0, 8, 1, 1, 0x11, 0}},
		{Marker: MarkerDHT, Data: dhtPayload(0x00, dcLengths, []byte{0, 1, 2, 3, 4, 5})},
		{Marker: MarkerDHT, Data: dhtPayload(0x10, acLengths, []byte{0x00, 0x02, 0x12})},
	}

	block := make([]int16, 64)
	block[0] = 4
	original := &ScanCoefficients{Data: block, BlocksPerComponent: []int{1}, TotalBlocks: 1, Width: 8, Height: 8}

	scanData, err := EncodeScan(segs, original)
	if err != nil {
		t.Fatalf("EncodeScan: %v", err)
	}

	file := WriteJPEG(segs, scanData)

	reparsed, err := Parse(file)
	if err != nil {
		t.Fatalf("Parse(WriteJPEG(...)): %v", err)
	}

	decoded, err := DecodeScan(reparsed)
	if err != nil {
		t.Fatalf("DecodeScan: %v", err)
	}

	if decoded.Data[0] != 4 {
		t.Errorf("got DC=%d, want 4", decoded.Data[0])
	}
}
