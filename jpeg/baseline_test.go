package jpeg

import (
	"reflect"
	"testing"
)

func dcTableForTest() *HuffmanTable {
	lengths := [16]byte{}
	lengths[1] = 2
	lengths[2] = 4
	return &HuffmanTable{Class: 0, ID: 0, CodeLengths: lengths, Values: []byte{0, 1, 2, 3, 4, 5}}
}

func acTableForTest() *HuffmanTable {
	lengths := [16]byte{}
	lengths[1] = 2
	lengths[2] = 1
	// 0x00 = EOB, 0x02 = run 0 size 2, 0x12 = run 1 size 2.
	return &HuffmanTable{Class: 1, ID: 0, CodeLengths: lengths, Values: []byte{0x00, 0x02, 0x12}}
}

func buildSingleComponentSegments(blockCount int) *Segments {
	segs := &Segments{}
	segs.DCHuffTables[0] = dcTableForTest()
	segs.ACHuffTables[0] = acTableForTest()
	segs.Frame = &FrameInfo{
		SOFType:   0,
		Precision: 8,
		Height:    uint16(8 * blockCount),
		Width:     8,
		Components: []Component{
			{ID: 1, HSampling: 1, VSampling: 1, QuantTableID: 0, DCTableID: 0, ACTableID: 0},
		},
	}
	return segs
}

func TestEncodeDecodeScanRoundtrip(t *testing.T) {
	segs := buildSingleComponentSegments(1)

	block := make([]int16, 64)
	block[0] = 5  // DC
	block[1] = 3  // AC, run 0 size 2
	block[3] = -2 // AC, run 1 size 2

	original := &ScanCoefficients{
		Data:               append([]int16(nil), block...),
		BlocksPerComponent: []int{1},
		TotalBlocks:        1,
		Width:              8,
		Height:             8,
	}

	encoded, err := encodeScanBaseline(segs, original)
	if err != nil {
		t.Fatalf("encodeScanBaseline: %v", err)
	}

	segs.ScanData = encoded
	decoded, err := decodeScanBaseline(segs)
	if err != nil {
		t.Fatalf("decodeScanBaseline: %v", err)
	}

	if !reflect.DeepEqual(decoded.Data, original.Data) {
		t.Errorf("roundtrip mismatch:\n got  %v\n want %v", decoded.Data, original.Data)
	}
}

func TestEncodeDecodeScanDCPrediction(t *testing.T) {
	segs := buildSingleComponentSegments(2)
	segs.Frame.Width = 8
	segs.Frame.Height = 16

	data := make([]int16, 128)
	data[0] = 5  // block 0 DC
	data[64] = 2 // block 1 DC (diff against predictor = 5 -> diff -3, size2)

	original := &ScanCoefficients{
		Data:               append([]int16(nil), data...),
		BlocksPerComponent: []int{2},
		TotalBlocks:        2,
		Width:              8,
		Height:             16,
	}

	// This test's MCU geometry assumes a single component spanning two
	// vertically-stacked 8x8 blocks, which calculateMCUInfo treats as two
	// separate MCUs (one block per MCU) since sampling factors are 1x1.
	encoded, err := encodeScanBaseline(segs, original)
	if err != nil {
		t.Fatalf("encodeScanBaseline: %v", err)
	}

	segs.ScanData = encoded
	decoded, err := decodeScanBaseline(segs)
	if err != nil {
		t.Fatalf("decodeScanBaseline: %v", err)
	}

	if decoded.Data[0] != 5 || decoded.Data[64] != 2 {
		t.Errorf("DC prediction roundtrip: got block0 DC=%d block1 DC=%d, want 5, 2", decoded.Data[0], decoded.Data[64])
	}
}

func TestDecodeScanRejectsProgressive(t *testing.T) {
	segs := buildSingleComponentSegments(1)
	segs.Frame.SOFType = 2
	segs.ScanData = []byte{0xFF}

	_, err := DecodeScan(segs)
	if err == nil {
		t.Fatal("expected error for progressive JPEG")
	}
}
