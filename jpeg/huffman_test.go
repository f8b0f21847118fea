package jpeg

import "testing"

func TestReceiveExtend(t *testing.T) {
	cases := []struct {
		size  byte
		value uint16
		want  int16
	}{
		{0, 0, 0},
		{1, 0, -1},
		{1, 1, 1},
		{2, 0, -3},
		{2, 3, 3},
		{3, 0, -7},
		{3, 7, 7},
	}
	for _, c := range cases {
		r := &BitReader{bits: uint32(c.value), numBits: c.size}
		got, err := r.ReceiveExtend(c.size)
		if err != nil {
			t.Fatalf("ReceiveExtend(%d, %d): %v", c.size, c.value, err)
		}
		if got != c.want {
			t.Errorf("ReceiveExtend(size=%d, value=%d) = %d, want %d", c.size, c.value, got, c.want)
		}
	}
}

func TestEncodeCoefficient(t *testing.T) {
	cases := []struct {
		value    int16
		wantSize byte
		wantBits uint16
	}{
		{0, 0, 0},
		{1, 1, 1},
		{-1, 1, 0},
		{3, 2, 3},
		{-3, 2, 0},
		{4, 3, 4},
		{-4, 3, 3},
	}
	for _, c := range cases {
		size, bits := EncodeCoefficient(c.value)
		if size != c.wantSize || bits != c.wantBits {
			t.Errorf("EncodeCoefficient(%d) = (%d, %d), want (%d, %d)", c.value, size, bits, c.wantSize, c.wantBits)
		}
	}
}

func TestEncodeCoefficientInverseOfReceiveExtend(t *testing.T) {
	for v := int16(-255); v <= 255; v++ {
		size, bits := EncodeCoefficient(v)
		r := &BitReader{bits: uint32(bits), numBits: size}
		got, err := r.ReceiveExtend(size)
		if err != nil {
			t.Fatalf("ReceiveExtend round-trip for %d: %v", v, err)
		}
		if got != v {
			t.Errorf("round-trip %d -> size=%d bits=%d -> %d", v, size, bits, got)
		}
	}
}

func simpleDCTable() *HuffmanTable {
	// A small DC-style table with five symbols (two 2-bit codes and three
	// 3-bit codes), enough for test coverage.
	lengths := [16]byte{}
	lengths[1] = 2 // two 2-bit codes
	lengths[2] = 3 // three 3-bit codes
	return &HuffmanTable{Class: 0, ID: 0, CodeLengths: lengths, Values: []byte{0, 1, 2, 3, 4}}
}

func TestHuffmanEncodeDecodeRoundtrip(t *testing.T) {
	table := simpleDCTable()
	enc, err := NewHuffmanEncoder(table)
	if err != nil {
		t.Fatalf("NewHuffmanEncoder: %v", err)
	}
	lut, err := NewHuffmanLookup(table)
	if err != nil {
		t.Fatalf("NewHuffmanLookup: %v", err)
	}

	writer := NewBitWriter()
	symbols := []byte{0, 1, 2, 3, 4, 0, 2}
	for _, s := range symbols {
		if err := writer.WriteHuffman(s, enc); err != nil {
			t.Fatalf("WriteHuffman(%d): %v", s, err)
		}
	}
	data := writer.Bytes()

	reader := NewBitReader(data)
	for i, want := range symbols {
		got, err := reader.DecodeHuffman(lut)
		if err != nil {
			t.Fatalf("DecodeHuffman at %d: %v", i, err)
		}
		if got != want {
			t.Errorf("symbol %d: got %d, want %d", i, got, want)
		}
	}
}

func TestBitWriterPadding(t *testing.T) {
	w := NewBitWriter()
	w.WriteBits(0b101, 3)
	data := w.Bytes()
	if len(data) != 1 {
		t.Fatalf("expected 1 byte, got %d", len(data))
	}
	// 3 data bits followed by 5 padding 1-bits: 101 11111 = 0xBF
	if data[0] != 0xBF {
		t.Errorf("got 0x%02X, want 0xBF", data[0])
	}
}

func TestBitWriterByteStuffing(t *testing.T) {
	w := NewBitWriter()
	w.WriteBits(0xFF, 8)
	data := w.Bytes()
	if len(data) != 2 || data[0] != 0xFF || data[1] != 0x00 {
		t.Errorf("got %x, want [ff 00]", data)
	}
}

func TestBitReaderDestuffing(t *testing.T) {
	r := NewBitReader([]byte{0xFF, 0x00, 0xAB})
	v, err := r.ReadBits(16)
	if err != nil {
		t.Fatalf("ReadBits: %v", err)
	}
	if v != 0xFFAB {
		t.Errorf("got 0x%04X, want 0xFFAB", v)
	}
}

func TestBitReaderSkipsRestartMarkers(t *testing.T) {
	r := NewBitReader([]byte{0xAB, 0xFF, 0xD0, 0xCD})
	v, err := r.ReadBits(16)
	if err != nil {
		t.Fatalf("ReadBits: %v", err)
	}
	if v != 0xABCD {
		t.Errorf("got 0x%04X, want 0xABCD (restart marker should be skipped)", v)
	}
}
