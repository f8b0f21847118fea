package jpeg

import (
	"encoding/binary"
	"fmt"
)

// ZigzagToNatural maps a zigzag-ordered coefficient index to its row-major
// (natural) position within an 8x8 block.
var ZigzagToNatural = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10, 17, 24, 32, 25, 18, 11, 4, 5, 12, 19, 26, 33, 40, 48, 41, 34, 27, 20,
	13, 6, 7, 14, 21, 28, 35, 42, 49, 56, 57, 50, 43, 36, 29, 22, 15, 23, 30, 37, 44, 51, 58, 59,
	52, 45, 38, 31, 39, 46, 53, 60, 61, 54, 47, 55, 62, 63,
}

// NaturalToZigzag is the inverse of ZigzagToNatural.
var NaturalToZigzag = [64]int{
	0, 1, 5, 6, 14, 15, 27, 28, 2, 4, 7, 13, 16, 26, 29, 42, 3, 8, 12, 17, 25, 30, 41, 43, 9, 11,
	18, 24, 31, 40, 44, 53, 10, 19, 23, 32, 39, 45, 52, 54, 20, 22, 33, 38, 46, 51, 55, 60, 21, 34,
	37, 47, 50, 56, 59, 61, 35, 36, 48, 49, 57, 58, 62, 63,
}

// QuantizationTable is an 8x8 quantization table as stored (zigzag order).
type QuantizationTable struct {
	ID        byte
	Precision byte
	Values    [64]uint16
}

// HuffmanTable is a parsed DHT table entry.
type HuffmanTable struct {
	Class       byte // 0 = DC, 1 = AC
	ID          byte
	CodeLengths [16]byte
	Values      []byte
}

// Component describes one color component from SOF/SOS.
type Component struct {
	ID           byte
	HSampling    byte
	VSampling    byte
	QuantTableID byte
	DCTableID    byte
	ACTableID    byte
}

// FrameInfo is the parsed SOF segment.
type FrameInfo struct {
	SOFType    byte
	Precision  byte
	Height     uint16
	Width      uint16
	Components []Component
}

// IsBaseline reports whether this frame uses baseline (SOF0) encoding.
func (f *FrameInfo) IsBaseline() bool { return f.SOFType == 0 }

// IsProgressive reports whether this frame uses progressive (SOF2) encoding.
func (f *FrameInfo) IsProgressive() bool { return f.SOFType == 2 }

// Segment is a raw, still-encoded JPEG segment kept verbatim for lossless
// reconstruction of everything except the entropy-coded scan.
type Segment struct {
	Marker Marker
	Data   []byte
}

// Segments holds everything parsed out of a JPEG file needed to manipulate
// its DCT coefficients and write it back out unchanged elsewhere.
type Segments struct {
	Segments        []Segment
	QuantTables     [4]*QuantizationTable
	DCHuffTables    [4]*HuffmanTable
	ACHuffTables    [4]*HuffmanTable
	Frame           *FrameInfo
	RestartInterval uint16
	ScanData        []byte
	SOSHeader       []byte
}

// Parse reads a complete JPEG file and extracts its segments, tables, frame
// info and raw entropy-coded scan data.
func Parse(data []byte) (*Segments, error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, fmt.Errorf("jpeg: not a JPEG file (missing SOI marker)")
	}

	segs := &Segments{}
	pos := 2

	for {
		marker, newPos, err := readMarker(data, pos)
		if err != nil {
			return nil, err
		}
		pos = newPos

		if marker.IsEOI() {
			break
		}

		if marker.IsSOS() {
			length, err := readLength(data, pos)
			if err != nil {
				return nil, err
			}
			header := data[pos+2 : pos+2+length]
			pos += 2 + length

			if err := parseSOSHeader(header, segs); err != nil {
				return nil, err
			}
			segs.SOSHeader = header

			scanData, _ := readScanData(data, pos)
			segs.ScanData = scanData
			break
		}

		switch {
		case marker.kind == kindDQT:
			length, err := readLength(data, pos)
			if err != nil {
				return nil, err
			}
			payload := data[pos+2 : pos+2+length]
			pos += 2 + length
			if err := parseDQT(payload, segs); err != nil {
				return nil, err
			}
			segs.Segments = append(segs.Segments, Segment{Marker: marker, Data: payload})

		case marker.kind == kindDHT:
			length, err := readLength(data, pos)
			if err != nil {
				return nil, err
			}
			payload := data[pos+2 : pos+2+length]
			pos += 2 + length
			if err := parseDHT(payload, segs); err != nil {
				return nil, err
			}
			segs.Segments = append(segs.Segments, Segment{Marker: marker, Data: payload})

		case marker.kind == kindSOF:
			length, err := readLength(data, pos)
			if err != nil {
				return nil, err
			}
			payload := data[pos+2 : pos+2+length]
			pos += 2 + length
			frame, err := parseSOF(marker.n, payload)
			if err != nil {
				return nil, err
			}
			segs.Frame = frame
			segs.Segments = append(segs.Segments, Segment{Marker: marker, Data: payload})

		case marker.kind == kindDRI:
			length, err := readLength(data, pos)
			if err != nil {
				return nil, err
			}
			payload := data[pos+2 : pos+2+length]
			pos += 2 + length
			if len(payload) >= 2 {
				segs.RestartInterval = binary.BigEndian.Uint16(payload)
			}
			segs.Segments = append(segs.Segments, Segment{Marker: marker, Data: payload})

		case marker.HasLength():
			length, err := readLength(data, pos)
			if err != nil {
				return nil, err
			}
			payload := data[pos+2 : pos+2+length]
			pos += 2 + length
			segs.Segments = append(segs.Segments, Segment{Marker: marker, Data: payload})

		default:
			// Markers without length (RST, etc.) shouldn't appear before SOS.
		}
	}

	return segs, nil
}

func readMarker(data []byte, pos int) (Marker, int, error) {
	for pos < len(data) && data[pos] != 0xFF {
		pos++
	}
	if pos >= len(data) {
		return Marker{}, pos, fmt.Errorf("jpeg: unexpected end of data looking for marker")
	}
	pos++ // consume 0xFF
	for pos < len(data) && data[pos] == 0xFF {
		pos++
	}
	if pos >= len(data) {
		return Marker{}, pos, fmt.Errorf("jpeg: unexpected end of data reading marker byte")
	}
	m, ok := FromByte(data[pos])
	if !ok {
		return Marker{}, pos, fmt.Errorf("jpeg: invalid marker byte 0x%02X", data[pos])
	}
	return m, pos + 1, nil
}

func readLength(data []byte, pos int) (int, error) {
	if pos+2 > len(data) {
		return 0, fmt.Errorf("jpeg: truncated segment length")
	}
	length := int(binary.BigEndian.Uint16(data[pos : pos+2]))
	if length < 2 {
		return 0, fmt.Errorf("jpeg: segment length too small")
	}
	length -= 2
	if pos+2+length > len(data) {
		return 0, fmt.Errorf("jpeg: segment length exceeds available data")
	}
	return length, nil
}

// readScanData copies the entropy-coded scan, preserving byte stuffing and
// restart markers, stopping at EOI or any other non-RST marker.
func readScanData(data []byte, pos int) ([]byte, int) {
	out := make([]byte, 0, len(data)-pos)
	for pos < len(data) {
		b := data[pos]
		pos++
		if b != 0xFF {
			out = append(out, b)
			continue
		}
		out = append(out, 0xFF)
		if pos >= len(data) {
			break
		}
		next := data[pos]
		pos++
		switch {
		case next == 0x00:
			out = append(out, 0x00)
		case next >= 0xD0 && next <= 0xD7:
			out = append(out, next)
		case next == 0xD9: // EOI
			out = out[:len(out)-1]
			return out, pos
		case next == 0xFF:
			pos-- // re-examine this 0xFF as the marker-introducer byte
		default:
			out = out[:len(out)-1]
			return out, pos - 1
		}
	}
	return out, pos
}

func parseDQT(data []byte, segs *Segments) error {
	pos := 0
	for pos < len(data) {
		pqTq := data[pos]
		precision := (pqTq >> 4) & 0x0F
		id := pqTq & 0x0F
		pos++
		if id > 3 {
			return fmt.Errorf("jpeg: invalid quantization table id %d", id)
		}
		var values [64]uint16
		if precision == 0 {
			if pos+64 > len(data) {
				return fmt.Errorf("jpeg: DQT segment too short")
			}
			for i := 0; i < 64; i++ {
				values[i] = uint16(data[pos])
				pos++
			}
		} else {
			if pos+128 > len(data) {
				return fmt.Errorf("jpeg: DQT segment too short")
			}
			for i := 0; i < 64; i++ {
				values[i] = binary.BigEndian.Uint16(data[pos : pos+2])
				pos += 2
			}
		}
		segs.QuantTables[id] = &QuantizationTable{ID: id, Precision: precision, Values: values}
	}
	return nil
}

func parseDHT(data []byte, segs *Segments) error {
	pos := 0
	for pos < len(data) {
		tcTh := data[pos]
		class := (tcTh >> 4) & 0x0F
		id := tcTh & 0x0F
		pos++
		if class > 1 || id > 3 {
			return fmt.Errorf("jpeg: invalid huffman table class=%d id=%d", class, id)
		}
		if pos+16 > len(data) {
			return fmt.Errorf("jpeg: DHT segment too short for code lengths")
		}
		var codeLengths [16]byte
		copy(codeLengths[:], data[pos:pos+16])
		pos += 16

		total := 0
		for _, n := range codeLengths {
			total += int(n)
		}
		if pos+total > len(data) {
			return fmt.Errorf("jpeg: DHT segment too short for values")
		}
		values := append([]byte(nil), data[pos:pos+total]...)
		pos += total

		table := &HuffmanTable{Class: class, ID: id, CodeLengths: codeLengths, Values: values}
		if class == 0 {
			segs.DCHuffTables[id] = table
		} else {
			segs.ACHuffTables[id] = table
		}
	}
	return nil
}

func parseSOF(sofType byte, data []byte) (*FrameInfo, error) {
	if len(data) < 6 {
		return nil, fmt.Errorf("jpeg: SOF segment too short")
	}
	precision := data[0]
	height := binary.BigEndian.Uint16(data[1:3])
	width := binary.BigEndian.Uint16(data[3:5])
	numComponents := int(data[5])
	if len(data) < 6+numComponents*3 {
		return nil, fmt.Errorf("jpeg: SOF segment too short for components")
	}

	components := make([]Component, numComponents)
	for i := 0; i < numComponents; i++ {
		off := 6 + i*3
		sampling := data[off+1]
		components[i] = Component{
			ID:           data[off],
			HSampling:    (sampling >> 4) & 0x0F,
			VSampling:    sampling & 0x0F,
			QuantTableID: data[off+2],
		}
	}

	return &FrameInfo{
		SOFType:    sofType,
		Precision:  precision,
		Height:     height,
		Width:      width,
		Components: components,
	}, nil
}

func parseSOSHeader(data []byte, segs *Segments) error {
	if len(data) == 0 {
		return fmt.Errorf("jpeg: SOS header empty")
	}
	numComponents := int(data[0])
	if len(data) < 1+numComponents*2+3 {
		return fmt.Errorf("jpeg: SOS header too short")
	}
	if segs.Frame == nil {
		return nil
	}
	for i := 0; i < numComponents; i++ {
		off := 1 + i*2
		componentID := data[off]
		tableIDs := data[off+1]
		dc := (tableIDs >> 4) & 0x0F
		ac := tableIDs & 0x0F
		for j := range segs.Frame.Components {
			if segs.Frame.Components[j].ID == componentID {
				segs.Frame.Components[j].DCTableID = dc
				segs.Frame.Components[j].ACTableID = ac
				break
			}
		}
	}
	return nil
}
