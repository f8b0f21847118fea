package jpeg

import "fmt"

const lutBits = 8
const lutSize = 1 << lutBits

type lutEntry struct {
	symbol byte
	length byte
}

// HuffmanLookup is a compiled Huffman decode table: an 8-bit fast lookup for
// codes up to 8 bits, falling back to a linear scan for longer codes.
type HuffmanLookup struct {
	lut       [lutSize]lutEntry
	codes     []uint16
	codeSizes []byte
	values    []byte
}

// NewHuffmanLookup compiles a decode table from a parsed DHT table.
func NewHuffmanLookup(table *HuffmanTable) (*HuffmanLookup, error) {
	codeSizes, codes, err := deriveHuffmanCodes(table.CodeLengths)
	if err != nil {
		return nil, err
	}

	h := &HuffmanLookup{codes: codes, codeSizes: codeSizes, values: table.Values}
	for idx, code := range codes {
		length := codeSizes[idx]
		if int(length) <= lutBits {
			symbol := h.values[idx]
			shift := lutBits - int(length)
			base := int(code) << shift
			fillCount := 1 << shift
			for k := 0; k < fillCount; k++ {
				h.lut[base+k] = lutEntry{symbol: symbol, length: length}
			}
		}
	}
	return h, nil
}

// HuffmanEncoder is a compiled Huffman encode table: symbol -> (code, len).
type HuffmanEncoder struct {
	encodeMap [256]*struct {
		code   uint16
		length byte
	}
}

// NewHuffmanEncoder compiles an encode table from a parsed DHT table.
func NewHuffmanEncoder(table *HuffmanTable) (*HuffmanEncoder, error) {
	codeSizes, codes, err := deriveHuffmanCodes(table.CodeLengths)
	if err != nil {
		return nil, err
	}
	e := &HuffmanEncoder{}
	for idx, code := range codes {
		symbol := table.Values[idx]
		e.encodeMap[symbol] = &struct {
			code   uint16
			length byte
		}{code: code, length: codeSizes[idx]}
	}
	return e, nil
}

// Encode returns the (code, length) pair for symbol, or ok=false if the
// symbol is not present in this table.
func (e *HuffmanEncoder) Encode(symbol byte) (uint16, byte, bool) {
	entry := e.encodeMap[symbol]
	if entry == nil {
		return 0, 0, false
	}
	return entry.code, entry.length, true
}

// deriveHuffmanCodes implements the canonical-Huffman code assignment of
// JPEG spec Figure C.1/C.2.
func deriveHuffmanCodes(codeLengths [16]byte) ([]byte, []uint16, error) {
	total := 0
	for _, n := range codeLengths {
		total += int(n)
	}
	if total > 256 {
		return nil, nil, fmt.Errorf("jpeg: huffman table has more than 256 symbols")
	}

	huffsize := make([]byte, 0, total)
	for length, count := range codeLengths {
		for i := byte(0); i < count; i++ {
			huffsize = append(huffsize, byte(length+1))
		}
	}

	huffcode := make([]uint16, 0, total)
	var code uint32
	var si byte
	if len(huffsize) > 0 {
		si = huffsize[0]
	}

	for _, size := range huffsize {
		for si < size {
			code <<= 1
			si++
		}
		if code >= 1<<size {
			return nil, nil, fmt.Errorf("jpeg: invalid huffman code (overflow)")
		}
		huffcode = append(huffcode, uint16(code))
		code++
	}

	return huffsize, huffcode, nil
}

// BitReader reads entropy-coded scan data bit by bit, transparently
// de-stuffing 0xFF 0x00 and skipping restart markers.
type BitReader struct {
	data    []byte
	pos     int
	bits    uint32
	numBits byte
}

// NewBitReader wraps raw (still byte-stuffed) scan data.
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

func (r *BitReader) fillBits() {
	for r.numBits <= 24 && r.pos < len(r.data) {
		b := r.data[r.pos]
		r.pos++
		if b == 0xFF {
			if r.pos < len(r.data) {
				next := r.data[r.pos]
				switch {
				case next == 0x00:
					r.pos++
					r.bits = (r.bits << 8) | 0xFF
					r.numBits += 8
				case next >= 0xD0 && next <= 0xD7:
					r.pos++
				default:
					r.pos = len(r.data)
					return
				}
			}
		} else {
			r.bits = (r.bits << 8) | uint32(b)
			r.numBits += 8
		}
	}
}

// PeekBits returns the next count bits without consuming them.
func (r *BitReader) PeekBits(count byte) (uint16, error) {
	for r.numBits < count {
		prev := r.numBits
		r.fillBits()
		if r.numBits == prev {
			return 0, fmt.Errorf("jpeg: unexpected end of data: need %d bits, have %d", count, r.numBits)
		}
	}
	shift := r.numBits - count
	mask := uint32(1)<<count - 1
	return uint16((r.bits >> shift) & mask), nil
}

// ConsumeBits discards count already-peeked bits.
func (r *BitReader) ConsumeBits(count byte) {
	r.numBits -= count
}

// ReadBits reads and consumes count bits.
func (r *BitReader) ReadBits(count byte) (uint16, error) {
	v, err := r.PeekBits(count)
	if err != nil {
		return 0, err
	}
	r.ConsumeBits(count)
	return v, nil
}

// DecodeHuffman decodes one symbol using table.
func (r *BitReader) DecodeHuffman(table *HuffmanLookup) (byte, error) {
	r.fillBits()

	if r.numBits >= lutBits {
		peek, err := r.PeekBits(lutBits)
		if err != nil {
			return 0, err
		}
		entry := table.lut[peek]
		if entry.length > 0 {
			r.ConsumeBits(entry.length)
			return entry.symbol, nil
		}
		for idx, code := range table.codes {
			length := table.codeSizes[idx]
			if int(length) > lutBits {
				peekCode, err := r.PeekBits(length)
				if err != nil {
					return 0, err
				}
				if peekCode == code {
					r.ConsumeBits(length)
					return table.values[idx], nil
				}
			}
		}
	} else if r.numBits > 0 {
		available := r.numBits
		peek, err := r.PeekBits(available)
		if err != nil {
			return 0, err
		}
		padded := (int(peek) << (lutBits - int(available))) | ((1 << (lutBits - int(available))) - 1)
		entry := table.lut[padded]
		if entry.length > 0 && entry.length <= available {
			r.ConsumeBits(entry.length)
			return entry.symbol, nil
		}
		for idx, code := range table.codes {
			length := table.codeSizes[idx]
			if length <= available {
				peekCode, err := r.PeekBits(length)
				if err != nil {
					return 0, err
				}
				if peekCode == code {
					r.ConsumeBits(length)
					return table.values[idx], nil
				}
			}
		}
	}

	return 0, fmt.Errorf("jpeg: invalid huffman code (bits available: %d)", r.numBits)
}

// ReceiveExtend reads size bits and sign-extends per JPEG spec Figure F.12.
func (r *BitReader) ReceiveExtend(size byte) (int16, error) {
	if size == 0 {
		return 0, nil
	}
	value, err := r.ReadBits(size)
	if err != nil {
		return 0, err
	}
	v := int16(value)
	vt := int16(1) << (size - 1)
	if v < vt {
		return v + (int16(-1) << size) + 1, nil
	}
	return v, nil
}

// BitWriter writes entropy-coded scan data bit by bit, byte-stuffing 0xFF
// bytes and padding the final byte with 1 bits (JPEG convention).
type BitWriter struct {
	data    []byte
	bits    uint32
	numBits byte
}

// NewBitWriter returns an empty BitWriter.
func NewBitWriter() *BitWriter { return &BitWriter{} }

// WriteBits appends the low count bits of value, MSB first.
func (w *BitWriter) WriteBits(value uint16, count byte) {
	w.bits = (w.bits << count) | uint32(value)
	w.numBits += count

	for w.numBits >= 8 {
		w.numBits -= 8
		b := byte(w.bits >> w.numBits)
		w.writeByte(b)
	}
	w.bits &= uint32(1)<<w.numBits - 1
}

// WriteHuffman encodes symbol via table and appends its bits.
func (w *BitWriter) WriteHuffman(symbol byte, table *HuffmanEncoder) error {
	code, length, ok := table.Encode(symbol)
	if !ok {
		return fmt.Errorf("jpeg: symbol %d not in huffman table", symbol)
	}
	w.WriteBits(code, length)
	return nil
}

func (w *BitWriter) writeByte(b byte) {
	w.data = append(w.data, b)
	if b == 0xFF {
		w.data = append(w.data, 0x00)
	}
}

// Flush pads any partial byte with 1 bits and appends it.
func (w *BitWriter) Flush() {
	if w.numBits > 0 {
		padding := 8 - w.numBits
		value := (w.bits << padding) | (uint32(1)<<padding - 1)
		w.writeByte(byte(value))
		w.numBits = 0
		w.bits = 0
	}
}

// Bytes flushes and returns the written data.
func (w *BitWriter) Bytes() []byte {
	w.Flush()
	return w.data
}

// EncodeCoefficient returns the (size, bits) pair JPEG uses to represent
// value: size is the bit-length category, bits is the magnitude/complement
// payload written after the Huffman-coded size.
func EncodeCoefficient(value int16) (byte, uint16) {
	if value == 0 {
		return 0, 0
	}
	absValue := value
	if absValue < 0 {
		absValue = -absValue
	}
	size := byte(16 - leadingZeros16(uint16(absValue)))

	var bits uint16
	if value < 0 {
		bits = (uint16(1)<<size - 1) - uint16(absValue)
	} else {
		bits = uint16(absValue)
	}
	return size, bits
}

func leadingZeros16(v uint16) byte {
	if v == 0 {
		return 16
	}
	var n byte
	for v&0x8000 == 0 {
		v <<= 1
		n++
	}
	return n
}
