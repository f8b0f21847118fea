package jpeg

import "encoding/binary"

// WriteJPEG reconstructs a complete JPEG file: SOI, every non-SOS segment
// exactly as parsed, a rebuilt SOS header, the supplied scan bytes, and EOI.
func WriteJPEG(segs *Segments, newScanData []byte) []byte {
	out := make([]byte, 0, len(newScanData)+256)
	out = append(out, 0xFF, 0xD8) // SOI

	for _, seg := range segs.Segments {
		out = append(out, 0xFF, seg.Marker.ToByte())
		if seg.Marker.HasLength() {
			length := len(seg.Data) + 2
			var lenBuf [2]byte
			binary.BigEndian.PutUint16(lenBuf[:], uint16(length))
			out = append(out, lenBuf[:]...)
		}
		out = append(out, seg.Data...)
	}

	out = append(out, 0xFF, 0xDA) // SOS
	sosHeader := writeSOSHeader(segs)
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(sosHeader)+2))
	out = append(out, lenBuf[:]...)
	out = append(out, sosHeader...)
	out = append(out, newScanData...)

	out = append(out, 0xFF, 0xD9) // EOI
	return out
}

// writeSOSHeader rebuilds the SOS header bytes (component selectors and
// table assignments, plus the fixed spectral-selection/approximation
// trailer) from the current component table IDs.
func writeSOSHeader(segs *Segments) []byte {
	frame := segs.Frame
	header := make([]byte, 0, 1+len(frame.Components)*2+3)
	header = append(header, byte(len(frame.Components)))
	for _, c := range frame.Components {
		header = append(header, c.ID, (c.DCTableID<<4)|c.ACTableID)
	}
	header = append(header, 0x00, 0x3F, 0x00) // Ss, Se, AhAl for baseline
	return header
}
