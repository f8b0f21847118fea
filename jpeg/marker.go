// Package jpeg implements segment-level JPEG parsing and writing sufficient
// to extract, modify, and re-encode baseline Huffman scan data without
// touching any other part of the file byte-for-byte.
package jpeg

// Marker identifies a JPEG segment marker.
type Marker struct {
	kind byte
	n    byte // payload for SOF(n), RST(n), APP(n), JPGn(n)
}

const (
	kindSOF byte = iota
	kindJPG
	kindDHT
	kindDAC
	kindRST
	kindSOI
	kindEOI
	kindSOS
	kindDQT
	kindDNL
	kindDRI
	kindDHP
	kindEXP
	kindAPP
	kindJPGn
	kindCOM
	kindTEM
	kindRES
)

// SOF builds a start-of-frame marker for SOF type n (0 = baseline).
func SOF(n byte) Marker { return Marker{kind: kindSOF, n: n} }

// RST builds a restart marker (0-7).
func RST(n byte) Marker { return Marker{kind: kindRST, n: n} }

// APP builds an application marker (0-15).
func APP(n byte) Marker { return Marker{kind: kindAPP, n: n} }

var (
	MarkerJPG  = Marker{kind: kindJPG}
	MarkerDHT  = Marker{kind: kindDHT}
	MarkerDAC  = Marker{kind: kindDAC}
	MarkerSOI  = Marker{kind: kindSOI}
	MarkerEOI  = Marker{kind: kindEOI}
	MarkerSOS  = Marker{kind: kindSOS}
	MarkerDQT  = Marker{kind: kindDQT}
	MarkerDNL  = Marker{kind: kindDNL}
	MarkerDRI  = Marker{kind: kindDRI}
	MarkerDHP  = Marker{kind: kindDHP}
	MarkerEXP  = Marker{kind: kindEXP}
	MarkerCOM  = Marker{kind: kindCOM}
	MarkerTEM  = Marker{kind: kindTEM}
	MarkerRES  = Marker{kind: kindRES}
)

// IsSOF reports whether m is a start-of-frame marker, and if so, its type.
func (m Marker) IsSOF() (byte, bool) {
	if m.kind == kindSOF {
		return m.n, true
	}
	return 0, false
}

// IsSOS reports whether m is the start-of-scan marker.
func (m Marker) IsSOS() bool { return m.kind == kindSOS }

// IsEOI reports whether m is the end-of-image marker.
func (m Marker) IsEOI() bool { return m.kind == kindEOI }

// FromByte decodes the byte following 0xFF into a Marker, or ok=false if the
// byte does not correspond to any known marker.
func FromByte(b byte) (Marker, bool) {
	switch {
	case b >= 0xC0 && b <= 0xCF && b != 0xC4 && b != 0xC8 && b != 0xCC:
		return Marker{kind: kindSOF, n: b - 0xC0}, true
	case b == 0xC8:
		return MarkerJPG, true
	case b == 0xC4:
		return MarkerDHT, true
	case b == 0xCC:
		return MarkerDAC, true
	case b >= 0xD0 && b <= 0xD7:
		return Marker{kind: kindRST, n: b - 0xD0}, true
	case b == 0xD8:
		return MarkerSOI, true
	case b == 0xD9:
		return MarkerEOI, true
	case b == 0xDA:
		return MarkerSOS, true
	case b == 0xDB:
		return MarkerDQT, true
	case b == 0xDC:
		return MarkerDNL, true
	case b == 0xDD:
		return MarkerDRI, true
	case b == 0xDE:
		return MarkerDHP, true
	case b == 0xDF:
		return MarkerEXP, true
	case b >= 0xE0 && b <= 0xEF:
		return Marker{kind: kindAPP, n: b - 0xE0}, true
	case b >= 0xF0 && b <= 0xFD:
		return Marker{kind: kindJPGn, n: b - 0xF0}, true
	case b == 0xFE:
		return MarkerCOM, true
	case b == 0x01:
		return MarkerTEM, true
	case b == 0x02:
		return MarkerRES, true
	default:
		return Marker{}, false
	}
}

// ToByte encodes m back to the byte that follows 0xFF.
func (m Marker) ToByte() byte {
	switch m.kind {
	case kindSOF:
		return 0xC0 + m.n
	case kindJPG:
		return 0xC8
	case kindDHT:
		return 0xC4
	case kindDAC:
		return 0xCC
	case kindRST:
		return 0xD0 + m.n
	case kindSOI:
		return 0xD8
	case kindEOI:
		return 0xD9
	case kindSOS:
		return 0xDA
	case kindDQT:
		return 0xDB
	case kindDNL:
		return 0xDC
	case kindDRI:
		return 0xDD
	case kindDHP:
		return 0xDE
	case kindEXP:
		return 0xDF
	case kindAPP:
		return 0xE0 + m.n
	case kindJPGn:
		return 0xF0 + m.n
	case kindCOM:
		return 0xFE
	case kindTEM:
		return 0x01
	case kindRES:
		return 0x02
	default:
		return 0
	}
}

// HasLength reports whether this marker's segment carries a 2-byte length
// field. Only RST, SOI, EOI and TEM segments have no payload length.
func (m Marker) HasLength() bool {
	switch m.kind {
	case kindRST, kindSOI, kindEOI, kindTEM:
		return false
	default:
		return true
	}
}
