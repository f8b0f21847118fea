package jpeg

import "fmt"

// ScanCoefficients holds every quantized DCT coefficient of a decoded scan,
// laid out as consecutive 64-element blocks in the order the scan's MCUs
// were decoded (block order, not pixel order).
type ScanCoefficients struct {
	Data              []int16
	BlocksPerComponent []int
	TotalBlocks       int
	Width             uint16
	Height            uint16
}

// Block returns the 64-coefficient slice for block i, in zigzag storage
// order (as decoded).
func (s *ScanCoefficients) Block(i int) []int16 {
	return s.Data[i*64 : i*64+64]
}

// mcuInfo captures the per-MCU geometry derived from a frame's sampling
// factors, used to walk blocks in the order the baseline scan stores them.
type mcuInfo struct {
	hMax, vMax       int
	mcuWidth         int
	mcuHeight        int
	mcuCols, mcuRows int
	totalMCUs        int
	blocksPerMCU     []int
	blocksPerComp    []int
}

func calculateMCUInfo(frame *FrameInfo) mcuInfo {
	hMax, vMax := 1, 1
	for _, c := range frame.Components {
		if int(c.HSampling) > hMax {
			hMax = int(c.HSampling)
		}
		if int(c.VSampling) > vMax {
			vMax = int(c.VSampling)
		}
	}

	mcuWidth := hMax * 8
	mcuHeight := vMax * 8
	mcuCols := (int(frame.Width) + mcuWidth - 1) / mcuWidth
	mcuRows := (int(frame.Height) + mcuHeight - 1) / mcuHeight
	totalMCUs := mcuCols * mcuRows

	blocksPerMCU := make([]int, len(frame.Components))
	blocksPerComp := make([]int, len(frame.Components))
	for i, c := range frame.Components {
		blocksPerMCU[i] = int(c.HSampling) * int(c.VSampling)
		blocksPerComp[i] = blocksPerMCU[i] * totalMCUs
	}

	return mcuInfo{
		hMax: hMax, vMax: vMax,
		mcuWidth: mcuWidth, mcuHeight: mcuHeight,
		mcuCols: mcuCols, mcuRows: mcuRows, totalMCUs: totalMCUs,
		blocksPerMCU: blocksPerMCU, blocksPerComp: blocksPerComp,
	}
}

// DecodeScan decodes the entropy-coded scan of a baseline JPEG into
// per-block coefficients. Progressive JPEGs are rejected since F5 matrix
// encoding operates on fully-decoded single-scan coefficients.
func DecodeScan(segs *Segments) (*ScanCoefficients, error) {
	if segs.Frame == nil {
		return nil, fmt.Errorf("jpeg: missing SOF segment")
	}
	if segs.Frame.IsProgressive() {
		return nil, fmt.Errorf("jpeg: progressive JPEG is not supported")
	}
	return decodeScanBaseline(segs)
}

// EncodeScan re-encodes coefficients back into entropy-coded scan bytes
// using the same Huffman tables and component layout as the original scan.
func EncodeScan(segs *Segments, coeffs *ScanCoefficients) ([]byte, error) {
	if segs.Frame == nil {
		return nil, fmt.Errorf("jpeg: missing SOF segment")
	}
	if segs.Frame.IsProgressive() {
		return nil, fmt.Errorf("jpeg: progressive JPEG is not supported")
	}
	return encodeScanBaseline(segs, coeffs)
}
