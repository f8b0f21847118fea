package jpeg

import "fmt"

func buildLookups(segs *Segments) (dc [4]*HuffmanLookup, ac [4]*HuffmanLookup, err error) {
	for i := 0; i < 4; i++ {
		if segs.DCHuffTables[i] != nil {
			dc[i], err = NewHuffmanLookup(segs.DCHuffTables[i])
			if err != nil {
				return
			}
		}
		if segs.ACHuffTables[i] != nil {
			ac[i], err = NewHuffmanLookup(segs.ACHuffTables[i])
			if err != nil {
				return
			}
		}
	}
	return
}

func buildEncoders(segs *Segments) (dc [4]*HuffmanEncoder, ac [4]*HuffmanEncoder, err error) {
	for i := 0; i < 4; i++ {
		if segs.DCHuffTables[i] != nil {
			dc[i], err = NewHuffmanEncoder(segs.DCHuffTables[i])
			if err != nil {
				return
			}
		}
		if segs.ACHuffTables[i] != nil {
			ac[i], err = NewHuffmanEncoder(segs.ACHuffTables[i])
			if err != nil {
				return
			}
		}
	}
	return
}

func decodeScanBaseline(segs *Segments) (*ScanCoefficients, error) {
	dcLookups, acLookups, err := buildLookups(segs)
	if err != nil {
		return nil, err
	}

	info := calculateMCUInfo(segs.Frame)
	totalBlocks := 0
	for _, n := range info.blocksPerComp {
		totalBlocks += n
	}

	data := make([]int16, totalBlocks*64)
	reader := NewBitReader(segs.ScanData)
	dcPredictors := make([]int16, len(segs.Frame.Components))

	blockIdx := 0
	restartCount := 0

	for mcu := 0; mcu < info.totalMCUs; mcu++ {
		if segs.RestartInterval > 0 && restartCount == int(segs.RestartInterval) {
			for i := range dcPredictors {
				dcPredictors[i] = 0
			}
			restartCount = 0
		}

		for ci, comp := range segs.Frame.Components {
			blocksThisComponent := int(comp.HSampling) * int(comp.VSampling)
			for b := 0; b < blocksThisComponent; b++ {
				if blockIdx >= totalBlocks {
					break
				}
				block := data[blockIdx*64 : blockIdx*64+64]
				if err := decodeBlock(reader, block, dcLookups[comp.DCTableID], acLookups[comp.ACTableID], &dcPredictors[ci]); err != nil {
					return nil, err
				}
				blockIdx++
			}
		}
		restartCount++
	}

	return &ScanCoefficients{
		Data:               data,
		BlocksPerComponent: info.blocksPerComp,
		TotalBlocks:        totalBlocks,
		Width:              segs.Frame.Width,
		Height:             segs.Frame.Height,
	}, nil
}

func decodeBlock(r *BitReader, block []int16, dcTable, acTable *HuffmanLookup, dcPredictor *int16) error {
	for i := range block {
		block[i] = 0
	}

	dcSize, err := r.DecodeHuffman(dcTable)
	if err != nil {
		return err
	}
	if dcSize > 11 {
		return fmt.Errorf("jpeg: invalid DC size %d", dcSize)
	}
	diff, err := r.ReceiveExtend(dcSize)
	if err != nil {
		return err
	}
	*dcPredictor += diff
	block[0] = *dcPredictor

	k := 1
	for k < 64 {
		symbol, err := r.DecodeHuffman(acTable)
		if err != nil {
			return err
		}
		run := symbol >> 4
		size := symbol & 0xF

		if size == 0 {
			if run == 0 {
				break // EOB
			}
			if run == 0xF {
				k += 16 // ZRL
				continue
			}
		}

		k += int(run)
		if k >= 64 {
			return fmt.Errorf("jpeg: AC coefficient index out of range")
		}
		value, err := r.ReceiveExtend(size)
		if err != nil {
			return err
		}
		block[k] = value
		k++
	}

	return nil
}

func encodeScanBaseline(segs *Segments, coeffs *ScanCoefficients) ([]byte, error) {
	dcEncoders, acEncoders, err := buildEncoders(segs)
	if err != nil {
		return nil, err
	}

	info := calculateMCUInfo(segs.Frame)
	writer := NewBitWriter()
	dcPredictors := make([]int16, len(segs.Frame.Components))

	blockIdx := 0
	restartCount := 0

	for mcu := 0; mcu < info.totalMCUs; mcu++ {
		if segs.RestartInterval > 0 && restartCount == int(segs.RestartInterval) {
			for i := range dcPredictors {
				dcPredictors[i] = 0
			}
			restartCount = 0
			// NOTE: restart-marker emission into the output stream is not
			// performed here; DC predictors are reset in lockstep with the
			// decoder but no RST byte is written (see DESIGN.md).
		}

		for ci, comp := range segs.Frame.Components {
			blocksThisComponent := int(comp.HSampling) * int(comp.VSampling)
			for b := 0; b < blocksThisComponent; b++ {
				if blockIdx >= coeffs.TotalBlocks {
					break
				}
				block := coeffs.Data[blockIdx*64 : blockIdx*64+64]
				if err := encodeBlock(writer, block, dcEncoders[comp.DCTableID], acEncoders[comp.ACTableID], &dcPredictors[ci]); err != nil {
					return nil, err
				}
				blockIdx++
			}
		}
		restartCount++
	}

	return writer.Bytes(), nil
}

func encodeBlock(w *BitWriter, block []int16, dcTable, acTable *HuffmanEncoder, dcPredictor *int16) error {
	dcValue := block[0]
	dcDiff := dcValue - *dcPredictor
	*dcPredictor = dcValue

	dcSize, dcBits := EncodeCoefficient(dcDiff)
	if err := w.WriteHuffman(dcSize, dcTable); err != nil {
		return err
	}
	if dcSize > 0 {
		w.WriteBits(dcBits, dcSize)
	}

	zeroRun := 0
	for k := 1; k < 64; k++ {
		coeff := block[k]
		if coeff == 0 {
			zeroRun++
			continue
		}
		for zeroRun >= 16 {
			if err := w.WriteHuffman(0xF0, acTable); err != nil {
				return err
			}
			zeroRun -= 16
		}
		size, bits := EncodeCoefficient(coeff)
		symbol := byte(zeroRun<<4) | size
		if err := w.WriteHuffman(symbol, acTable); err != nil {
			return err
		}
		w.WriteBits(bits, size)
		zeroRun = 0
	}
	if zeroRun > 0 {
		if err := w.WriteHuffman(0x00, acTable); err != nil {
			return err
		}
	}

	return nil
}
