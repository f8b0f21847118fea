package models

type CapacityResult struct {
	// LSB method capacities
	OneLSB   int `json:"1_lsb"`
	TwoLSB   int `json:"2_lsb"`
	ThreeLSB int `json:"3_lsb"`
	FourLSB  int `json:"4_lsb"`
	// Parity coding capacity (1 bit per byte)
	Parity int `json:"parity"`
}

// ForNLsb returns the capacity, in bytes, for the given LSB count (1-4).
// Returns 0 for any other value.
func (c CapacityResult) ForNLsb(n int) int {
	switch n {
	case 1:
		return c.OneLSB
	case 2:
		return c.TwoLSB
	case 3:
		return c.ThreeLSB
	case 4:
		return c.FourLSB
	default:
		return 0
	}
}

// Fits reports whether a payload of size bytes fits using n LSBs per sample.
func (c CapacityResult) Fits(n, size int) bool {
	return size <= c.ForNLsb(n)
}
