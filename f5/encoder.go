package f5

import "fmt"

// headerBits is 4 bits for w plus 28 bits for data length.
const headerBits = 32

// maxMessageLen is the largest message embeddable given a 28-bit length
// field: 2^28 - 1 bytes.
const maxMessageLen = (1 << 28) - 1

// CapacityExceededError reports that a message does not fit the available
// coefficients.
type CapacityExceededError struct {
	Required, Available int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("f5: capacity exceeded: need %d bytes, have %d", e.Required, e.Available)
}

// Encoder embeds messages into quantized DCT coefficients using F5 matrix
// encoding and permutative straddling.
//
// F5 does not perform encryption: callers pass plaintext or pre-encrypted
// bytes and get plaintext or pre-encrypted bytes back out on extraction.
type Encoder struct {
	fixedW uint8 // 0 means "pick automatically"
}

// NewEncoder builds an Encoder that chooses w automatically per message.
func NewEncoder() *Encoder { return &Encoder{} }

// NewEncoderWithW builds an Encoder pinned to a fixed w in [1, 9].
func NewEncoderWithW(w uint8) *Encoder {
	if w < 1 || w > 9 {
		panic("w must be between 1 and 9")
	}
	return &Encoder{fixedW: w}
}

// Embed writes message into coefficients in place, optionally shuffling
// coefficient order via permutationSeed (nil disables shuffling).
func (e *Encoder) Embed(coefficients []int16, message []byte, permutationSeed []byte) error {
	if len(message) > maxMessageLen {
		return fmt.Errorf("f5: message of %d bytes exceeds maximum of %d", len(message), maxMessageLen)
	}

	usable := countUsable(coefficients)
	messageBits := len(message)*8 + headerBits
	w := e.fixedW
	if w == 0 {
		w = OptimalW(usable, messageBits)
	}

	capacity := e.capacityWithW(coefficients, w)
	if len(message) > capacity {
		return &CapacityExceededError{Required: len(message), Available: capacity}
	}

	var perm *Permutation
	if permutationSeed != nil {
		perm = FromSeed(permutationSeed, len(coefficients))
	} else {
		perm = Identity(len(coefficients))
	}

	usableIndices := make([]int, 0, perm.Len())
	for i := 0; i < perm.Len(); i++ {
		idx := perm.Unshuffled(i)
		if isUsable(coefficients[idx], idx) {
			usableIndices = append(usableIndices, idx)
		}
	}

	coeffPos := 0

	// Phase 1: embed the 32-bit header with w=1 (direct LSB, no matrix).
	header := make([]bool, 0, headerBits)
	header = append(header, UsizeToBits(int(w), 4)...)
	header = append(header, UsizeToBits(len(message), 28)...)

	for _, bit := range header {
		for {
			if coeffPos >= len(usableIndices) {
				return &CapacityExceededError{Required: len(message), Available: 0}
			}
			idx := usableIndices[coeffPos]
			coeffPos++

			if coefficients[idx] == 0 {
				continue // shrunk already, skip
			}

			currentLSB := abs16(coefficients[idx])&1 == 1
			if currentLSB != bit {
				if coefficients[idx] > 0 {
					coefficients[idx]--
				} else {
					coefficients[idx]++
				}
				if coefficients[idx] == 0 {
					continue // shrinkage, retry with next coefficient
				}
			}
			break
		}
	}

	// Phase 2: embed the message using matrix encoding with parameter w.
	matrix := NewCheckMatrix(w)
	n := matrix.N()

	messageBits2 := make([]bool, 0, len(message)*8)
	for _, b := range message {
		for i := 0; i < 8; i++ {
			messageBits2 = append(messageBits2, (b>>uint(i))&1 == 1)
		}
	}

	bitIndex := 0
	for bitIndex < len(messageBits2) {
		bitsRemaining := len(messageBits2) - bitIndex
		bitsToEmbed := bitsRemaining
		if bitsToEmbed > int(w) {
			bitsToEmbed = int(w)
		}

		targetBits := make([]bool, w)
		copy(targetBits, messageBits2[bitIndex:bitIndex+bitsToEmbed])
		target := bitsToInt(targetBits)

		for {
			group := make([]int, 0, n)
			startPos := coeffPos

			for len(group) < n && coeffPos < len(usableIndices) {
				idx := usableIndices[coeffPos]
				coeffPos++
				if coefficients[idx] != 0 {
					group = append(group, idx)
				}
			}

			if len(group) < n {
				return &CapacityExceededError{Required: len(message), Available: e.Capacity(coefficients)}
			}

			currentHash := computeHash(matrix, group, coefficients)
			modification := matrix.FindModification(currentHash, target)

			if modification == 0 {
				break
			}

			coeffIdx := group[modification-1]
			if coefficients[coeffIdx] > 0 {
				coefficients[coeffIdx]--
			} else {
				coefficients[coeffIdx]++
			}

			if coefficients[coeffIdx] == 0 {
				coeffPos = startPos // shrinkage: retry the same group
				continue
			}
			break
		}

		bitIndex += int(w)
	}

	return nil
}

// Capacity estimates the maximum number of message bytes embeddable into
// coefficients, using w=1 (or the fixed w) for the estimate.
func (e *Encoder) Capacity(coefficients []int16) int {
	usable := countUsable(coefficients)
	if usable == 0 {
		return 0
	}
	w := e.fixedW
	if w == 0 {
		w = 1
	}
	return e.capacityWithW(coefficients, w)
}

func (e *Encoder) capacityWithW(coefficients []int16, w uint8) int {
	usable := countUsable(coefficients)
	shrinkable := countShrinkable(coefficients)

	// Roughly 51% of |1|-valued coefficients are expected to shrink to 0.
	effectiveUsable := usable - (shrinkable*51)/100
	if effectiveUsable < 0 {
		effectiveUsable = 0
	}
	if effectiveUsable == 0 {
		return 0
	}

	n := (1 << w) - 1
	groups := effectiveUsable / n
	totalBits := groups * int(w)

	messageBits := totalBits - headerBits
	if messageBits < 0 {
		messageBits = 0
	}
	return messageBits / 8
}

func isDCCoefficient(index int) bool { return index%64 == 0 }

func isUsable(coeff int16, index int) bool {
	return coeff != 0 && !isDCCoefficient(index)
}

func countUsable(coefficients []int16) int {
	count := 0
	for i, c := range coefficients {
		if isUsable(c, i) {
			count++
		}
	}
	return count
}

func countShrinkable(coefficients []int16) int {
	count := 0
	for i, c := range coefficients {
		if !isDCCoefficient(i) && abs16(c) == 1 {
			count++
		}
	}
	return count
}

func computeHash(matrix *CheckMatrix, group []int, coefficients []int16) int {
	bits := make([]bool, len(group))
	for i, idx := range group {
		bits[i] = abs16(coefficients[idx])&1 == 1
	}
	return bitsToInt(matrix.Multiply(bits))
}
