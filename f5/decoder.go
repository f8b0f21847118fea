package f5

import "fmt"

// maxW is the largest supported matrix-encoding parameter.
const maxW = 9

// NoDataFoundError is returned when extraction fails to find a plausible F5
// header or runs out of coefficients before the declared message ends.
type NoDataFoundError struct {
	Reason string
}

func (e *NoDataFoundError) Error() string { return "f5: no data found: " + e.Reason }

// Decoder extracts a message previously embedded by Encoder.
type Decoder struct{}

// NewDecoder builds a Decoder.
func NewDecoder() *Decoder { return &Decoder{} }

// Extract recovers the message bytes from coefficients. permutationSeed
// must match the one used during Embed (nil for no shuffling).
func (d *Decoder) Extract(coefficients []int16, permutationSeed []byte) ([]byte, error) {
	var perm *Permutation
	if permutationSeed != nil {
		perm = FromSeed(permutationSeed, len(coefficients))
	} else {
		perm = Identity(len(coefficients))
	}

	iter := newUsableCoefficients(coefficients, perm)

	headerBitsOut := make([]bool, 0, headerBits)
	for i := 0; i < headerBits; i++ {
		idx, ok := iter.next()
		if !ok {
			return nil, &NoDataFoundError{Reason: "not enough coefficients for header"}
		}
		headerBitsOut = append(headerBitsOut, abs16(coefficients[idx])&1 == 1)
	}

	w := uint8(bitsToInt(headerBitsOut[0:4]))
	messageLen := bitsToInt(headerBitsOut[4:32])

	if w == 0 || w > maxW {
		return nil, &NoDataFoundError{Reason: fmt.Sprintf("invalid w parameter: %d", w)}
	}
	if messageLen > len(coefficients) {
		return nil, &NoDataFoundError{Reason: fmt.Sprintf("message length %d exceeds coefficient count", messageLen)}
	}

	messageBitsCount := messageLen * 8

	iter = newUsableCoefficients(coefficients, perm)
	for i := 0; i < headerBits; i++ {
		if _, ok := iter.next(); !ok {
			return nil, &NoDataFoundError{Reason: "not enough coefficients for header"}
		}
	}

	matrix := NewCheckMatrix(w)
	n := matrix.N()
	messageBitsOut := make([]bool, 0, messageBitsCount)

	for len(messageBitsOut) < messageBitsCount {
		group := make([]int, 0, n)
		for i := 0; i < n; i++ {
			idx, ok := iter.next()
			if !ok {
				return nil, &NoDataFoundError{Reason: "not enough coefficients for message"}
			}
			group = append(group, idx)
		}

		lsbs := make([]bool, len(group))
		for i, idx := range group {
			lsbs[i] = abs16(coefficients[idx])&1 == 1
		}
		extracted := matrix.Multiply(lsbs)

		bitsRemaining := messageBitsCount - len(messageBitsOut)
		bitsToTake := bitsRemaining
		if bitsToTake > int(w) {
			bitsToTake = int(w)
		}
		messageBitsOut = append(messageBitsOut, extracted[0:bitsToTake]...)
	}

	message := make([]byte, 0, messageLen)
	for i := 0; i < len(messageBitsOut); i += 8 {
		end := i + 8
		if end > len(messageBitsOut) {
			end = len(messageBitsOut)
		}
		chunk := messageBitsOut[i:end]
		var b byte
		for j, bit := range chunk {
			if bit {
				b |= 1 << uint(j)
			}
		}
		message = append(message, b)
	}

	return message, nil
}

// usableCoefficients iterates usable (non-zero, non-DC) coefficient indices
// in permuted order.
type usableCoefficients struct {
	coefficients []int16
	perm         *Permutation
	current      int
}

func newUsableCoefficients(coefficients []int16, perm *Permutation) *usableCoefficients {
	return &usableCoefficients{coefficients: coefficients, perm: perm}
}

func (u *usableCoefficients) next() (int, bool) {
	for u.current < u.perm.Len() {
		idx := u.perm.Unshuffled(u.current)
		u.current++
		if isUsable(u.coefficients[idx], idx) {
			return idx, true
		}
	}
	return 0, false
}
