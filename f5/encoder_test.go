package f5

import (
	"math/rand"
	"testing"
)

func generateTestCoefficients(blockCount int) []int16 {
	rng := rand.New(rand.NewSource(12345))
	coeffs := make([]int16, 0, blockCount*64)

	for i := 0; i < blockCount; i++ {
		coeffs = append(coeffs, int16(rng.Intn(1000)-500))
		for j := 1; j < 64; j++ {
			switch rng.Intn(10) {
			case 0, 1, 2, 3, 4, 5:
				coeffs = append(coeffs, 0)
			case 6, 7:
				coeffs = append(coeffs, int16(rng.Intn(5)-2))
			case 8:
				coeffs = append(coeffs, int16(rng.Intn(21)-10))
			default:
				coeffs = append(coeffs, int16(rng.Intn(101)-50))
			}
		}
	}
	return coeffs
}

func TestCountUsableCoefficients(t *testing.T) {
	coeffs := generateTestCoefficients(10)
	usable := countUsable(coeffs)
	if usable == 0 || usable >= len(coeffs) {
		t.Fatalf("unexpected usable count %d of %d", usable, len(coeffs))
	}
}

func TestIsDCCoefficient(t *testing.T) {
	if !isDCCoefficient(0) || !isDCCoefficient(64) || !isDCCoefficient(128) {
		t.Errorf("expected multiples of 64 to be DC")
	}
	if isDCCoefficient(1) || isDCCoefficient(63) || isDCCoefficient(65) {
		t.Errorf("expected non-multiples of 64 to not be DC")
	}
}

func TestCapacityCalculation(t *testing.T) {
	coeffs := generateTestCoefficients(100)
	enc := NewEncoder()
	if enc.Capacity(coeffs) <= 0 {
		t.Errorf("expected positive capacity")
	}
}

func TestEmbedBasic(t *testing.T) {
	coeffs := generateTestCoefficients(100)
	original := append([]int16(nil), coeffs...)

	enc := NewEncoder()
	if err := enc.Embed(coeffs, []byte("Hello"), nil); err != nil {
		t.Fatalf("embed failed: %v", err)
	}

	same := true
	for i := range coeffs {
		if coeffs[i] != original[i] {
			same = false
			break
		}
	}
	if same {
		t.Errorf("expected coefficients to be modified")
	}
}

func TestEmbedEmptyMessage(t *testing.T) {
	coeffs := generateTestCoefficients(100)
	enc := NewEncoder()
	if err := enc.Embed(coeffs, []byte{}, nil); err != nil {
		t.Fatalf("embed of empty message failed: %v", err)
	}
}

func TestCapacityExceeded(t *testing.T) {
	coeffs := generateTestCoefficients(5)
	message := make([]byte, 10000)
	enc := NewEncoder()
	err := enc.Embed(coeffs, message, nil)
	if _, ok := err.(*CapacityExceededError); !ok {
		t.Fatalf("expected CapacityExceededError, got %v", err)
	}
}

func TestDCCoefficientsUnchanged(t *testing.T) {
	coeffs := generateTestCoefficients(100)
	dcBefore := make([]int16, 0)
	for i := 0; i < len(coeffs); i += 64 {
		dcBefore = append(dcBefore, coeffs[i])
	}

	enc := NewEncoder()
	if err := enc.Embed(coeffs, []byte("test message"), nil); err != nil {
		t.Fatalf("embed failed: %v", err)
	}

	for i, j := 0, 0; i < len(coeffs); i, j = i+64, j+1 {
		if coeffs[i] != dcBefore[j] {
			t.Fatalf("DC coefficient at block %d changed", j)
		}
	}
}

func TestFixedW(t *testing.T) {
	coeffs := generateTestCoefficients(100)
	enc := NewEncoderWithW(3)
	if err := enc.Embed(coeffs, []byte("test"), nil); err != nil {
		t.Fatalf("embed with fixed w failed: %v", err)
	}
}
