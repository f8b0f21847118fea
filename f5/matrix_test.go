package f5

import "testing"

func TestMatrixConstructionW2(t *testing.T) {
	m := NewCheckMatrix(2)
	if m.N() != 3 {
		t.Fatalf("expected n=3, got %d", m.N())
	}

	if m.Get(0, 0) != false || m.Get(1, 0) != true {
		t.Errorf("column 1 (binary 01) mismatch")
	}
	if m.Get(0, 1) != true || m.Get(1, 1) != false {
		t.Errorf("column 2 (binary 10) mismatch")
	}
	if m.Get(0, 2) != true || m.Get(1, 2) != true {
		t.Errorf("column 3 (binary 11) mismatch")
	}
}

func TestMatrixConstructionW3(t *testing.T) {
	m := NewCheckMatrix(3)
	if m.N() != 7 {
		t.Fatalf("expected n=7, got %d", m.N())
	}
	if m.Get(0, 4) != true || m.Get(1, 4) != false || m.Get(2, 4) != true {
		t.Errorf("column 5 (binary 101) mismatch")
	}
	if !m.Get(0, 6) || !m.Get(1, 6) || !m.Get(2, 6) {
		t.Errorf("column 7 (binary 111) mismatch")
	}
}

func TestMatrixMultiply(t *testing.T) {
	m := NewCheckMatrix(2)
	result := m.Multiply([]bool{true, false, true})
	expect := []bool{true, false}
	for i := range expect {
		if result[i] != expect[i] {
			t.Fatalf("got %v want %v", result, expect)
		}
	}
}

func TestMatrixMultiplyAllZeros(t *testing.T) {
	m := NewCheckMatrix(2)
	result := m.Multiply([]bool{false, false, false})
	if result[0] || result[1] {
		t.Fatalf("expected all-false result, got %v", result)
	}
}

func TestMatrixMultiplyAllOnes(t *testing.T) {
	m := NewCheckMatrix(2)
	result := m.Multiply([]bool{true, true, true})
	if result[0] || result[1] {
		t.Fatalf("expected all-false result, got %v", result)
	}
}

func TestHashCoefficients(t *testing.T) {
	m := NewCheckMatrix(2)
	hash := m.HashCoefficients([]int16{3, 4, 5}) // LSBs: 1, 0, 1
	if hash != 2 {
		t.Fatalf("expected hash 2, got %d", hash)
	}
}

func TestFindModification(t *testing.T) {
	m := NewCheckMatrix(2)
	if got := m.FindModification(2, 3); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := m.FindModification(2, 2); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := m.FindModification(0, 3); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestOptimalWSelection(t *testing.T) {
	if w := OptimalW(10000, 100); w < 3 {
		t.Errorf("expected w >= 3 for high capacity, got %d", w)
	}
	if w := OptimalW(100, 80); w > 2 {
		t.Errorf("expected w <= 2 for low capacity, got %d", w)
	}
	if w := OptimalW(1000, 0); w != 1 {
		t.Errorf("expected w=1 for zero message, got %d", w)
	}
	if w := OptimalW(0, 100); w != 1 {
		t.Errorf("expected w=1 for zero capacity, got %d", w)
	}
}

func TestBitsConversion(t *testing.T) {
	bits := UsizeToBits(5, 3)
	expect := []bool{true, false, true}
	for i := range expect {
		if bits[i] != expect[i] {
			t.Fatalf("got %v want %v", bits, expect)
		}
	}
	if bitsToInt([]bool{true, false, true}) != 5 {
		t.Errorf("bitsToInt roundtrip failed")
	}
}

func TestInvalidWPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for w=0")
		}
	}()
	NewCheckMatrix(0)
}
