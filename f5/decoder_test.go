package f5

import (
	"bytes"
	"testing"
)

func TestRoundtripSimple(t *testing.T) {
	coeffs := generateTestCoefficients(100)
	message := []byte("Hello World")

	if err := NewEncoder().Embed(coeffs, message, nil); err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	extracted, err := NewDecoder().Extract(coeffs, nil)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !bytes.Equal(extracted, message) {
		t.Fatalf("got %q want %q", extracted, message)
	}
}

func TestRoundtripWithPermutation(t *testing.T) {
	coeffs := generateTestCoefficients(100)
	message := []byte("Secret message with permutation")
	seed := []byte("my_secret_seed")

	if err := NewEncoder().Embed(coeffs, message, seed); err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	extracted, err := NewDecoder().Extract(coeffs, seed)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !bytes.Equal(extracted, message) {
		t.Fatalf("got %q want %q", extracted, message)
	}
}

func TestRoundtripEmptyMessage(t *testing.T) {
	coeffs := generateTestCoefficients(100)
	message := []byte{}

	if err := NewEncoder().Embed(coeffs, message, nil); err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	extracted, err := NewDecoder().Extract(coeffs, nil)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !bytes.Equal(extracted, message) {
		t.Fatalf("got %q want %q", extracted, message)
	}
}

func TestRoundtripVariousSizes(t *testing.T) {
	for _, size := range []int{1, 10, 50, 100, 200} {
		coeffs := generateTestCoefficients(200)
		message := make([]byte, size)
		for i := range message {
			message[i] = byte(i % 256)
		}

		if err := NewEncoder().Embed(coeffs, message, nil); err == nil {
			extracted, err := NewDecoder().Extract(coeffs, nil)
			if err != nil {
				t.Fatalf("size %d: extract failed: %v", size, err)
			}
			if !bytes.Equal(extracted, message) {
				t.Fatalf("size %d: got %q want %q", size, extracted, message)
			}
		}
	}
}

func TestBinaryData(t *testing.T) {
	coeffs := generateTestCoefficients(100)
	message := make([]byte, 128)
	for i := range message {
		message[i] = byte(i)
	}

	if err := NewEncoder().Embed(coeffs, message, nil); err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	extracted, err := NewDecoder().Extract(coeffs, nil)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !bytes.Equal(extracted, message) {
		t.Fatalf("got %q want %q", extracted, message)
	}
}
