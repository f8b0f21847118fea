package payload

import (
	"bytes"
	"testing"
)

func TestEncryptDataRoundtrip(t *testing.T) {
	plaintext := []byte("a message worth protecting")

	encrypted, err := encryptData("password42", plaintext)
	if err != nil {
		t.Fatalf("encryptData: %v", err)
	}
	if len(encrypted) != len(plaintext)+EncryptionOverhead {
		t.Fatalf("got overhead %d, want %d", len(encrypted)-len(plaintext), EncryptionOverhead)
	}

	decrypted, err := decryptData("password42", encrypted)
	if err != nil {
		t.Fatalf("decryptData: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Fatalf("got %q, want %q", decrypted, plaintext)
	}
}

func TestDecryptDataRejectsWrongPassword(t *testing.T) {
	encrypted, err := encryptData("correct horse", []byte("top secret"))
	if err != nil {
		t.Fatalf("encryptData: %v", err)
	}
	if _, err := decryptData("battery staple", encrypted); err == nil {
		t.Fatal("expected decryption to fail with the wrong password")
	}
}

func TestFabSCreateCodecEncryptionRoundtrip(t *testing.T) {
	cipher := NewFabS("password42")
	codec, err := cipher.CreateCodec(Features(TextAndDocuments))
	if err != nil {
		t.Fatalf("CreateCodec: %v", err)
	}

	content := []byte("imagine this is a zipped message with a text and a file")
	encoded, err := codec.Encode(content)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) == 0 {
		t.Fatal("expected non-empty encoded output")
	}

	features := Features(encoded[0])
	if !features.Has(TextAndDocuments) {
		t.Fatal("expected TextAndDocuments feature bit")
	}
	if !features.Has(LengthHeader) {
		t.Fatal("expected LengthHeader feature bit")
	}
	if !features.Has(ChaCrypto) {
		t.Fatal("expected ChaCrypto feature bit")
	}

	decoded, err := codec.Decode(bytes.NewReader(encoded[1:]))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, content) {
		t.Fatalf("got %q, want %q", decoded, content)
	}
}

func TestFabSPasswordReported(t *testing.T) {
	cipher := NewFabS("hunter2")
	password, ok := cipher.Password()
	if !ok || password != "hunter2" {
		t.Fatalf("got (%q, %v), want (%q, true)", password, ok, "hunter2")
	}
}
