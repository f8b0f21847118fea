package orchestrate

import (
	"bytes"
	stdimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeBlankPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestHideUnveilTextRoundtrip(t *testing.T) {
	dir := t.TempDir()
	carrier := filepath.Join(dir, "carrier.png")
	writeBlankPNG(t, carrier, 64, 64)
	output := filepath.Join(dir, "secret.png")

	err := PrepareHide().
		WithMessage("Hello, World!").
		WithImage(carrier).
		WithOutput(output).
		Execute()
	if err != nil {
		t.Fatalf("hide Execute: %v", err)
	}

	err = PrepareUnveil().
		FromSecretFile(output).
		IntoOutputFolder(dir).
		Execute()
	if err != nil {
		t.Fatalf("unveil Execute: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "secret-message.txt"))
	if err != nil {
		t.Fatalf("reading recovered message: %v", err)
	}
	if string(got) != "Hello, World!" {
		t.Fatalf("got %q, want %q", got, "Hello, World!")
	}
}

func TestHideUnveilEncryptedRoundtrip(t *testing.T) {
	dir := t.TempDir()
	carrier := filepath.Join(dir, "carrier.png")
	writeBlankPNG(t, carrier, 64, 64)
	output := filepath.Join(dir, "secret.png")

	err := PrepareHide().
		WithMessage("a protected secret").
		WithImage(carrier).
		UsingPassword("hunter2").
		WithOutput(output).
		Execute()
	if err != nil {
		t.Fatalf("hide Execute: %v", err)
	}

	// wrong password must fail
	err = PrepareUnveil().
		FromSecretFile(output).
		UsingPassword("wrong password").
		IntoOutputFolder(dir).
		Execute()
	if err == nil {
		t.Fatal("expected unveil with the wrong password to fail")
	}

	err = PrepareUnveil().
		FromSecretFile(output).
		UsingPassword("hunter2").
		IntoOutputFolder(dir).
		Execute()
	if err != nil {
		t.Fatalf("unveil Execute: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "secret-message.txt"))
	if err != nil {
		t.Fatalf("reading recovered message: %v", err)
	}
	if string(got) != "a protected secret" {
		t.Fatalf("got %q", got)
	}
}

func TestHideUnveilFilesRoundtrip(t *testing.T) {
	dir := t.TempDir()
	carrier := filepath.Join(dir, "carrier.png")
	writeBlankPNG(t, carrier, 64, 64)
	output := filepath.Join(dir, "secret.png")

	dataFile := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(dataFile, []byte("file contents"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := PrepareHide().
		WithFile(dataFile).
		WithImage(carrier).
		WithOutput(output).
		Execute()
	if err != nil {
		t.Fatalf("hide Execute: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	err = PrepareUnveil().
		FromSecretFile(output).
		IntoOutputFolder(outDir).
		Execute()
	if err != nil {
		t.Fatalf("unveil Execute: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(outDir, "notes.txt"))
	if err != nil {
		t.Fatalf("reading recovered file: %v", err)
	}
	if string(got) != "file contents" {
		t.Fatalf("got %q", got)
	}
}

func TestHideValidatesMissingMessage(t *testing.T) {
	err := PrepareHide().WithImage("x").WithOutput("y").Execute()
	if err == nil {
		t.Fatal("expected an error when neither message nor files are set")
	}
}

func TestHideValidatesCarrierAndTarget(t *testing.T) {
	if err := PrepareHide().WithMessage("x").Execute(); err == nil {
		t.Fatal("expected an error when no carrier is set")
	}
	if err := PrepareHide().WithMessage("x").WithImage("foo.png").Execute(); err == nil {
		t.Fatal("expected an error when no output is set")
	}
}

func TestUnveilRawRoundtrip(t *testing.T) {
	dir := t.TempDir()
	carrier := filepath.Join(dir, "carrier.png")
	writeBlankPNG(t, carrier, 64, 64)
	output := filepath.Join(dir, "secret.png")

	err := PrepareHide().
		WithMessage("raw content").
		WithImage(carrier).
		WithOutput(output).
		Execute()
	if err != nil {
		t.Fatalf("hide Execute: %v", err)
	}

	rawFile := filepath.Join(dir, "recovered.raw")
	err = PrepareUnveilRaw().
		FromSecretFile(output).
		IntoRawFile(rawFile).
		Execute()
	if err != nil {
		t.Fatalf("unveil-raw Execute: %v", err)
	}

	got, err := os.ReadFile(rawFile)
	if err != nil {
		t.Fatalf("reading raw file: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected non-empty raw content")
	}
}
