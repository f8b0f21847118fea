package message

import (
	"bytes"
	"testing"

	"github.com/Nerggg/multi-stegano/payload"
)

func TestMessageTextRoundtrip(t *testing.T) {
	m := FromText("hello, world")

	raw, err := ToRawData(m, payload.FabA{})
	if err != nil {
		t.Fatalf("ToRawData: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("expected non-empty encoded output")
	}

	got, err := FromRawData(bytes.NewReader(raw), payload.FabA{})
	if err != nil {
		t.Fatalf("FromRawData: %v", err)
	}
	if !got.HasText || got.Text != "hello, world" {
		t.Fatalf("got text %q (hasText=%v), want %q", got.Text, got.HasText, "hello, world")
	}
	if len(got.Files) != 0 {
		t.Fatalf("expected no files, got %d", len(got.Files))
	}
}

func TestMessageFilesRoundtrip(t *testing.T) {
	m := Empty()
	m.AddFile("notes.txt", []byte("line one\nline two"))
	m.AddFile("data.bin", []byte{0x01, 0x02, 0x03, 0xFF})

	raw, err := ToRawData(m, payload.FabA{})
	if err != nil {
		t.Fatalf("ToRawData: %v", err)
	}

	got, err := FromRawData(bytes.NewReader(raw), payload.FabA{})
	if err != nil {
		t.Fatalf("FromRawData: %v", err)
	}
	if len(got.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(got.Files))
	}

	byName := map[string][]byte{}
	for _, f := range got.Files {
		byName[f.Name] = f.Data
	}
	if !bytes.Equal(byName["notes.txt"], []byte("line one\nline two")) {
		t.Fatalf("notes.txt mismatch: %q", byName["notes.txt"])
	}
	if !bytes.Equal(byName["data.bin"], []byte{0x01, 0x02, 0x03, 0xFF}) {
		t.Fatalf("data.bin mismatch: %v", byName["data.bin"])
	}
}

func TestMessageFilesWithTextComment(t *testing.T) {
	m := Empty()
	m.AddFile("readme.md", []byte("# hi"))
	m.Text = "a note about these files"
	m.HasText = true

	raw, err := ToRawData(m, payload.FabA{})
	if err != nil {
		t.Fatalf("ToRawData: %v", err)
	}

	got, err := FromRawData(bytes.NewReader(raw), payload.FabA{})
	if err != nil {
		t.Fatalf("FromRawData: %v", err)
	}
	if got.Text != "a note about these files" {
		t.Fatalf("got text %q", got.Text)
	}
	if len(got.Files) != 1 || got.Files[0].Name != "readme.md" {
		t.Fatalf("got files %+v", got.Files)
	}
}

func TestMessageFeaturesReflectContent(t *testing.T) {
	textOnly := FromText("hi")
	if textOnly.Features() != payload.Features(payload.TextOnly) {
		t.Fatalf("expected TextOnly feature for a text-only message")
	}

	withFiles := Empty()
	withFiles.AddFile("a.txt", []byte("x"))
	if withFiles.Features() != payload.Features(payload.TextAndDocuments) {
		t.Fatalf("expected TextAndDocuments feature once a file is added")
	}
}

func TestMessageEncryptedRoundtrip(t *testing.T) {
	m := Empty()
	m.AddFile("secret.txt", []byte("for your eyes only"))

	cipher := payload.NewFabS("correct horse battery staple")
	raw, err := ToRawData(m, cipher)
	if err != nil {
		t.Fatalf("ToRawData: %v", err)
	}

	got, err := FromRawData(bytes.NewReader(raw), cipher)
	if err != nil {
		t.Fatalf("FromRawData: %v", err)
	}
	if len(got.Files) != 1 || !bytes.Equal(got.Files[0].Data, []byte("for your eyes only")) {
		t.Fatalf("got files %+v", got.Files)
	}
}
