package payload

import (
	"bytes"
	"testing"
)

func TestDecoderLegacyV1StopsAtFirstTerminator(t *testing.T) {
	dec := DecoderLegacyV1{}
	data := append([]byte("secret text"), 0xFF, 'j', 'u', 'n', 'k')

	got, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(got) != "secret text" {
		t.Fatalf("got %q", got)
	}
}

func TestDecoderLegacyV2StripsPaddingAndTerminators(t *testing.T) {
	dec := DecoderLegacyV2{}
	data := append([]byte("secret text"), 0xFF, 0xFF, 0x00, 0x00, 0x00)

	got, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(got) != "secret text" {
		t.Fatalf("got %q", got)
	}
}

func TestFabTextOnlyRoundtrip(t *testing.T) {
	codec, err := (FabTextOnly{}).CreateCodec(Features(TextOnly))
	if err != nil {
		t.Fatalf("CreateCodec: %v", err)
	}

	content := []byte("plain text payload")
	framed, err := codec.Encode(content)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// the feature byte fronts the frame; legacy decoders read what follows it
	got, err := codec.Decode(bytes.NewReader(framed[1:]))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("got %q, want %q", got, content)
	}
}

func TestFabTextOnlyRejectsUnknownFeatures(t *testing.T) {
	if _, err := (FabTextOnly{}).CreateCodec(Features(AESCrypto)); err == nil {
		t.Fatal("expected an error for an unsupported feature set")
	}
}
