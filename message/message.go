// Package message frames a hidden payload as either plain text or a small
// zip-archived file bundle (with the text, if any, carried in the zip
// comment). Grounded on stegano-core/src/message.rs.
package message

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/Nerggg/multi-stegano/payload"
)

// Message is a hidden text and/or a bundle of files.
type Message struct {
	Files []NamedFile
	Text  string
	// HasText distinguishes an empty string from no text at all.
	HasText bool
}

// NamedFile is one file carried inside a Message's zip bundle.
type NamedFile struct {
	Name string
	Data []byte
}

// Empty builds a Message with neither text nor files.
func Empty() *Message {
	return &Message{}
}

// FromText builds a Message carrying only text.
func FromText(text string) *Message {
	return &Message{Text: text, HasText: true}
}

// AddFile appends a named file to the message's bundle.
func (m *Message) AddFile(name string, data []byte) {
	m.Files = append(m.Files, NamedFile{Name: filepath.Base(name), Data: data})
}

// Features reports which payload feature this message needs: plain text
// when there are no files, a document bundle otherwise.
func (m *Message) Features() payload.Features {
	if len(m.Files) == 0 {
		return payload.Features(payload.TextOnly)
	}
	return payload.Features(payload.TextAndDocuments)
}

// ToRawData encodes the message through a codec built by factory.
func ToRawData(m *Message, factory payload.CodecFactory) ([]byte, error) {
	codec, err := factory.CreateCodec(m.Features())
	if err != nil {
		return nil, err
	}
	return encodeMessage(codec, m)
}

// FromRawData decodes a Message out of r, reading the leading feature byte
// to pick the right codec from factory.
func FromRawData(r io.Reader, factory payload.CodecFactory) (*Message, error) {
	var versionBuf [1]byte
	if _, err := io.ReadFull(r, versionBuf[:]); err != nil {
		return nil, fmt.Errorf("message: reading feature byte: %w", err)
	}
	version := payload.Features(versionBuf[0])

	codec, err := factory.CreateCodec(version)
	if err != nil {
		return nil, err
	}
	return decodeMessage(codec, r)
}

func encodeMessage(codec payload.Codec, m *Message) ([]byte, error) {
	if codec.Version().Has(payload.TextOnly) {
		return codec.Encode([]byte(m.Text))
	}

	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)

	for _, f := range m.Files {
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("message: starting zip entry %q: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("message: writing zip entry %q: %w", f.Name, err)
		}
	}
	if m.HasText {
		if err := zw.SetComment(m.Text); err != nil {
			return nil, fmt.Errorf("message: setting zip comment: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("message: finishing zip: %w", err)
	}

	return codec.Encode(zipBuf.Bytes())
}

func decodeMessage(codec payload.Codec, r io.Reader) (*Message, error) {
	content, err := codec.Decode(r)
	if err != nil {
		return nil, err
	}

	switch {
	case codec.Version().Has(payload.TextOnly):
		return &Message{Text: string(content), HasText: true}, nil
	case codec.Version().Has(payload.TextAndDocuments) || codec.Version().Has(payload.TextAndDocumentsTerminated):
		return fromDocumentsData(content)
	default:
		return nil, fmt.Errorf("message: unsupported message format: %d", byte(codec.Version()))
	}
}

func fromDocumentsData(buf []byte) (*Message, error) {
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("message: opening zip bundle: %w", err)
	}

	m := &Message{}
	if zr.Comment != "" {
		m.Text = zr.Comment
		m.HasText = true
	}

	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("message: opening zip entry %q: %w", zf.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("message: reading zip entry %q: %w", zf.Name, err)
		}
		m.Files = append(m.Files, NamedFile{Name: zf.Name, Data: data})
	}

	return m, nil
}
