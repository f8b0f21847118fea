package payload

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/Nerggg/multi-stegano/stegerr"
)

const (
	saltSize = 32
	// EncryptionOverhead is the fixed per-message cost of CryptedCodec's
	// framing: a 16-byte Poly1305 auth tag, a 24-byte XChaCha20 nonce, and
	// a 32-byte Argon2id salt.
	EncryptionOverhead = 16 + chacha20poly1305.NonceSizeX + saltSize
)

func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, 10, 64*1024, 4, chacha20poly1305.KeySize)
}

func encryptData(password string, data []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("payload: generating salt: %w", err)
	}

	key := deriveKey(password, salt)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("payload: building cipher: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("payload: generating nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, data, nil)

	out := make([]byte, 0, len(ciphertext)+chacha20poly1305.NonceSizeX+saltSize)
	out = append(out, ciphertext...)
	out = append(out, nonce...)
	out = append(out, salt...)
	return out, nil
}

func decryptData(password string, data []byte) ([]byte, error) {
	if len(data) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("payload: encrypted data too short")
	}
	salt := data[len(data)-saltSize:]
	nonce := data[len(data)-saltSize-chacha20poly1305.NonceSizeX : len(data)-saltSize]
	ciphertext := data[:len(data)-saltSize-chacha20poly1305.NonceSizeX]

	key := deriveKey(password, salt)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("payload: building cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("payload: %w: %v", stegerr.ErrDecryption, err)
	}
	return plaintext, nil
}

// CryptedCodec wraps an inner Codec, encrypting the content before framing
// it and decrypting after the inner codec unframes it.
type CryptedCodec struct {
	inner    Codec
	password string
}

// NewCryptedCodec wraps inner with password-based XChaCha20-Poly1305
// encryption.
func NewCryptedCodec(inner Codec, password string) *CryptedCodec {
	return &CryptedCodec{inner: inner, password: password}
}

// Version implements Encoder.
func (c *CryptedCodec) Version() Features { return c.inner.Version() }

// Encode implements Encoder: encrypts content, then frames the ciphertext
// with the inner codec.
func (c *CryptedCodec) Encode(content []byte) ([]byte, error) {
	encrypted, err := encryptData(c.password, content)
	if err != nil {
		return nil, err
	}
	return c.inner.Encode(encrypted)
}

// Decode implements Decoder: unframes with the inner codec, then decrypts.
func (c *CryptedCodec) Decode(r io.Reader) ([]byte, error) {
	framed, err := c.inner.Decode(r)
	if err != nil {
		return nil, err
	}
	return decryptData(c.password, framed)
}

// FabS is a CodecFactory that always wraps its inner FabA codec with
// encryption, adding the ChaCrypto and LengthHeader feature flags.
type FabS struct {
	Password string
}

// NewFabS builds a FabS factory for password.
func NewFabS(password string) FabS { return FabS{Password: password} }

// Password implements CodecFactory.
func (f FabS) Password() (string, bool) { return f.Password, true }

// CreateCodec implements CodecFactory.
func (f FabS) CreateCodec(features Features) (Codec, error) {
	features = features.With(ChaCrypto).With(LengthHeader)
	inner, err := (FabA{}).CreateCodec(features)
	if err != nil {
		return nil, err
	}
	return NewCryptedCodec(inner, f.Password), nil
}
