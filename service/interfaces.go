package service

import (
	"github.com/Nerggg/multi-stegano/models"
)

// SteganographyService defines the interface for steganography operations
type SteganographyService interface {
	// CalculateCapacity calculates the embedding capacity for different LSB methods
	CalculateCapacity(audioData []byte) (*models.CapacityResult, error)

	// EmbedMessage embeds a secret message into audio data
	EmbedMessage(req *models.EmbedRequest, secretData []byte, metadata []byte) ([]byte, float64, error)

	// ExtractMessage extracts a secret message from audio data
	ExtractMessage(req *models.ExtractRequest, audioData []byte) ([]byte, string, error)

	// ExtractMessageAutoDetect extracts a secret message without the caller
	// specifying the LSB count, delegating to ExtractMessage's own n=1..4
	// brute-force detection.
	ExtractMessageAutoDetect(audioData []byte, stegoKey, outputFilename string) ([]byte, string, error)

	// CreateMetadata creates metadata for embedding
	CreateMetadata(filename string, fileSize int, useEncryption, useRandomStart bool, nLsb int) []byte
}

// CryptographyService defines the interface for cryptographic operations
type CryptographyService interface {
	// VigenereCipher performs Vigen√®re cipher encryption/decryption
	VigenereCipher(data []byte, key string, encrypt bool) []byte
}

// AudioService defines the interface for audio processing operations
type AudioService interface {
	// CalculatePSNR calculates Peak Signal-to-Noise Ratio between original and modified audio
	CalculatePSNR(original, modified []byte) float64
}

// AudioEncoder defines the interface for encoding raw PCM into playable
// audio containers and for steganographically tagging an MP3 container.
type AudioEncoder interface {
	EncodeToWAV(pcmData []byte, sampleRate int) ([]byte, error)
	EncodeToMP3(pcmData []byte, sampleRate int) ([]byte, error)
	ConvertWAVToMP3(wavData []byte) ([]byte, error)
	EmbedPayloadInMP3(originalMP3 []byte, owner string, payload []byte) ([]byte, error)
	ExtractPayloadFromMP3(mp3Data []byte, owner string) ([]byte, bool, error)
}
