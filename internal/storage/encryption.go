package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// encryptionMagic identifies encrypted backup files.
const encryptionMagic = "INKWENC1"

const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	keyLength     = 32 // AES-256
	saltLength    = 32
)

// deriveKey derives an AES key from a password with argon2id.
func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, keyLength)
}

// encrypt seals plaintext with AES-256-GCM under a password-derived key.
// Output layout: magic || salt || nonce || ciphertext+tag.
func encrypt(plaintext []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("password required")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, len(encryptionMagic)+len(salt)+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, encryptionMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)
	return out, nil
}

// decrypt reverses encrypt. It fails on a missing magic header, a wrong
// password, or corrupted data.
func decrypt(data []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("password required")
	}
	if len(data) < len(encryptionMagic) || string(data[:len(encryptionMagic)]) != encryptionMagic {
		return nil, fmt.Errorf("not an encrypted backup")
	}
	data = data[len(encryptionMagic):]

	if len(data) < saltLength {
		return nil, fmt.Errorf("encrypted data truncated")
	}
	salt := data[:saltLength]
	data = data[saltLength:]

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, fmt.Errorf("encrypted data truncated")
	}
	nonce := data[:gcm.NonceSize()]
	ciphertext := data[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed (wrong password or corrupted backup): %w", err)
	}
	return plaintext, nil
}

// isEncrypted reports whether data starts with the backup magic header.
func isEncrypted(data []byte) bool {
	return len(data) >= len(encryptionMagic) && string(data[:len(encryptionMagic)]) == encryptionMagic
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
