// Package crypto contains the password-keyed AES-256-GCM cipher used to
// protect payload segments before they are embedded into a carrier.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEmptyKey is returned when a cipher is requested with an empty key.
	ErrEmptyKey = errors.New("key cannot be empty")

	// ErrWrongKey is returned when GCM authentication fails during
	// decryption. The same signal covers a wrong password and a
	// tampered or truncated ciphertext.
	ErrWrongKey = errors.New("wrong key")
)

// DeriveKey turns an arbitrary non-empty password into a 32-byte AES-256 key.
func DeriveKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return sum[:]
}

// AESGCMCipher encrypts and decrypts payload segments with AES-256-GCM.
type AESGCMCipher struct {
	key []byte
}

// NewAESGCMCipher creates a cipher keyed by the given password.
func NewAESGCMCipher(password string) (*AESGCMCipher, error) {
	if password == "" {
		return nil, ErrEmptyKey
	}
	return &AESGCMCipher{key: DeriveKey(password)}, nil
}

func (c *AESGCMCipher) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext with a fresh random nonce.
// Output layout: nonce (12 bytes) || ciphertext+tag.
func (c *AESGCMCipher) Encrypt(plaintext []byte) ([]byte, error) {
	gcm, err := c.aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens ciphertext produced by Encrypt. Any authentication
// failure is reported as ErrWrongKey rather than fabricated plaintext.
func (c *AESGCMCipher) Decrypt(data []byte) ([]byte, error) {
	gcm, err := c.aead()
	if err != nil {
		return nil, err
	}
	nsize := gcm.NonceSize()
	if len(data) < nsize {
		return nil, ErrWrongKey
	}
	plaintext, err := gcm.Open(nil, data[:nsize], data[nsize:], nil)
	if err != nil {
		return nil, ErrWrongKey
	}
	return plaintext, nil
}

// ValidateKey validates if the key is usable before any encoding begins
func ValidateKey(key string) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if len(key) > 256 {
		return fmt.Errorf("key length cannot exceed 256 characters")
	}
	return nil
}
