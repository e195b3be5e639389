// Package encryption provides implementations of the SDK's Encrypter
// collaborator. The default is a software AES-256-GCM provider; an HSM-backed
// PKCS#11 provider lives in the hsm subpackage behind the softhsm build tag.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// AESGCM encrypts payloads with AES-256-GCM, deriving the cipher key from
// the crypt key material issued by the backend. The nonce is prepended to
// the ciphertext.
type AESGCM struct {
	// rand is the nonce source; overridable in tests.
	rand io.Reader
}

func NewAESGCM() *AESGCM {
	return &AESGCM{rand: rand.Reader}
}

func (e *AESGCM) Encrypt(keyMaterial, payload []byte) ([]byte, error) {
	if len(keyMaterial) == 0 {
		return nil, fmt.Errorf("crypt key material is required")
	}

	key := sha256.Sum256(keyMaterial)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("building cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("building gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(e.rand, nonce); err != nil {
		return nil, fmt.Errorf("reading nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, payload, nil), nil
}

// Wipe zeroes key material after use. Go gives no erasure guarantee; this is
// the same posture the rest of the stack takes.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
