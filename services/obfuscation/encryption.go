package obfuscation

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrEmptyKey is returned when obfuscating without a key.
var ErrEmptyKey = errors.New("obfuscation key is empty")

// newGCM derives a 32-byte AES-256 key from key using SHA-256.
func newGCM(key string) (cipher.AEAD, error) {
	keyHash := sha256.Sum256([]byte(key))
	block, err := aes.NewCipher(keyHash[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Obfuscate encrypts plain with AES-256 GCM. The nonce is prepended to the
// ciphertext and the result is URL-safe base64 without padding.
func Obfuscate(plain, key string) (string, error) {
	if plain == "" {
		return "", nil
	}
	if key == "" {
		return "", ErrEmptyKey
	}
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := gcm.Seal(nonce, nonce, []byte(plain), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Reveal reverses Obfuscate. It returns "" on any failure, including a wrong key or
// malformed input; callers keep showing the opaque form in that case.
func Reveal(opaque, key string) string {
	if opaque == "" || key == "" {
		return ""
	}
	raw, err := base64.RawURLEncoding.DecodeString(opaque)
	if err != nil {
		return ""
	}
	gcm, err := newGCM(key)
	if err != nil {
		return ""
	}
	if len(raw) < gcm.NonceSize() {
		return ""
	}
	nonce, ciphertext := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil || !utf8.Valid(plain) {
		return ""
	}
	return string(plain)
}

// RevealOr returns the revealed text, or opaque itself when reveal fails.
func RevealOr(opaque, key string) (string, bool) {
	if plain := Reveal(opaque, key); plain != "" {
		return plain, true
	}
	return opaque, false
}

// Cipher binds a key for callers that obfuscate many fields.
type Cipher struct {
	key string
}

func NewCipher(key string) *Cipher {
	return &Cipher{key: key}
}

func (c *Cipher) Obfuscate(plain string) (string, error) {
	return Obfuscate(plain, c.key)
}

func (c *Cipher) Reveal(opaque string) string {
	return Reveal(opaque, c.key)
}
