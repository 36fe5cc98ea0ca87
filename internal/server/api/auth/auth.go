// Package auth implements the optional password protection of the query
// service: a PBKDF2 derived key, an HMAC challenge on connect and a
// chacha20poly1305 framed connection afterwards.
package auth

import (
	"crypto/pbkdf2"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
)

const (
	AutoGenKeyLength = 16
	Base62Chars      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	PBKDF2Iterations = 100000
	PBKDF2Salt       = "kbdviz-Key-v1"
	sessionContext   = "kbdviz-Session-v1"
)

// ErrEmptyPassword is returned when deriving a key from an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// GenerateKey returns a random base62 password of AutoGenKeyLength
// characters. Random bytes at or above the largest multiple of 62 are drawn
// again so every character is equally likely.
func GenerateKey() (string, error) {
	const limit = 256 - 256%len(Base62Chars)
	key := make([]byte, 0, AutoGenKeyLength)
	buf := make([]byte, AutoGenKeyLength)
	for len(key) < AutoGenKeyLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate key: %w", err)
		}
		for _, b := range buf {
			if int(b) < limit && len(key) < AutoGenKeyLength {
				key = append(key, Base62Chars[int(b)%len(Base62Chars)])
			}
		}
	}
	return string(key), nil
}

// DeriveKey uses PBKDF2 to stretch any password to 32 bytes
func DeriveKey(password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	return pbkdf2.Key(sha256.New, password, []byte(PBKDF2Salt), PBKDF2Iterations, 32)
}

// DeriveSessionKey mixes the shared key with both nonces into a per
// connection key.
func DeriveSessionKey(key, serverNonce, clientNonce []byte) []byte {
	h := sha256.New()
	h.Write(key)
	h.Write(serverNonce)
	h.Write(clientNonce)
	h.Write([]byte(sessionContext))
	return h.Sum(nil)
}
