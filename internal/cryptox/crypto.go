// Package cryptox implements the sealing primitives for the secure credential
// vault: argon2id key derivation from a device passphrase and AES-GCM
// authenticated encryption of individual values.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
)

// NonceSize is the AES-GCM nonce length generated by Seal.
const NonceSize = 12

// DeriveKey derives a 32-byte AES key from a passphrase and a per-device
// salt using argon2id. Parameters follow the library recommendation for
// interactive logins (time=1, memory=64MiB, threads=4).
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2Key(passphrase, salt)
}

// Seal encrypts plaintext with AES-GCM under the given key. A fresh random
// nonce is generated per call and returned alongside the ciphertext.
//
// The key must be a valid AES key length; DeriveKey always produces one.
func Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	return aesgcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Open decrypts ciphertext produced by Seal. It fails if the key or nonce is
// wrong or the ciphertext was tampered with.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}
