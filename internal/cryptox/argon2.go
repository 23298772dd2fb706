package cryptox

import "golang.org/x/crypto/argon2"

func argon2Key(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}
