package fortuna

import (
	"crypto/aes"
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/aead/serpent"
	"github.com/seehuhn/sha256d"
	"github.com/zeebo/blake3"
)

// Supported algorithm names.
var (
	cipherFuncs = map[string]NewCipher{
		"aes":     aes.NewCipher,
		"serpent": serpent.NewCipher,
	}

	hashFuncs = map[string]NewHash{
		"sha256":  sha256.New,
		"sha256d": sha256d.New,
		"blake3":  func() hash.Hash { return blake3.New() },
	}
)

// Cipher returns the named block cipher constructor. Supported are "aes" and
// "serpent".
func Cipher(name string) (NewCipher, error) {
	fn, ok := cipherFuncs[name]
	if !ok {
		return nil, fmt.Errorf("unknown or unsupported cipher: %s", name)
	}
	return fn, nil
}

// Hash returns the named hash constructor. Supported are "sha256", "sha256d"
// and "blake3".
func Hash(name string) (NewHash, error) {
	fn, ok := hashFuncs[name]
	if !ok {
		return nil, fmt.Errorf("unknown or unsupported hash: %s", name)
	}
	return fn, nil
}
