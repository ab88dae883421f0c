// Package fortuna implements the generator half of the Fortuna CSPRNG as
// described by Ferguson and Schneier: a block cipher running in counter mode,
// keyed from a double hash of seed material, rekeying itself after every
// request in order to provide backtracking resistance.
//
// The entropy accumulator and seed file management of the full Fortuna design
// are not part of this package.
package fortuna

import (
	"crypto/cipher"
	"fmt"
	"hash"
)

// maxBlocks gives the maximal number of blocks to generate from a single key
// until rekeying is required.
const maxBlocks = 1 << 16

// NewCipher is the type which represents the function to allocate a new block
// cipher. A typical example of a function of this type is aes.NewCipher.
type NewCipher func(key []byte) (cipher.Block, error)

// NewHash is the type which represents the function to allocate a new hash,
// e.g. sha256.New.
type NewHash func() hash.Hash

// Generator holds the state of one instance of the Fortuna pseudo random
// number generator. Randomness can be extracted using the PseudoRandomData()
// method. An unseeded Generator seeds itself from the environment on first
// use; use the Reseed() method to seed it explicitly.
//
// A Generator is not safe for concurrent use. If it is accessed from
// different goroutines, the callers must synchronize access using sync.Mutex
// or similar.
type Generator struct {
	newHash   NewHash
	newCipher NewCipher

	hash    hash.Hash
	cipher  cipher.Block
	key     []byte
	counter []byte
}

// New creates a new Generator using the given hash and block cipher
// algorithms. The cipher is keyed with hash-digest-sized keys and must accept
// that key length, otherwise an error is returned.
func New(newHash NewHash, newCipher NewCipher) (*Generator, error) {
	gen := &Generator{
		newHash:   newHash,
		newCipher: newCipher,
		hash:      newHash(),
	}

	gen.key = make([]byte, gen.hash.Size())
	c, err := newCipher(gen.key)
	if err != nil {
		return nil, fmt.Errorf("fortuna: cipher does not accept %d byte keys: %w", len(gen.key), err)
	}
	gen.cipher = c
	gen.counter = make([]byte, c.BlockSize())

	return gen, nil
}

// Reset reverts the generator to the unseeded state. The next generation
// request will trigger seeding from the environment; use Reseed() to seed
// explicitly. This is mostly useful for unit testing, to start the generator
// from a known state.
func (gen *Generator) Reset() {
	zero := make([]byte, gen.hash.Size())
	if err := gen.setKey(zero); err != nil {
		panic("fortuna: cipher rejected key it accepted at construction: " + err.Error())
	}
	wipe(gen.counter)
}

// setKey installs the given key and re-keys the cipher with it. The old key
// is scrubbed. The key length must match the hash digest size exactly.
func (gen *Generator) setKey(key []byte) error {
	if len(key) != gen.hash.Size() {
		return fmt.Errorf("fortuna: invalid key length %d, expected %d", len(key), gen.hash.Size())
	}
	c, err := gen.newCipher(key)
	if err != nil {
		return err
	}
	wipe(gen.key)
	gen.key = key
	gen.cipher = c
	return nil
}

// seeded returns whether the generator has been seeded. The all-zero counter
// marks the unseeded state, every seeding increments the counter and leaves
// that state behind.
func (gen *Generator) seeded() bool {
	for _, b := range gen.counter {
		if b != 0 {
			return true
		}
	}
	return false
}

// incCounter increments the counter, interpreted as a little endian
// multi-precision integer spanning the whole block.
func (gen *Generator) incCounter() {
	for i := range gen.counter {
		gen.counter[i]++
		if gen.counter[i] != 0 {
			return
		}
	}
}

// generateBlocks appends k blocks of keystream to data and returns the
// resulting slice. The size of a block is given by the block size of the
// underlying cipher, i.e. 16 bytes for AES.
func (gen *Generator) generateBlocks(data []byte, k int) []byte {
	blockSize := gen.cipher.BlockSize()
	block := make([]byte, blockSize)
	for i := 0; i < k; i++ {
		gen.cipher.Encrypt(block, gen.counter)
		data = append(data, block...)
		gen.incCounter()
	}
	wipe(block)
	return data
}

// rekey generates enough blocks to cover one key and installs them as the new
// key, discarding the key that produced them.
func (gen *Generator) rekey() {
	keySize := gen.hash.Size()
	blockSize := gen.cipher.BlockSize()
	numBlocks := (keySize + blockSize - 1) / blockSize

	buf := gen.generateBlocks(make([]byte, 0, numBlocks*blockSize), numBlocks)
	newKey := make([]byte, keySize)
	copy(newKey, buf)
	wipe(buf)

	if err := gen.setKey(newKey); err != nil {
		panic("fortuna: cipher rejected key it accepted at construction: " + err.Error())
	}
}

// PseudoRandomData returns a slice of n pseudo-random bytes. The result can
// be used as a replacement for a sequence of n uniformly distributed and
// independent bytes.
//
// If the generator has not been seeded yet, it seeds itself from the
// environment first; see SeedFromEnvironment() for what that entails. After
// every 65536 generated blocks, and once more before returning, the generator
// replaces its key with fresh keystream, so its state after the call cannot
// be used to recompute the returned data.
func (gen *Generator) PseudoRandomData(n uint) []byte {
	if !gen.seeded() {
		gen.SeedFromEnvironment()
	}

	blockSize := gen.cipher.BlockSize()
	numBlocks := (int(n) + blockSize - 1) / blockSize

	res := make([]byte, 0, numBlocks*blockSize)
	for numBlocks > 0 {
		count := numBlocks
		if count > maxBlocks {
			count = maxBlocks
		}
		res = gen.generateBlocks(res, count)
		numBlocks -= count

		gen.rekey()
	}

	return res[:n]
}

// Read implements the io.Reader interface. It never returns an error.
func (gen *Generator) Read(p []byte) (int, error) {
	copy(p, gen.PseudoRandomData(uint(len(p))))
	return len(p), nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
