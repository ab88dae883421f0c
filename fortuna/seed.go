package fortuna

import (
	"encoding/binary"

	"github.com/fxamacker/cbor/v2"

	"github.com/safebeam/randbase/entropy"
	"github.com/safebeam/randbase/log"
)

// Reseed uses the current generator state and the given seed material to
// update the generator state. The new key is derived by hashing the old key
// followed by the seed material, and hashing the result once more with a
// fresh instance of the same algorithm. The single hash output is never used
// directly as the new key, defending against hash-extension style related-key
// attacks. Knowledge of the new state does not allow reconstruction of
// previous output.
//
// An empty seed still advances the generator state, since the hash of the
// current key alone yields a new key.
func (gen *Generator) Reseed(seed []byte) {
	gen.hash.Write(gen.key)
	gen.hash.Write(seed)
	first := gen.hash.Sum(nil)
	gen.hash.Reset()

	second := gen.newHash()
	second.Write(first)
	newKey := second.Sum(nil)
	wipe(first)

	if err := gen.setKey(newKey); err != nil {
		panic("fortuna: cipher rejected key it accepted at construction: " + err.Error())
	}

	// leave the unseeded sentinel behind and advance the keystream position
	gen.incCounter()
}

// ReseedInt64 is like Reseed, but takes the seed as an int64 instead of a
// byte slice.
func (gen *Generator) ReseedInt64(seed int64) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(seed))
	gen.Reseed(b)
}

// ReseedValue serializes the given value and reseeds the generator with it.
// Any value that can be serialized is accepted; a nil value reseeds with
// empty input, which still advances the generator state.
func (gen *Generator) ReseedValue(value interface{}) error {
	data, err := cbor.Marshal(value)
	if err != nil {
		return err
	}
	gen.Reseed(data)
	return nil
}

// SeedFromEnvironment seeds the generator with best effort entropy gathered
// from the environment: the system random number generator, OS diagnostic
// files, the current time, network interfaces, user account details and the
// process ID. Optional sources being unavailable is tolerated silently.
//
// This is called automatically when output is requested from a generator that
// has never been seeded. It may block on the OS random device; callers
// needing bounded latency should call Reseed() beforehand.
func (gen *Generator) SeedFromEnvironment() {
	data, report, err := entropy.Gather(gen.hash.Size())
	if err != nil {
		log.Warningf("fortuna: some entropy sources failed: %s", err)
	}
	log.Tracef("fortuna: initial seed based on %s", report)

	gen.Reseed(data)
	wipe(data)
}

// Seed discards all previous state and reseeds with the given value, allowing
// to generate reproducible output. Together with Int63() this makes the
// Generator usable as a rand.Source.
//
// Use of this method should be avoided in cryptographic applications, since
// reproducible output will lead to security vulnerabilities.
func (gen *Generator) Seed(seed int64) {
	gen.Reset()
	gen.ReseedInt64(seed)
}
