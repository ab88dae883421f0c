package fortuna

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"testing"
)

func newTestGen(t *testing.T) *Generator {
	t.Helper()
	gen, err := New(sha256.New, aes.NewCipher)
	if err != nil {
		t.Fatal(err)
	}
	return gen
}

func TestNew(t *testing.T) {
	gen := newTestGen(t)

	if len(gen.key) != 32 {
		t.Errorf("unexpected key size: %d", len(gen.key))
	}
	if len(gen.counter) != 16 {
		t.Errorf("unexpected counter size: %d", len(gen.counter))
	}
	if gen.seeded() {
		t.Error("new generator must not be seeded")
	}
}

func TestNewWithMismatchedCipher(t *testing.T) {
	// aes does not accept the 64 byte keys produced by sha512
	_, err := New(sha512.New, aes.NewCipher)
	if err == nil {
		t.Error("expected an error for mismatched key sizes")
	}

	// a cipher that always rejects its key
	rejecting := func(key []byte) (cipher.Block, error) {
		return nil, errors.New("no")
	}
	_, err = New(sha256.New, rejecting)
	if err == nil {
		t.Error("expected an error for rejecting cipher")
	}
}

func TestDeterminism(t *testing.T) {
	gen1 := newTestGen(t)
	gen2 := newTestGen(t)

	gen1.Reseed([]byte("the same seed"))
	gen2.Reseed([]byte("the same seed"))

	for _, n := range []uint{1, 16, 32, 50, 100} {
		out1 := gen1.PseudoRandomData(n)
		out2 := gen2.PseudoRandomData(n)
		if len(out1) != int(n) {
			t.Errorf("expected %d bytes, got %d", n, len(out1))
		}
		if !bytes.Equal(out1, out2) {
			t.Errorf("equally seeded generators diverged at request size %d", n)
		}
	}
}

func TestSeedSensitivity(t *testing.T) {
	gen1 := newTestGen(t)
	gen2 := newTestGen(t)

	seed1 := []byte{1, 2, 3, 4}
	seed2 := []byte{1, 2, 3, 5} // one bit flipped
	gen1.Reseed(seed1)
	gen2.Reseed(seed2)

	out1 := gen1.PseudoRandomData(64)
	out2 := gen2.PseudoRandomData(64)

	// expect avalanche: the streams must differ within the first cipher block
	if bytes.Equal(out1[:16], out2[:16]) {
		t.Error("outputs share a full block prefix despite differing seeds")
	}

	// and they should differ in many positions, not just a few
	diff := 0
	for i := range out1 {
		if out1[i] != out2[i] {
			diff++
		}
	}
	if diff < 32 {
		t.Errorf("outputs differ in only %d of 64 bytes", diff)
	}
}

func TestUnseededSentinel(t *testing.T) {
	gen := newTestGen(t)

	if gen.seeded() {
		t.Error("new generator must not be seeded")
	}

	// even an empty seed advances state and leaves the sentinel behind
	gen.Reseed(nil)
	if !gen.seeded() {
		t.Error("generator must be seeded after Reseed")
	}
	if gen.counter[0] != 1 {
		t.Errorf("unexpected counter value after seeding: %d", gen.counter[0])
	}

	gen.Reset()
	if gen.seeded() {
		t.Error("generator must not be seeded after Reset")
	}
}

func TestAutoSeed(t *testing.T) {
	gen := newTestGen(t)

	// requesting output from an unseeded generator must auto-seed it
	out := gen.PseudoRandomData(16)
	if len(out) != 16 {
		t.Errorf("expected 16 bytes, got %d", len(out))
	}
	if !gen.seeded() {
		t.Error("generator must be seeded after generating")
	}

	// reset and generate must auto-seed again
	gen.Reset()
	if gen.seeded() {
		t.Error("generator must not be seeded after Reset")
	}
	gen.PseudoRandomData(16)
	if !gen.seeded() {
		t.Error("generator must be seeded after generating")
	}

	// two auto-seeded generators must not produce the same stream
	other := newTestGen(t)
	if bytes.Equal(gen.PseudoRandomData(32), other.PseudoRandomData(32)) {
		t.Error("two auto-seeded generators produced identical output")
	}
}

func TestKeyRotation(t *testing.T) {
	gen1 := newTestGen(t)
	gen2 := newTestGen(t)

	gen1.Reseed([]byte("rotation"))
	gen2.Reseed([]byte("rotation"))

	keyBefore := make([]byte, len(gen1.key))
	copy(keyBefore, gen1.key)

	gen1.PseudoRandomData(10)
	if bytes.Equal(keyBefore, gen1.key) {
		t.Error("key was not rotated by generating output")
	}

	// gen1 served one extra request, so the two generators must have diverged
	if bytes.Equal(gen1.PseudoRandomData(32), gen2.PseudoRandomData(32)) {
		t.Error("generators did not diverge after differing request histories")
	}
}

func TestCounterAdvancement(t *testing.T) {
	gen, err := New(sha256.New, aes.NewCipher)
	if err != nil {
		t.Fatal(err)
	}

	gen.Reseed([]byte{1, 2, 3, 4})

	out := gen.PseudoRandomData(50)
	if len(out) != 50 {
		t.Fatalf("expected 50 bytes, got %d", len(out))
	}

	// post-seed counter is 1; 50 bytes need ceil(50/16) = 4 blocks, rekeying
	// needs ceil(32/16) = 2 more, so the counter must now be at 7
	if gen.counter[0] != 7 {
		t.Errorf("unexpected counter value: %d", gen.counter[0])
	}
	for _, b := range gen.counter[1:] {
		if b != 0 {
			t.Error("unexpected carry in counter")
		}
	}

	// a second request on the same instance must yield different bytes
	if bytes.Equal(out, gen.PseudoRandomData(50)) {
		t.Error("two consecutive requests returned identical bytes")
	}
}

func TestIncCounter(t *testing.T) {
	gen := newTestGen(t)

	gen.counter[0] = 255
	gen.incCounter()
	if gen.counter[0] != 0 || gen.counter[1] != 1 {
		t.Errorf("carry failed: %v", gen.counter)
	}

	// a full counter wraps around to zero
	for i := range gen.counter {
		gen.counter[i] = 255
	}
	gen.incCounter()
	if gen.seeded() {
		t.Errorf("counter did not wrap: %v", gen.counter)
	}
}

func TestReset(t *testing.T) {
	gen1 := newTestGen(t)
	gen2 := newTestGen(t)

	gen1.Reseed([]byte("first life"))
	gen1.PseudoRandomData(100)
	gen1.Reset()
	gen1.Reseed([]byte("second life"))

	gen2.Reseed([]byte("second life"))

	if !bytes.Equal(gen1.PseudoRandomData(32), gen2.PseudoRandomData(32)) {
		t.Error("reset generator does not match a fresh generator")
	}
}

func TestReseedValue(t *testing.T) {
	gen1 := newTestGen(t)
	gen2 := newTestGen(t)

	type seedValue struct {
		Name  string
		Count int
	}

	if err := gen1.ReseedValue(seedValue{"x", 7}); err != nil {
		t.Fatal(err)
	}
	if err := gen2.ReseedValue(seedValue{"x", 7}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(gen1.PseudoRandomData(32), gen2.PseudoRandomData(32)) {
		t.Error("equal seed values produced diverging generators")
	}

	// unserializable values must be reported
	if err := gen1.ReseedValue(func() {}); err == nil {
		t.Error("expected an error for unserializable seed value")
	}

	// nil still advances state
	gen1.Reset()
	if err := gen1.ReseedValue(nil); err != nil {
		t.Fatal(err)
	}
	if !gen1.seeded() {
		t.Error("generator must be seeded after ReseedValue(nil)")
	}
}

func TestRandSource(t *testing.T) {
	gen1 := newTestGen(t)
	gen2 := newTestGen(t)

	gen1.Seed(42)
	gen2.Seed(42)

	for i := 0; i < 10; i++ {
		v1 := gen1.Int63()
		v2 := gen2.Int63()
		if v1 < 0 {
			t.Errorf("Int63 returned negative value: %d", v1)
		}
		if v1 != v2 {
			t.Error("equally seeded sources diverged")
		}
	}

	gen1.Uint64()

	buf := make([]byte, 24)
	n, err := gen1.Read(buf)
	if err != nil || n != 24 {
		t.Errorf("Read returned %d, %v", n, err)
	}
}

func TestLargeRequest(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	gen1 := newTestGen(t)
	gen2 := newTestGen(t)
	gen1.Reseed([]byte("large"))
	gen2.Reseed([]byte("large"))

	// spans two rekey chunks (more than 65536 blocks of 16 bytes)
	const size = maxBlocks*16 + 160
	out1 := gen1.PseudoRandomData(size)
	out2 := gen2.PseudoRandomData(size)
	if len(out1) != size {
		t.Fatalf("expected %d bytes, got %d", size, len(out1))
	}
	if !bytes.Equal(out1, out2) {
		t.Error("equally seeded generators diverged on a chunked request")
	}
}
