package rng

import (
	"testing"

	"github.com/safebeam/randbase/config"
)

func init() {
	err := prep()
	if err != nil {
		panic(err)
	}

	err = start()
	if err != nil {
		panic(err)
	}
}

func TestRNG(t *testing.T) {
	b := make([]byte, 32)
	_, err := Read(b)
	if err != nil {
		t.Errorf("Read failed: %s", err)
	}
	_, err = Reader.Read(b)
	if err != nil {
		t.Errorf("Read failed: %s", err)
	}

	_, err = Bytes(32)
	if err != nil {
		t.Errorf("Bytes failed: %s", err)
	}

	n, err := Number(10)
	if err != nil {
		t.Errorf("Number failed: %s", err)
	}
	if n > 10 {
		t.Errorf("Number out of range: %d", n)
	}

	err = Feed([]byte{1, 2, 3, 4})
	if err != nil {
		t.Errorf("Feed failed: %s", err)
	}
}

func TestNewGenerator(t *testing.T) {
	if err := config.SetConfigOption("random/rng_cipher", "aes"); err != nil {
		t.Fatal(err)
	}
	if _, err := newGenerator(); err != nil {
		t.Errorf("failed to create aes generator: %s", err)
	}

	if err := config.SetConfigOption("random/rng_cipher", "serpent"); err != nil {
		t.Fatal(err)
	}
	if _, err := newGenerator(); err != nil {
		t.Errorf("failed to create serpent generator: %s", err)
	}

	if err := config.SetConfigOption("random/rng_hash", "blake3"); err != nil {
		t.Fatal(err)
	}
	if _, err := newGenerator(); err != nil {
		t.Errorf("failed to create blake3 generator: %s", err)
	}
}

func TestUUID(t *testing.T) {
	u, err := UUID()
	if err != nil {
		t.Fatal(err)
	}
	if u.Version() != 4 {
		t.Errorf("unexpected UUID version: %d", u.Version())
	}

	u2, err := UUID()
	if err != nil {
		t.Fatal(err)
	}
	if u == u2 {
		t.Error("two UUIDs are identical")
	}
}

func TestNumberRandomness(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	var subjects uint64 = 10
	var testSize uint64 = 10000

	results := make([]uint64, int(subjects))
	for i := 0; i < int(subjects*testSize); i++ {
		n, err := Number(subjects - 1)
		if err != nil {
			t.Fatal(err)
		}
		results[int(n)]++
	}

	// catch big mistakes in the number function, eg. massive % bias
	lowerMargin := testSize - testSize/50
	upperMargin := testSize + testSize/50
	for subject, result := range results {
		if result < lowerMargin || result > upperMargin {
			t.Errorf("subject %d is outside of margins: %d", subject, result)
		}
	}
}
