package rng

import (
	"errors"
	"io"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gofrs/uuid"

	"github.com/safebeam/randbase/config"
)

var (
	// Reader provides a global instance to read from the RNG.
	Reader io.Reader

	rngBytesRead int64
	rngLastFeed  = time.Now()

	reseedAfterSeconds config.IntOption
	reseedAfterBytes   config.IntOption

	bytesReadMetric = metrics.NewCounter(`randbase_rng_bytes_read_total`)
	reseedsMetric   = metrics.NewCounter(`randbase_rng_reseeds_total`)
)

// reader provides an io.Reader interface.
type reader struct{}

func init() {
	Reader = reader{}
}

// checkEntropy reseeds the generator from the feed queue if the reseed cadence
// has been exceeded. Must be called with rngLock held.
func checkEntropy() (err error) {
	if !rngReady {
		return errors.New("RNG is not ready yet")
	}
	if rngBytesRead > reseedAfterBytes() ||
		int64(time.Since(rngLastFeed).Seconds()) > reseedAfterSeconds() {
		select {
		case r := <-rngFeeder:
			rng.Reseed(r)
			reseedsMetric.Inc()
			rngBytesRead = 0
			rngLastFeed = time.Now()
		case <-time.After(1 * time.Second):
			return errors.New("failed to get new entropy")
		}
	}
	return nil
}

// Read reads random bytes into the supplied byte slice.
func Read(b []byte) (n int, err error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if err := checkEntropy(); err != nil {
		return 0, err
	}

	rngBytesRead += int64(len(b))
	bytesReadMetric.Add(len(b))
	return copy(b, rng.PseudoRandomData(uint(len(b)))), nil
}

// Read implements the io.Reader interface.
func (r reader) Read(b []byte) (n int, err error) {
	return Read(b)
}

// Bytes allocates a new byte slice of given length and fills it with random data.
func Bytes(n int) ([]byte, error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if err := checkEntropy(); err != nil {
		return nil, err
	}

	rngBytesRead += int64(n)
	bytesReadMetric.Add(n)
	return rng.Bytes(n), nil
}

// Number returns a random number from 0 to (incl.) max.
func Number(max uint64) (uint64, error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if err := checkEntropy(); err != nil {
		return 0, err
	}

	rngBytesRead += 8
	bytesReadMetric.Add(8)
	return rng.Number(max), nil
}

// UUID returns a random UUIDv4 generated from the RNG.
func UUID() (uuid.UUID, error) {
	b, err := Bytes(16)
	if err != nil {
		return uuid.Nil, err
	}

	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant RFC 4122
	return uuid.FromBytes(b)
}

// Feed feeds the given seed material directly to the RNG.
func Feed(data []byte) error {
	rngLock.Lock()
	defer rngLock.Unlock()

	if !rngReady {
		return errors.New("RNG is not ready yet")
	}

	rng.Reseed(data)
	reseedsMetric.Inc()
	rngBytesRead = 0
	rngLastFeed = time.Now()
	return nil
}
