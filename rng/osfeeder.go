package rng

import (
	"crypto/rand"
	"time"

	"github.com/safebeam/randbase/log"
)

func osFeeder() {
	feeder := NewFeeder()
	for {
		select {
		case <-shutdownSignal:
			return
		default:
		}

		// get feed entropy
		minEntropyBytes := int(minFeedEntropy())/8 + 1
		if minEntropyBytes < 32 {
			minEntropyBytes = 64
		}

		// get entropy
		osEntropy := make([]byte, minEntropyBytes)
		n, err := rand.Read(osEntropy)
		if err != nil {
			log.Errorf("rng: could not read entropy from os: %s", err)
			time.Sleep(10 * time.Second)
			continue
		}
		if n != minEntropyBytes {
			log.Errorf("rng: could not read enough entropy from os: got only %d bytes instead of %d", n, minEntropyBytes)
			time.Sleep(10 * time.Second)
			continue
		}

		// feed
		feeder.SupplyEntropy(osEntropy, minEntropyBytes*8)
	}
}
