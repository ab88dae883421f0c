// Package rng provides a feedable CSPRNG service.
//
// The CSPRNG is a Fortuna generator. By default it is fed by two sources:
// the OS RNG and entropy gathered from scheduler jitter.
package rng

import (
	"sync"

	"github.com/safebeam/randbase/config"
	"github.com/safebeam/randbase/fortuna"
	"github.com/safebeam/randbase/modules"
)

var (
	rng      *fortuna.Generator
	rngLock  sync.Mutex
	rngReady = false

	rngCipherOption config.StringOption
	rngHashOption   config.StringOption

	shutdownSignal = make(chan struct{})
)

func init() {
	modules.Register("random", prep, start, stop)
}

func prep() error {
	err := config.Register(&config.Option{
		Name:            "RNG Cipher",
		Key:             "random/rng_cipher",
		Description:     "Cipher to use for the Fortuna RNG. Requires restart to take effect.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    "aes",
		ValidationRegex: "^(aes|serpent)$",
	})
	if err != nil {
		return err
	}
	rngCipherOption = config.GetAsString("random/rng_cipher", "aes")

	err = config.Register(&config.Option{
		Name:            "RNG Hash",
		Key:             "random/rng_hash",
		Description:     "Hash to use for reseeding the Fortuna RNG. Requires restart to take effect.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    "sha256d",
		ValidationRegex: "^(sha256|sha256d|blake3)$",
	})
	if err != nil {
		return err
	}
	rngHashOption = config.GetAsString("random/rng_hash", "sha256d")

	err = config.Register(&config.Option{
		Name:            "Minimum Feed Entropy",
		Key:             "random/min_feed_entropy",
		Description:     "The minimum amount of entropy before an entropy source is fed to the RNG, in bits.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    256,
		ValidationRegex: "^[0-9]{3,5}$",
	})
	if err != nil {
		return err
	}
	minFeedEntropy = config.GetAsInt("random/min_feed_entropy", 256)

	err = config.Register(&config.Option{
		Name:            "Reseed after x seconds",
		Key:             "random/reseed_after_seconds",
		Description:     "Number of seconds until reseed",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    360,
		ValidationRegex: "^[1-9][0-9]{1,5}$",
	})
	if err != nil {
		return err
	}
	reseedAfterSeconds = config.GetAsInt("random/reseed_after_seconds", 360)

	err = config.Register(&config.Option{
		Name:            "Reseed after x bytes",
		Key:             "random/reseed_after_bytes",
		Description:     "Number of fetched bytes until reseed",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    1000000,
		ValidationRegex: "^[1-9][0-9]{2,9}$",
	})
	if err != nil {
		return err
	}
	reseedAfterBytes = config.GetAsInt("random/reseed_after_bytes", 1000000)

	return nil
}

func newGenerator() (*fortuna.Generator, error) {
	newHash, err := fortuna.Hash(rngHashOption())
	if err != nil {
		return nil, err
	}
	newCipher, err := fortuna.Cipher(rngCipherOption())
	if err != nil {
		return nil, err
	}
	return fortuna.New(newHash, newCipher)
}

// start starts the RNG. Normally, this should be only called by the modules package.
func start() error {
	rngLock.Lock()
	defer rngLock.Unlock()

	var err error
	rng, err = newGenerator()
	if err != nil {
		return err
	}
	rngReady = true

	// random source: OS
	go osFeeder()

	// random source: goroutine ticks
	go tickFeeder()

	// full feeder
	go fullFeeder()

	return nil
}

func stop() error {
	close(shutdownSignal)
	return nil
}
