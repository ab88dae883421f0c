// Package entropy gathers best effort seed material from the environment. It
// is used to seed a generator that was never seeded explicitly. Every source
// is treated as fallible, a failing source is skipped and reported, never
// fatal.
package entropy

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/safebeam/randbase/container"
)

// minGatherSize is the minimum total amount of seed material to collect. The
// OS random device tops up whatever the other sources delivered.
const minGatherSize = 2048

// Source describes a best effort entropy source. Bytes may return an error or
// an empty buffer, callers must tolerate both.
type Source interface {
	Name() string
	Bytes() ([]byte, error)
}

// Gather collects seed material from all known sources and returns it
// concatenated, together with a report of the sources that contributed. The
// returned error aggregates the failures of individual sources and is meant
// for logging only: the collected data is usable as long as it is not empty.
//
// fastSize controls how many bytes are requested from the fast,
// non-cryptographic generator, and should match the key size of the consumer.
func Gather(fastSize int) ([]byte, string, error) {
	buf := container.New()
	var report []string
	var errs *multierror.Error

	add := func(s Source) {
		data, err := s.Bytes()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			return
		}
		if len(data) > 0 {
			buf.Append(data)
			report = append(report, fmt.Sprintf("%s (%d bytes)", s.Name(), len(data)))
		}
	}

	add(&fastSource{size: fastSize})
	add(&diagnosticFiles{})
	add(&systemInfo{})

	// top up with the OS random device, the only source expected to deliver
	// real entropy in all environments
	need := minGatherSize - buf.Length()
	if need < 64 {
		need = 64
	}
	add(&osSource{size: need})

	add(&clock{})
	add(&networkInterfaces{})
	add(&userIdentity{})
	add(&process{})

	return buf.CompileData(), strings.Join(report, ", "), errs.ErrorOrNil()
}
