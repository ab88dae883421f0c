package entropy

import (
	"bytes"
	"testing"
)

func TestGather(t *testing.T) {
	data, report, err := Gather(32)
	if err != nil {
		// optional sources may fail, but the data must still be usable
		t.Logf("some sources failed: %s", err)
	}
	if len(data) < minGatherSize {
		t.Errorf("expected at least %d bytes, got %d", minGatherSize, len(data))
	}
	if report == "" {
		t.Error("expected a report of contributing sources")
	}
	t.Logf("gathered %d bytes from %s", len(data), report)

	// two gathers must differ
	data2, _, _ := Gather(32)
	if bytes.Equal(data, data2) {
		t.Error("two gathers returned identical data")
	}
}

func TestSources(t *testing.T) {
	for _, s := range []Source{
		&fastSource{size: 32},
		&osSource{size: 64},
		&clock{},
		&process{},
	} {
		data, err := s.Bytes()
		if err != nil {
			t.Errorf("%s failed: %s", s.Name(), err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s returned no data", s.Name())
		}
	}

	// best effort sources may fail, but must not panic
	for _, s := range []Source{
		&diagnosticFiles{},
		&systemInfo{},
		&networkInterfaces{},
		&userIdentity{},
	} {
		_, _ = s.Bytes()
	}

	// a zero-sized fast source returns no data
	data, err := (&fastSource{}).Bytes()
	if err != nil || len(data) != 0 {
		t.Error("expected empty result from zero-sized fast source")
	}
}
