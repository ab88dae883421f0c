package info

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	Set("randbase", "0.1.0", "BSD-3-Clause")

	i := GetInfo()
	if i.Name != "randbase" {
		t.Errorf("unexpected name: %s", i.Name)
	}
	if !strings.HasPrefix(Version(), "0.1.0") {
		t.Errorf("unexpected version: %s", Version())
	}
	if !strings.Contains(FullVersion(), "randbase") {
		t.Errorf("full version misses name: %s", FullVersion())
	}
}
