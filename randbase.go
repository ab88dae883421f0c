package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/safebeam/randbase/info"
	"github.com/safebeam/randbase/modules"
	"github.com/safebeam/randbase/rng"
)

var (
	showVersion bool
	byteCount   int
)

func init() {
	flag.BoolVar(&showVersion, "version", false, "show version and exit")
	flag.IntVar(&byteCount, "bytes", 32, "number of random bytes to fetch")
}

func main() {
	flag.Parse()

	info.Set("randbase", "0.1.0", "BSD-3-Clause")

	if showVersion {
		fmt.Println(info.FullVersion())
		return
	}

	if err := modules.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: failed to start: %s\n", err)
		os.Exit(1)
	}

	b, err := rng.Bytes(byteCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: failed to get random bytes: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(hex.EncodeToString(b))

	if err := modules.Shutdown(); err != nil {
		os.Exit(1)
	}
}
