// Package info holds the name, version and license of the program.
package info

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

var (
	name    = "[NAME]"
	version = "dev build"
	license = "[license unknown]"

	info     *Info
	loadInfo sync.Once
)

// Info holds the programs meta information.
type Info struct {
	Name    string
	Version string
	License string

	Commit     string
	CommitTime string
	Dirty      bool
}

// Set sets meta information via the main routine. This should be the first
// thing your program calls.
func Set(setName string, setVersion string, setLicenseName string) {
	name = setName
	license = setLicenseName

	if setVersion != "" {
		version = setVersion
	}
}

// GetInfo returns all the meta information about the program.
func GetInfo() *Info {
	loadInfo.Do(func() {
		buildSettings := make(map[string]string)
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range buildInfo.Settings {
				buildSettings[setting.Key] = setting.Value
			}
		}

		info = &Info{
			Name:       name,
			Version:    version,
			License:    license,
			Commit:     buildSettings["vcs.revision"],
			CommitTime: buildSettings["vcs.time"],
			Dirty:      buildSettings["vcs.modified"] == "true",
		}

		if info.Commit == "" {
			info.Commit = "[commit unknown]"
		}
		if info.CommitTime == "" {
			info.CommitTime = "[commit time unknown]"
		}
	})

	return info
}

// Version returns the short version string.
func Version() string {
	if GetInfo().Dirty {
		return version + "*"
	}
	return version
}

// FullVersion returns the full and detailed version string.
func FullVersion() string {
	i := GetInfo()
	builder := new(strings.Builder)

	builder.WriteString(fmt.Sprintf("%s %s\n", i.Name, Version()))
	builder.WriteString(fmt.Sprintf("\nbuilt with %s (%s) %s/%s\n", runtime.Version(), runtime.Compiler, runtime.GOOS, runtime.GOARCH))
	builder.WriteString(fmt.Sprintf("\ncommit %s\n", i.Commit))
	builder.WriteString(fmt.Sprintf("  at %s\n", i.CommitTime))
	builder.WriteString(fmt.Sprintf("\nLicensed under the %s license.", license))

	return builder.String()
}
