package config

import (
	"sync"

	"github.com/tevino/abool"
)

type (
	// StringOption defines the returned function by GetAsString.
	StringOption func() string
	// IntOption defines the returned function by GetAsInt.
	IntOption func() int64
	// BoolOption defines the returned function by GetAsBool.
	BoolOption func() bool
)

var (
	validityFlag     = abool.NewBool(true)
	validityFlagLock sync.RWMutex
)

// getValidityFlag returns a flag that signifies if the configuration has been
// changed. This flag must not be changed, only read.
func getValidityFlag() *abool.AtomicBool {
	validityFlagLock.RLock()
	defer validityFlagLock.RUnlock()
	return validityFlag
}

// signalChanges marks the current validity flag as dirty.
func signalChanges() {
	validityFlagLock.Lock()
	validityFlag.SetTo(false)
	validityFlag = abool.NewBool(true)
	validityFlagLock.Unlock()
}

// GetAsString returns a function that returns the wanted string with high performance.
func GetAsString(key string, fallback string) StringOption {
	valid := getValidityFlag()
	value := findStringValue(key, fallback)
	return func() string {
		if !valid.IsSet() {
			valid = getValidityFlag()
			value = findStringValue(key, fallback)
		}
		return value
	}
}

// GetAsInt returns a function that returns the wanted int with high performance.
func GetAsInt(key string, fallback int64) IntOption {
	valid := getValidityFlag()
	value := findIntValue(key, fallback)
	return func() int64 {
		if !valid.IsSet() {
			valid = getValidityFlag()
			value = findIntValue(key, fallback)
		}
		return value
	}
}

// GetAsBool returns a function that returns the wanted bool with high performance.
func GetAsBool(key string, fallback bool) BoolOption {
	valid := getValidityFlag()
	value := findBoolValue(key, fallback)
	return func() bool {
		if !valid.IsSet() {
			valid = getValidityFlag()
			value = findBoolValue(key, fallback)
		}
		return value
	}
}

// findValue finds the correct value in the user or default config.
func findValue(key string) interface{} {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	option, ok := options[key]
	if !ok {
		return nil
	}

	if option.activeValue != nil {
		return option.activeValue
	}
	return option.DefaultValue
}

func findStringValue(key string, fallback string) string {
	result := findValue(key)
	if result == nil {
		return fallback
	}
	if v, ok := result.(string); ok {
		return v
	}
	return fallback
}

func findIntValue(key string, fallback int64) int64 {
	result := findValue(key)
	if result == nil {
		return fallback
	}
	switch v := result.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float64:
		return int64(v)
	}
	return fallback
}

func findBoolValue(key string, fallback bool) bool {
	result := findValue(key)
	if result == nil {
		return fallback
	}
	if v, ok := result.(bool); ok {
		return v
	}
	return fallback
}
