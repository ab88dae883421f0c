package config

import (
	"regexp"
)

// Variable Type IDs for external identification.
const (
	OptTypeString uint8 = 1
	OptTypeInt    uint8 = 2
	OptTypeBool   uint8 = 3

	ExpertiseLevelUser      uint8 = 1
	ExpertiseLevelExpert    uint8 = 2
	ExpertiseLevelDeveloper uint8 = 3
)

// Option describes a configuration option.
type Option struct {
	Name            string
	Key             string // category/sub/key
	Description     string
	ExpertiseLevel  uint8
	OptType         uint8
	DefaultValue    interface{}
	ValidationRegex string

	compiledRegex *regexp.Regexp
	activeValue   interface{}
}
