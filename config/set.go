package config

import (
	"errors"
	"fmt"
)

// ErrInvalidOptionType is returned by SetConfigOption if the value does not
// match the type of the option.
var ErrInvalidOptionType = errors.New("invalid option value type")

func validateValue(option *Option, value interface{}) error {
	switch v := value.(type) {
	case string:
		if option.OptType != OptTypeString {
			return fmt.Errorf("%w: expected %s for %s", ErrInvalidOptionType, "string", option.Key)
		}
		if option.compiledRegex != nil && !option.compiledRegex.MatchString(v) {
			return fmt.Errorf("config: validation of %s failed: %q did not match %q", option.Key, v, option.ValidationRegex)
		}
	case int, int32, int64, uint, uint32, uint64:
		if option.OptType != OptTypeInt {
			return fmt.Errorf("%w: expected %s for %s", ErrInvalidOptionType, "int", option.Key)
		}
		if option.compiledRegex != nil && !option.compiledRegex.MatchString(fmt.Sprintf("%d", v)) {
			return fmt.Errorf("config: validation of %s failed: %d did not match %q", option.Key, v, option.ValidationRegex)
		}
	case bool:
		if option.OptType != OptTypeBool {
			return fmt.Errorf("%w: expected %s for %s", ErrInvalidOptionType, "bool", option.Key)
		}
	default:
		return fmt.Errorf("%w: %T", ErrInvalidOptionType, value)
	}
	return nil
}

// SetConfigOption sets a single value in the user defined config. Setting a
// nil value reverts the option to its default.
func SetConfigOption(key string, value interface{}) error {
	optionsLock.Lock()
	defer optionsLock.Unlock()

	option, ok := options[key]
	if !ok {
		return fmt.Errorf("config: option %q does not exist", key)
	}

	if value == nil {
		option.activeValue = nil
	} else {
		if err := validateValue(option, value); err != nil {
			return err
		}
		option.activeValue = value
	}

	signalChanges()
	return nil
}
