// Package fonterr defines the fatal error kinds raised while turning a pack
// configuration into a build graph. None of them is retried: generation is a
// pure function of its configuration, so the same input reproduces the same
// error.
package fonterr

import (
	"fmt"
)

// ConfigurationError reports a value that is absent from the lookup table
// it indexes.
type ConfigurationError struct {
	// Table names the lookup table, e.g. "weight" or "region".
	Table string
	// Key is the offending value.
	Key any
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v is not a known %s", e.Key, e.Table)
}

// ResolutionError reports a family/region pair without a dependency mapping.
type ResolutionError struct {
	Family string
	Region string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Region == "" {
		return fmt.Sprintf("resolution error: family %s has no dependency mapping", e.Family)
	}
	return fmt.Sprintf("resolution error: family %s has no source for region %q", e.Family, e.Region)
}

// SerializationError reports a descriptor that cannot be encoded for an
// external tool.
type SerializationError struct {
	Descriptor string
	Err        error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error: descriptor %s: %v", e.Descriptor, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Lookup returns a ConfigurationError for the given table and key.
func Lookup(table string, key any) error {
	return &ConfigurationError{Table: table, Key: key}
}
