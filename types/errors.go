package types

import "fmt"

// ConfigurationError is raised by the normalizer before any derivation
// starts. It is fatal; no partial resource graph is produced.
type ConfigurationError struct {
	Field   string
	Value   string
	Message string
}

func (configurationError *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s (got %q)", configurationError.Field, configurationError.Message, configurationError.Value)
}

// DuplicateLocationError is raised when two hub network entries resolve to
// the same effective location.
type DuplicateLocationError struct {
	Location string
}

func (duplicateLocationError *DuplicateLocationError) Error() string {
	return fmt.Sprintf("more than one hub network resolves to location %q", duplicateLocationError.Location)
}

// ReferenceError is raised on a lookup for a resource group that was never
// resolved. It signals a contract violation between pipeline stages and is
// never defaulted away.
type ReferenceError struct {
	Scope    Scope
	Location string
}

func (referenceError *ReferenceError) Error() string {
	return fmt.Sprintf("no resource group resolved for scope %q in location %q", referenceError.Scope, referenceError.Location)
}
