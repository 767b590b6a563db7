package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch     = errors.New("checksum mismatch: file may be corrupted")
	ErrUnsupportedVersion   = errors.New("unsupported format version")
	ErrParameterCount       = errors.New("parameter count mismatch")
	ErrNonFinite            = errors.New("non-finite value")
	ErrArchitectureMismatch = errors.New("architecture mismatch")
)

// ValidationError provides detailed information about validation failures.
// It unwraps to one of the sentinel errors above.
type ValidationError struct {
	Err     error  // Sentinel error
	Field   string // Checkpoint field involved (e.g., "parameters", "loss")
	Index   int    // Element index for slice fields, -1 otherwise
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%v: %s[%d]: %s", e.Err, e.Field, e.Index, e.Details)
	}
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Field, e.Details)
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
