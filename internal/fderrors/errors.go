// Package fderrors defines the error kinds the FDTD engine recognizes.
//
// Configuration errors are reported before any time stepping begins and
// abort the operation that triggered them; a failed update leaves the
// engine in its previous valid state. Invariant violations should never
// fire in a released build and are surfaced with enough context to
// reproduce them.
package fderrors

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates mismatched shot counts or array sizes
	// between the acquisition and wavelet tables.
	ErrDimensionMismatch = errors.New("fdtd: dimension mismatch between acquisition and wavelets")

	// ErrMissingWavelet indicates a source has no corresponding wavelet.
	ErrMissingWavelet = errors.New("fdtd: missing wavelet for source")

	// ErrOutOfDomain indicates a source or receiver's bounding cell lies
	// inside the CPML ring or outside the padded grid.
	ErrOutOfDomain = errors.New("fdtd: source or receiver out of domain")

	// ErrNonPositiveMaterial indicates K or rho is non-positive.
	ErrNonPositiveMaterial = errors.New("fdtd: non-positive material parameter")

	// ErrInvalidGeometry indicates P <= 0, dt <= 0, or Nt <= 0.
	ErrInvalidGeometry = errors.New("fdtd: invalid grid or timestep geometry")

	// ErrNotConfigured indicates Run was called before the engine had a
	// medium, acquisition, and wavelet table all set.
	ErrNotConfigured = errors.New("fdtd: engine not configured")

	// ErrRunning indicates an update was attempted while a run was in flight.
	ErrRunning = errors.New("fdtd: engine is running")
)

// ConfigError wraps a *ConfigurationError* with the sentinel it matches and
// enough context to diagnose it without re-running the operation.
type ConfigError struct {
	Kind    error
	Context string
}

func (e *ConfigError) Error() string {
	if e.Context == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Context)
}

func (e *ConfigError) Unwrap() error { return e.Kind }

// NewConfigError builds a ConfigError carrying diagnostic context.
func NewConfigError(kind error, context string) *ConfigError {
	return &ConfigError{Kind: kind, Context: context}
}

// InvariantViolation is a fatal internal assertion failure (e.g. a NaN
// entering the stored medium). It should never fire in a released build.
type InvariantViolation struct {
	Invariant string
	Context   string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("fdtd: invariant violated (%s): %s", e.Invariant, e.Context)
}

// NewInvariantViolation builds an InvariantViolation with diagnostic context.
func NewInvariantViolation(invariant, context string) *InvariantViolation {
	return &InvariantViolation{Invariant: invariant, Context: context}
}
