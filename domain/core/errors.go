package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Data model errors
	ErrInvalidRegion = errors.New("invalid region")
	ErrChromMismatch = errors.New("chromosome mismatch")
	ErrUnknownChrom  = errors.New("unknown chromosome")

	// Orchestration integrity errors
	ErrDuplicateMotif = errors.New("duplicate motif id in overview table")
	ErrUnknownMotif   = errors.New("motif id not in catalog")
	ErrSinkClosed     = errors.New("site sink already closed")

	// Statistics errors
	ErrEmptySample = errors.New("empty sample")
)

// NewIntegrityError wraps an integrity error with the offending unit. These
// signal an orchestration bug upstream, not a data problem.
func NewIntegrityError(unit string, err error) error {
	return fmt.Errorf("%w: %s", err, unit)
}

// IsIntegrityError reports whether err indicates a broken orchestration
// invariant.
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrDuplicateMotif) || errors.Is(err, ErrUnknownMotif)
}
