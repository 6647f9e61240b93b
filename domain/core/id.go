package core

import "github.com/google/uuid"

// RunID identifies one detection run in logs and output metadata.
type RunID string

// NewRunID generates a fresh run identifier.
func NewRunID() RunID {
	return RunID(uuid.NewString())
}

func (id RunID) String() string {
	return string(id)
}

// Short returns the first identifier block for compact log prefixes.
func (id RunID) Short() string {
	s := string(id)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
