package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingInput means no demand file was supplied.
	ErrMissingInput = errors.New("demand file is required")
	// ErrMissingFile means the reference cost file does not exist.
	ErrMissingFile = errors.New("reference cost file not found")
	// ErrNegativeSaving means a computed saving potential came out below zero.
	ErrNegativeSaving = errors.New("saving potential must be non-negative")
)

// SchemaError reports required columns absent from a table header.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
}

// DuplicateLaneError reports lanes defined more than once in the cost reference.
type DuplicateLaneError struct {
	Lanes []LaneKey
}

func (e *DuplicateLaneError) Error() string {
	keys := make([]string, 0, len(e.Lanes))
	for _, k := range e.Lanes {
		keys = append(keys, k.String())
	}
	return fmt.Sprintf("duplicate lanes in cost reference: %s", strings.Join(keys, ", "))
}
