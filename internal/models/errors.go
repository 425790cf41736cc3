package models

import "errors"

// Contract violations rejected before the pipeline runs
var (
	ErrEmptyRoster   = errors.New("race has no entrants")
	ErrDuplicateSlot = errors.New("duplicate slot in race")
	ErrInvalidSlot   = errors.New("slot must be positive")
)
