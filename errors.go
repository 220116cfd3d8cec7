package sheetxml

import "errors"

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrOutOfRange         = errors.New("row index out of range")
	ErrDuplicateSheet     = errors.New("duplicate sheet name")
	ErrIOFailure          = errors.New("write failed")
	ErrInvariantViolation = errors.New("invariant violation")
)
