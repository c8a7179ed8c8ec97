package hoo

import "errors"

var (
	ErrInvalidConfig   = errors.New("invalid optimiser configuration")
	ErrEmptyPath       = errors.New("cannot backpropagate an empty path")
	ErrHistoryFull     = errors.New("sample history is full")
	ErrHistoryMismatch = errors.New("samples and rewards differ in length")
	ErrOutsideDomain   = errors.New("sample lies outside the search domain")
)
