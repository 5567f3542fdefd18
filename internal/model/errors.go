package model

import "errors"

// Index errors
var (
	// ErrIndexOutOfRange indicates that an index does not address an element.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidPath indicates that an index path could not be parsed or does
	// not resolve to a position in the current tree.
	ErrInvalidPath = errors.New("invalid index path")
)

// Selection errors
var (
	// ErrInvalidState indicates that a view was read after the selection it
	// was built from changed.
	ErrInvalidState = errors.New("selection changed since this view was read")
)

// Source errors
var (
	// ErrNotCollection indicates that a value assigned as a source is not an
	// indexable collection.
	ErrNotCollection = errors.New("value is not a collection")
)
