package adapter

import "errors"

// Document errors
var (
	// ErrNotBranch indicates that a document root or patch target is a scalar
	// where a map or sequence is required.
	ErrNotBranch = errors.New("node has no children")

	// ErrUnsupportedFile indicates a file extension the loaders do not read.
	ErrUnsupportedFile = errors.New("unsupported document type")
)

// Patch errors
var (
	// ErrPatchPath indicates a JSON pointer that does not resolve in the
	// document.
	ErrPatchPath = errors.New("patch path does not resolve")

	// ErrUnsupportedPatchOp indicates a patch operation other than add,
	// remove, replace or test.
	ErrUnsupportedPatchOp = errors.New("unsupported patch operation")

	// ErrPatchTestFailed indicates that a test operation did not match.
	ErrPatchTestFailed = errors.New("patch test failed")
)
