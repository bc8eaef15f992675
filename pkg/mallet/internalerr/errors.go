package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrConfiguration = errors.New("invalid configuration")
	ErrLaunch        = errors.New("executable could not be launched")
	ErrExternalTool  = errors.New("external tool reported failure")
	ErrFormat        = errors.New("unrecognized output format")
	ErrNotFound      = errors.New("not found")
)
