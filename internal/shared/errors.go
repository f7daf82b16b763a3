package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Content errors
	ErrContentLoad     = fmt.Errorf("content load failed")
	ErrSectionNotFound = fmt.Errorf("section not found")
	ErrVideoNotFound   = fmt.Errorf("video not found")

	// Storage errors
	ErrStorage = fmt.Errorf("storage operation failed")
	ErrLocked  = fmt.Errorf("database is in use by another session")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
