package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrAlreadyExists       = errors.New("entity already exists")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNoGeneratorsEnabled = errors.New("no generators enabled")
	ErrGenerationActive    = errors.New("a generation is already running for this reading")
	ErrSessionSettled      = errors.New("generation session already settled")
	ErrSessionTornDown     = errors.New("generation session torn down")
	ErrReadingTooLong      = errors.New("reading exceeds the generation token limit")
	ErrRateLimited         = errors.New("generation rate limit reached")
	ErrAnalyzerFailed      = errors.New("text analysis failed")
)
