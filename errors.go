package agree

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrCorpusNotFound indicates a corpus directory does not exist.
	ErrCorpusNotFound = errors.New("agree: corpus directory not found")

	// ErrCorpusLoad indicates a corpus directory exists but could not be
	// loaded.
	ErrCorpusLoad = errors.New("agree: corpus load failed")
)
