package corpus

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrNoDocuments indicates a corpus directory holds no .txt documents.
	ErrNoDocuments = errors.New("corpus: no documents")

	// ErrMalformedAnnotation indicates a standoff annotation line could not
	// be parsed or does not fit its document.
	ErrMalformedAnnotation = errors.New("corpus: malformed annotation")
)
