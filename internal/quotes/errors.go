package quotes

import "errors"

// ErrEmptyField indicates a quote was submitted without text or category.
var ErrEmptyField = errors.New("quote text and category must not be empty")

// ErrMalformedPayload indicates an import or remote payload is not a list of quotes.
var ErrMalformedPayload = errors.New("payload is not an array of {text, category} quotes")

// ErrNetworkFailure indicates the remote quote source could not be reached or answered with an error.
var ErrNetworkFailure = errors.New("remote quote source unavailable")
