package reembed

import "errors"

// ErrInvalidMaxAttempts indicates that maxAttempts was not positive.
var ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
