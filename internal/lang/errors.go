package lang

import "errors"

// ErrInvalid indicates a language hint that is not a known ISO 639-1 code.
var ErrInvalid = errors.New("invalid language")
