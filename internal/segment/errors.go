package segment

import "errors"

// ErrConversion indicates the normalized buffer does not match the input
// sample count.
var ErrConversion = errors.New("sample conversion failed")

// ErrEngine indicates the recognition engine failed to load or run.
var ErrEngine = errors.New("recognition engine failed")
