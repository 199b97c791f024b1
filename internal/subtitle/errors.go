package subtitle

import "errors"

// ErrEncoding indicates the subtitle document could not be written.
var ErrEncoding = errors.New("subtitle encoding failed")
