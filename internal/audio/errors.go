package audio

import "errors"

// ErrFormat indicates an unreadable audio container or a malformed header.
var ErrFormat = errors.New("invalid audio format")
