package watcher

import (
	"context"
	"errors"
)

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles a manifest dropped in the input folder
type EventHandler func(ctx context.Context, manifestPath string) error

// ErrLocked indicates another watcher already owns the input folder.
var ErrLocked = errors.New("input folder is locked by another watcher")

// LockFile is created inside the input folder while a watcher runs.
const LockFile = ".caption-synth.lock"
