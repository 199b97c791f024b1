package timescale

import "errors"

// ErrNoSpeech indicates there are no segments to anchor the scale to.
var ErrNoSpeech = errors.New("no speech detected")
