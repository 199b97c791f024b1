package media

import "errors"

// ErrMuxFailed indicates ffmpeg could not combine the video and narration.
var ErrMuxFailed = errors.New("mux failed")

// ErrBurnFailed indicates neither encoder could burn the subtitles in.
var ErrBurnFailed = errors.New("burn failed")
