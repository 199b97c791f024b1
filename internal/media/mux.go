package media

import (
	"context"
	"fmt"
)

// Mux replaces the audio of videoPath with audioPath, writing outPath. The
// video stream is copied; the output ends with the shorter stream.
func (o *Orchestrator) Mux(ctx context.Context, videoPath, audioPath, outPath string) error {
	o.logger.Info(ctx, "Muxing narration into video: %s + %s", videoPath, audioPath)

	args := []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v:0", // Video from the first input
		"-map", "1:a:0", // Audio from the narration
		"-c:v", "copy",
		"-c:a", o.opts.AudioCodec,
		"-shortest",
		outPath,
	}

	if _, err := o.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("%w: %v", ErrMuxFailed, err)
	}

	o.logger.Info(ctx, "Muxed video written: %s", outPath)
	return nil
}
