package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Burn renders subtitlePath into the picture of videoPath, writing outPath.
// ffmpeg runs inside an isolated temp dir and references the subtitle by a
// bare relative name, which sidesteps filter-graph escaping of the path.
func (o *Orchestrator) Burn(ctx context.Context, videoPath, subtitlePath, outPath string) error {
	o.logger.Info(ctx, "Burning subtitles into video: %s", videoPath)

	if err := os.MkdirAll(o.opts.TempDir, 0755); err != nil {
		return fmt.Errorf("%w: create temp root: %v", ErrBurnFailed, err)
	}
	tempDir, err := os.MkdirTemp(o.opts.TempDir, "burn-*")
	if err != nil {
		return fmt.Errorf("%w: create temp dir: %v", ErrBurnFailed, err)
	}
	defer os.RemoveAll(tempDir)

	subFilename := "subtitle" + filepath.Ext(subtitlePath)
	if err := copyFile(subtitlePath, filepath.Join(tempDir, subFilename)); err != nil {
		return fmt.Errorf("%w: copy subtitle to temp: %v", ErrBurnFailed, err)
	}

	absVideoPath, err := filepath.Abs(videoPath)
	if err != nil {
		return fmt.Errorf("%w: resolve video path: %v", ErrBurnFailed, err)
	}
	tempOutput := filepath.Join(tempDir, "output"+filepath.Ext(outPath))

	args := []string{
		"-y",
		"-i", absVideoPath,
		"-vf", "subtitles=" + subFilename, // Relative to tempDir, no quoting needed
		"-c:v", o.opts.Encoder,
		"-b:v", o.opts.VideoBitrate,
		"-c:a", "copy",
		tempOutput,
	}

	o.logger.Debug(ctx, "FFmpeg command in dir %s: ffmpeg -vf subtitles=%s ...", tempDir, subFilename)

	if _, err := o.executor.ExecuteInDir(ctx, tempDir, "ffmpeg", args...); err != nil {
		o.logger.Warn(ctx, "Encoder %s failed, trying software encoder: %v", o.opts.Encoder, err)
		if err := o.burnSoftware(ctx, tempDir, absVideoPath, subFilename, tempOutput); err != nil {
			return fmt.Errorf("%w: both hardware and software encoders failed: %v", ErrBurnFailed, err)
		}
	}

	if err := moveFile(tempOutput, outPath); err != nil {
		return fmt.Errorf("%w: move output to final location: %v", ErrBurnFailed, err)
	}

	o.logger.Info(ctx, "Subtitles burned: %s", outPath)
	return nil
}

// burnSoftware retries with libx264.
func (o *Orchestrator) burnSoftware(ctx context.Context, workDir, videoPath, subFilename, outputPath string) error {
	args := []string{
		"-y",
		"-i", videoPath,
		"-vf", "subtitles=" + subFilename,
		"-c:v", "libx264",
		"-preset", o.opts.Preset,
		"-crf", "23",
		"-c:a", "copy",
		outputPath,
	}

	if _, err := o.executor.ExecuteInDir(ctx, workDir, "ffmpeg", args...); err != nil {
		return fmt.Errorf("software encoder: %w", err)
	}
	return nil
}

// moveFile renames src to dst, copying across filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return out.Close()
}
