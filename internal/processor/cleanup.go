package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type outputDirs struct {
	videos      string
	subtitles   string
	transcripts string
	scripts     string
}

// outputDirs creates the per-kind output folders
func (p *implProcessor) outputDirs() (outputDirs, error) {
	root := p.cfg.Paths.Output
	dirs := outputDirs{
		videos:      filepath.Join(root, "videos"),
		subtitles:   filepath.Join(root, "subtitles"),
		transcripts: filepath.Join(root, "transcripts"),
		scripts:     filepath.Join(root, "scripts"),
	}

	for _, dir := range []string{dirs.videos, dirs.subtitles, dirs.transcripts, dirs.scripts} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return outputDirs{}, fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	return dirs, nil
}

// makeWorkDir creates an isolated scratch dir per job to avoid races
func (p *implProcessor) makeWorkDir() (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	dir, err := os.MkdirTemp(p.cfg.Paths.Temp, "job-*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	return dir, nil
}

// moveToArchived moves the manifest from input to archived folder
func (p *implProcessor) moveToArchived(ctx context.Context, manifestPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}
	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(manifestPath))

	p.logger.Info(ctx, "Archiving manifest: %s -> %s", manifestPath, destPath)

	if err := os.Rename(manifestPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

// cleanupDir removes a scratch directory, logs warning if fails
func (p *implProcessor) cleanupDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up: %s", dir)
	}
}
