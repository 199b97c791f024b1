package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/caption-synth/internal/audio"
	"github.com/nguyentantai21042004/caption-synth/internal/lang"
	"github.com/nguyentantai21042004/caption-synth/internal/pipeline"
	"github.com/nguyentantai21042004/caption-synth/internal/timescale"
	"github.com/nguyentantai21042004/caption-synth/internal/watcher"
)

func subtitleCmd(a *app) *cobra.Command {
	var output, language, assPath string

	cmd := &cobra.Command{
		Use:   "subtitle <audio.wav>",
		Short: "Write an SRT subtitle file for a speech recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			audioPath := args[0]
			if output == "" {
				output = strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".srt"
			}
			code, err := a.language(language)
			if err != nil {
				return err
			}

			engine, err := a.openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			res, err := a.pipeline().Run(ctx, engine, pipeline.Request{
				AudioPath:    audioPath,
				Language:     code,
				SubtitlePath: output,
				ASSPath:      assPath,
				Style:        a.style(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cues over %.2fs\n", output, len(res.Segments), res.Duration)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "subtitle path (default: audio path with .srt)")
	cmd.Flags().StringVarP(&language, "lang", "l", "", "two-letter language hint (default: whisper.language)")
	cmd.Flags().StringVar(&assPath, "ass", "", "also write a styled ASS file here")
	return cmd
}

func cuesCmd(a *app) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "cues <audio.wav>",
		Short: "Print the timed cues recognized in a speech recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			code, err := a.language(language)
			if err != nil {
				return err
			}

			wf, err := audio.Load(args[0])
			if err != nil {
				return &pipeline.StageError{Stage: pipeline.StageLoad, Err: err}
			}

			engine, err := a.openEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			raw, err := a.segmenter().Segment(ctx, engine, wf, code)
			if err != nil {
				return &pipeline.StageError{Stage: pipeline.StageSegment, Err: err}
			}
			segments, _, err := timescale.Rescale(raw, wf.Duration)
			if err != nil {
				return &pipeline.StageError{Stage: pipeline.StageRescale, Err: err}
			}

			rows := make([][]string, 0, len(segments))
			for _, c := range a.encoder().Cues(segments) {
				rows = append(rows, []string{strconv.Itoa(c.Index), c.Start, c.End, c.Text})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"#", "Start", "End", "Text"}, rows, []columnAlignment{alignRight}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "lang", "l", "", "two-letter language hint (default: whisper.language)")
	return cmd
}

func runCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <manifest.yaml>",
		Short: "Process one job manifest and print its deliverables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureDirectories(a.cfg); err != nil {
				return err
			}
			proc, err := a.processor()
			if err != nil {
				return err
			}

			out, err := proc.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Job", out.JobID},
				{"Video", out.Video},
				{"Subtitle", fmt.Sprintf("%s (%d cues)", out.Subtitle, out.Cues)},
				{"ASS", out.ASS},
				{"Transcript", out.Transcript},
				{"Script", out.Script},
				{"Elapsed", out.Elapsed.Round(time.Millisecond).String()},
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, renderTable(w, []string{"Deliverable", "Path"}, rows, nil))
			return nil
		},
	}
}

func watchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process manifests dropped into the input folder until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := a.cfg
			log := a.log

			if err := ensureDirectories(cfg); err != nil {
				return err
			}
			proc, err := a.processor()
			if err != nil {
				return err
			}

			w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Stop()

			log.Info(ctx, "========================================")
			log.Info(ctx, "Caption Synth is ready!")
			log.Info(ctx, "System: %s/%s, %d CPU cores", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
			log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
			log.Info(ctx, "Output: %s", cfg.Paths.Output)
			log.Info(ctx, "  - Whisper: %s, %d threads, beam %d", filepath.Base(cfg.Whisper.ModelPath), cfg.Whisper.Threads, cfg.Whisper.BeamSize)
			log.Info(ctx, "  - Speech: %s", cfg.Speech.Provider)
			log.Info(ctx, "  - FFmpeg: %s encoder, %s bitrate", cfg.FFmpeg.Encoder, cfg.FFmpeg.VideoBitrate)
			log.Info(ctx, "  - Concurrent: %d jobs, %d recognitions", cfg.Performance.MaxConcurrent, cfg.Performance.MaxRecognition)
			log.Info(ctx, "Press Ctrl+C to stop")
			log.Info(ctx, "========================================")

			err = w.Start(ctx)
			if errors.Is(err, context.Canceled) {
				log.Info(ctx, "Caption Synth stopped")
				return nil
			}
			return err
		},
	}
}

// language resolves a --lang flag, falling back to the configured language.
func (a *app) language(flag string) (string, error) {
	if flag == "" {
		return a.cfg.Whisper.Language, nil
	}
	return lang.Parse(flag)
}

