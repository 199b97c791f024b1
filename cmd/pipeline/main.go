package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/caption-synth/internal/audio"
	"github.com/nguyentantai21042004/caption-synth/internal/gemini"
	"github.com/nguyentantai21042004/caption-synth/internal/lang"
	"github.com/nguyentantai21042004/caption-synth/internal/processor"
	"github.com/nguyentantai21042004/caption-synth/internal/segment"
	"github.com/nguyentantai21042004/caption-synth/internal/timescale"
	"github.com/nguyentantai21042004/caption-synth/internal/watcher"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitGeneral     = 1
	ExitUsage       = 2
	ExitSetup       = 3
	ExitValidation  = 4
	ExitRecognition = 5
	ExitInterrupt   = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "caption-synth",
		Short:         "Narrate videos and synthesize timed subtitles for them",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "path to the YAML config")

	rootCmd.AddCommand(subtitleCmd(a))
	rootCmd.AddCommand(cuesCmd(a))
	rootCmd.AddCommand(runCmd(a))
	rootCmd.AddCommand(watchCmd(a))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupt
	case isCobraUsageError(err):
		return ExitUsage
	case errors.Is(err, errConfig), errors.Is(err, gemini.ErrNoKeys),
		errors.Is(err, errOpenAIKeyMissing), errors.Is(err, watcher.ErrLocked):
		return ExitSetup
	case errors.Is(err, lang.ErrInvalid), errors.Is(err, audio.ErrFormat),
		errors.Is(err, processor.ErrInvalidManifest), errors.Is(err, os.ErrNotExist):
		return ExitValidation
	case errors.Is(err, timescale.ErrNoSpeech), errors.Is(err, segment.ErrEngine),
		errors.Is(err, segment.ErrConversion):
		return ExitRecognition
	}
	return ExitGeneral
}

// Cobra doesn't expose typed usage errors.
var cobraUsageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand",
	"unknown command",
	"flag needs an argument",
	"invalid argument",
	"accepts ",
	"requires at least",
}

func isCobraUsageError(err error) bool {
	msg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
