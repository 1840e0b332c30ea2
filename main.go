package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ytget/mp3towav/internal/batch"
	"github.com/ytget/mp3towav/internal/config"
	"github.com/ytget/mp3towav/internal/convert"
	"github.com/ytget/mp3towav/internal/model"
	"github.com/ytget/mp3towav/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppName = "mp3towav"

	ExitOK      = 0
	ExitFatal   = 1
	ExitFailure = 2 // some files failed and strict mode is on
)

func main() {
	os.Exit(run(config.Load(), os.Stdout, os.Stderr))
}

func run(settings config.Settings, stdout, stderr io.Writer) int {
	logger := newLogger(settings, stderr)
	logger.Printf("%s v%s starting (encoder=%s)", AppName, version, settings.Encoder)

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "%s: failed to resolve working directory: %v\n", AppName, err)
		return ExitFatal
	}

	svc := batch.NewService(workDir, settings.OutputDir, newTranscoder(settings, logger))
	svc.SetOutput(stdout)
	svc.SetLogger(logger)
	svc.SetVerify(settings.Verify)
	svc.SetProbe(settings.Verbose)
	if settings.Verbose {
		svc.SetUpdateCallback(logProgress(logger, svc))
	}

	if _, err := svc.Run(context.Background()); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", AppName, err)
		return ExitFatal
	}

	if settings.Strict && svc.Batch().HasErrors() {
		return ExitFailure
	}
	return ExitOK
}

// logProgress returns an update callback that logs how far the batch has got
// each time a file finishes
func logProgress(logger *log.Logger, svc batch.Converter) func(*model.ConversionTask) {
	return func(task *model.ConversionTask) {
		if task.Status.IsActive() {
			return
		}

		b := svc.Batch()
		done := len(b.GetCompletedTasks()) + len(b.GetFailedTasks())
		logger.Printf("progress: %d/%d files done, %d pending", done, b.TotalTasks, len(b.GetPendingTasks()))
	}
}

// newTranscoder picks the transcoder for the configured encoder
func newTranscoder(settings config.Settings, logger *log.Logger) convert.Transcoder {
	if settings.Encoder == config.EncoderNative {
		return convert.NewNative()
	}

	ff := convert.NewFFmpeg(settings.FFmpeg)
	if settings.Verbose {
		// A missing tool is not fatal: every file then fails on its own
		if path, err := platform.LookupTool(ff.Path()); err != nil {
			logger.Printf("warning: %v", err)
		} else if err := convert.CheckInstalled(path); err != nil {
			logger.Printf("warning: %v", err)
		} else {
			logger.Printf("using %s", path)
		}
	}
	return ff
}

func newLogger(settings config.Settings, stderr io.Writer) *log.Logger {
	if !settings.Verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(stderr, AppName+": ", log.LstdFlags)
}
