package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ytget/mp3towav/internal/convert"
	"github.com/ytget/mp3towav/internal/model"
	"github.com/ytget/mp3towav/internal/platform"
)

var (
	// ErrOutputDir is returned when the output directory cannot be prepared
	ErrOutputDir = errors.New("cannot prepare output directory")
	// ErrListInputs is returned when the working directory cannot be read
	ErrListInputs = errors.New("cannot list input files")
)

// Terminal messages
const (
	MsgCreatedOutputDir = "Created output directory: %s\n"
	MsgNoFiles          = "No MP3 files found in the current directory.\n"
	MsgFound            = "Found %d MP3 files. Starting conversion...\n"
	MsgConverted        = "Converted: %s -> %s\n"
	MsgFailed           = "Failed to convert: %s\n"
	MsgError            = "Error: %s\n"
	MsgFinished         = "Conversion finished.\n"
	MsgSucceeded        = "Successfully converted: %d\n"
	MsgErrors           = "Errors: %d\n"
	MsgAllSucceeded     = "All files converted successfully.\n"
	MsgSomeFailed       = "Some files failed to convert. Please check the logs.\n"

	SeparatorWidth = 30
)

// ID prefixes
const (
	TaskIDPrefix = "convert-"
	RunIDPrefix  = "run-"
)

var _ Converter = (*Service)(nil)

// Service runs batch conversions over a working directory
type Service struct {
	workDir       string
	outputDirName string
	transcoder    convert.Transcoder
	out           io.Writer
	logger        *log.Logger
	verify        bool
	probe         bool
	batch         *model.Batch
	onUpdate      func(*model.ConversionTask) // callback for progress updates
}

// NewService creates a new batch service. Output goes to workDir/outputDirName.
func NewService(workDir, outputDirName string, transcoder convert.Transcoder) *Service {
	return &Service{
		workDir:       workDir,
		outputDirName: outputDirName,
		transcoder:    transcoder,
		out:           os.Stdout,
		logger:        log.New(io.Discard, "", 0),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.onUpdate = callback
}

// SetOutput sets the writer for progress and summary lines
func (s *Service) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	s.out = w
}

// SetLogger sets the diagnostic logger
func (s *Service) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	s.logger = l
}

// SetVerify enables output verification
func (s *Service) SetVerify(verify bool) {
	s.verify = verify
}

// SetProbe enables input probing for diagnostics
func (s *Service) SetProbe(probe bool) {
	s.probe = probe
}

// Batch returns the batch of the last run
func (s *Service) Batch() *model.Batch {
	return s.batch
}

// OutputDir returns the directory converted files are written to
func (s *Service) OutputDir() string {
	return filepath.Join(s.workDir, s.outputDirName)
}

// Run converts every MP3 file in the working directory. Only a failure to
// prepare the output directory or to list the inputs is returned as an
// error; per-file failures are reported and counted in the summary.
func (s *Service) Run(ctx context.Context) (model.RunSummary, error) {
	outputDir := s.OutputDir()

	created, err := platform.EnsureDirectory(outputDir)
	if err != nil {
		return model.RunSummary{}, fmt.Errorf("%w: %w", ErrOutputDir, err)
	}
	if created {
		s.printf(MsgCreatedOutputDir, outputDir)
	}

	names, err := platform.FindInputFiles(s.workDir, platform.InputExtensionMP3)
	if err != nil {
		return model.RunSummary{}, fmt.Errorf("%w: %w", ErrListInputs, err)
	}

	batch := model.NewBatch(generateRunID(), s.workDir, outputDir)
	s.batch = batch

	if len(names) == 0 {
		s.printf(MsgNoFiles)
		return batch.Summary(), nil
	}

	for _, name := range names {
		_, outputPath := platform.OutputPathFor(outputDir, name)
		batch.AddTask(model.NewConversionTask(generateTaskID(), filepath.Join(s.workDir, name), outputPath))
	}

	s.logger.Printf("run %s: %d input files in %s", batch.ID, batch.TotalTasks, s.workDir)
	s.printf(MsgFound, batch.TotalTasks)

	for _, task := range batch.GetPendingTasks() {
		s.convertTask(ctx, task)
	}

	summary := batch.Summary()
	s.printSummary(summary)
	s.logger.Printf("run %s: finished, %d succeeded, %d failed", batch.ID, summary.Succeeded, summary.Failed)

	return summary, nil
}

// convertTask converts a single file and reports its outcome
func (s *Service) convertTask(ctx context.Context, task *model.ConversionTask) {
	task.Start()
	s.notifyUpdate(task)
	s.logTaskStart(task)

	res := s.transcoder.Transcode(ctx, task.InputPath, task.OutputPath)

	var cause string
	switch {
	case res.Err != nil:
		task.Fail(res.Diagnostic())
		cause = res.Err.Error()
	case res.Failed():
		task.Fail(res.Diagnostic())
		cause = fmt.Sprintf("exit status %d", res.ExitCode)
	case s.verify:
		if err := convert.VerifyWAV(task.OutputPath); err != nil {
			task.Fail(err.Error())
			cause = fmt.Sprintf("output rejected: %v", err)
		} else {
			task.Complete()
		}
	default:
		task.Complete()
	}

	s.notifyUpdate(task)

	if task.Status == model.TaskStatusCompleted {
		s.printf(MsgConverted, task.InputName, task.OutputName)
		s.logger.Printf("task %s: completed in %s", task.ID, task.GetElapsedString())
		return
	}

	s.printf(MsgFailed, task.InputName)
	s.printf(MsgError, task.LastError)
	s.logger.Printf("task %s: failed after %s (%s)", task.ID, task.GetElapsedString(), cause)
}

// logTaskStart logs the task and, when probing is enabled, the input's audio properties
func (s *Service) logTaskStart(task *model.ConversionTask) {
	if !s.probe {
		s.logger.Printf("task %s: converting %s", task.ID, task.InputName)
		return
	}

	info, err := convert.Probe(task.InputPath)
	if err != nil {
		s.logger.Printf("task %s: converting %s (probe failed: %v)", task.ID, task.InputName, err)
		return
	}
	s.logger.Printf("task %s: converting %s (%s, %s)", task.ID, task.InputName, info.String(), info.Duration.Round(time.Millisecond))
}

// printSummary writes the separator, the counters and the final verdict
func (s *Service) printSummary(summary model.RunSummary) {
	s.printf("%s\n", strings.Repeat("-", SeparatorWidth))
	s.printf(MsgFinished)
	s.printf(MsgSucceeded, summary.Succeeded)
	s.printf(MsgErrors, summary.Failed)

	if summary.AllSucceeded() {
		s.printf(MsgAllSucceeded)
	} else {
		s.printf(MsgSomeFailed)
	}
}

func (s *Service) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID generates a unique task ID using UUID v7 for time ordering
func generateTaskID() string {
	return generateID(TaskIDPrefix)
}

// generateRunID generates a unique ID for one batch run
func generateRunID() string {
	return generateID(RunIDPrefix)
}

func generateID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())
	}
	return prefix + id.String()
}
