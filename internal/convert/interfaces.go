package convert

import (
	"context"
	"fmt"
	"strings"
)

// Result is the outcome of one transcoder invocation
type Result struct {
	// ExitCode is the tool's exit status; 0 means success
	ExitCode int
	// Stderr holds the diagnostic output captured from the tool
	Stderr string
	// Err is set when the tool could not be started at all
	Err error
}

// Failed reports whether the invocation did not produce a converted file
func (r Result) Failed() bool {
	return r.Err != nil || r.ExitCode != 0
}

// Diagnostic returns the text to show for a failed invocation
func (r Result) Diagnostic() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	if msg := strings.TrimRight(r.Stderr, "\r\n"); msg != "" {
		return msg
	}
	if r.ExitCode != 0 {
		return fmt.Sprintf("exit status %d", r.ExitCode)
	}
	return ""
}

// Transcoder converts a single input file into the output path, overwriting
// the output if it exists.
type Transcoder interface {
	Transcode(ctx context.Context, inputPath, outputPath string) Result
}

// TranscoderFunc adapts an ordinary function to the Transcoder interface
type TranscoderFunc func(ctx context.Context, inputPath, outputPath string) Result

// Transcode calls f(ctx, inputPath, outputPath)
func (f TranscoderFunc) Transcode(ctx context.Context, inputPath, outputPath string) Result {
	return f(ctx, inputPath, outputPath)
}
