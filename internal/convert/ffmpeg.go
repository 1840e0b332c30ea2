package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// FFmpeg constants for WAV output
const (
	// Audio codec settings
	AudioCodec       = "pcm_s16le"
	OutputSampleRate = 44100
	OutputBitDepth   = 16
	OutputChannels   = 2

	// Executable constants
	FFmpegCommand = "ffmpeg"
	VersionFlag   = "-version"
)

// FFmpeg converts files by running the ffmpeg binary once per file
type FFmpeg struct {
	path string
}

// NewFFmpeg creates an ffmpeg transcoder. An empty path means "ffmpeg" from PATH.
func NewFFmpeg(path string) *FFmpeg {
	if path == "" {
		path = FFmpegCommand
	}
	return &FFmpeg{path: path}
}

// Path returns the binary the transcoder invokes
func (f *FFmpeg) Path() string {
	return f.path
}

// Transcode runs ffmpeg and waits for it to exit. Stderr is captured instead
// of reaching the terminal; stdout is discarded.
func (f *FFmpeg) Transcode(ctx context.Context, inputPath, outputPath string) Result {
	args := f.BuildArgs(inputPath, outputPath)
	cmd := exec.CommandContext(ctx, f.path, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return Result{Stderr: stderr.String()}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr.String(),
		}
	}

	return Result{
		ExitCode: -1,
		Stderr:   stderr.String(),
		Err:      fmt.Errorf("failed to start ffmpeg: %w", err),
	}
}

// BuildArgs builds the ffmpeg command arguments
func (f *FFmpeg) BuildArgs(inputPath, outputPath string) []string {
	return []string{
		"-i", inputPath, // Input file
		"-acodec", AudioCodec, // PCM 16-bit little-endian
		"-ar", strconv.Itoa(OutputSampleRate), // Sample rate
		"-y",       // Overwrite output file
		outputPath, // Output file
	}
}

// CheckInstalled verifies that ffmpeg is installed and accessible
func CheckInstalled(path string) error {
	if path == "" {
		path = FFmpegCommand
	}

	cmd := exec.Command(path, VersionFlag)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}

	return nil
}
