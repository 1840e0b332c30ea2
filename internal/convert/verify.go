package convert

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ErrInvalidOutput is returned when a produced file is not the expected WAV
var ErrInvalidOutput = errors.New("invalid wav output")

// VerifyWAV checks that path holds a PCM 16-bit 44.1 kHz WAV file
func VerifyWAV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		if d.Err() != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidOutput, path, d.Err())
		}
		return fmt.Errorf("%w: %s: not a RIFF/WAVE file", ErrInvalidOutput, path)
	}

	switch {
	case d.WavAudioFormat != wavFormatPCM:
		return fmt.Errorf("%w: %s: audio format %d, want PCM", ErrInvalidOutput, path, d.WavAudioFormat)
	case d.BitDepth != OutputBitDepth:
		return fmt.Errorf("%w: %s: %d-bit samples, want %d-bit", ErrInvalidOutput, path, d.BitDepth, OutputBitDepth)
	case d.SampleRate != OutputSampleRate:
		return fmt.Errorf("%w: %s: %d Hz, want %d Hz", ErrInvalidOutput, path, d.SampleRate, OutputSampleRate)
	}

	return nil
}
