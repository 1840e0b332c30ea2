package convert

import (
	"errors"
	"fmt"
	"os"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/simonhull/audiometa"
)

// ErrNotMP3 is returned by Probe for files that do not hold an MP3 stream
var ErrNotMP3 = errors.New("not an mp3 stream")

// Probe reads the technical properties of an input file. audiometa detects
// the container; go-mp3 scans the frame headers for rate and length.
func Probe(path string) (audiometa.AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return audiometa.AudioInfo{}, fmt.Errorf("failed to probe %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return audiometa.AudioInfo{}, fmt.Errorf("failed to probe %s: %w", path, err)
	}

	format, err := audiometa.DetectFormat(f, stat.Size(), path)
	if err != nil {
		return audiometa.AudioInfo{}, fmt.Errorf("failed to probe %s: %w", path, err)
	}
	if format != audiometa.FormatMP3 {
		return audiometa.AudioInfo{}, fmt.Errorf("failed to probe %s: %w", path, ErrNotMP3)
	}

	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		return audiometa.AudioInfo{}, fmt.Errorf("failed to probe %s: %w", path, err)
	}

	info := audiometa.AudioInfo{
		Codec:      "MP3",
		Container:  "MPEG",
		SampleRate: dec.SampleRate(),
	}
	if frames := dec.Length() / nativeFrameBytes; frames > 0 && info.SampleRate > 0 {
		info.Duration = time.Duration(frames) * time.Second / time.Duration(info.SampleRate)
		info.Bitrate = int(float64(stat.Size()*8) / info.Duration.Seconds())
	}
	return info, nil
}
