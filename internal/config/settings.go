package config

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Encoder selects which transcoder converts the files
type Encoder string

const (
	EncoderFFmpeg Encoder = "ffmpeg"
	EncoderNative Encoder = "native"
)

// Environment variable keys
const (
	KeyEncoder   = "MP3TOWAV_ENCODER"
	KeyFFmpeg    = "MP3TOWAV_FFMPEG"
	KeyOutputDir = "MP3TOWAV_OUTPUT_DIR"
	KeyVerify    = "MP3TOWAV_VERIFY"
	KeyStrict    = "MP3TOWAV_STRICT"
	KeyVerbose   = "MP3TOWAV_VERBOSE"
)

// Default values
const (
	DefaultEncoder   = EncoderFFmpeg
	DefaultFFmpeg    = "ffmpeg"
	DefaultOutputDir = "wav"
)

// Settings manages application configuration
type Settings struct {
	Encoder   Encoder
	FFmpeg    string // ffmpeg binary name or path
	OutputDir string // output subdirectory name, a single path element
	Verify    bool   // check every produced WAV after conversion
	Strict    bool   // exit non-zero when any file failed
	Verbose   bool   // emit diagnostic log lines
}

// DefaultSettings returns settings that reproduce the plain ffmpeg batch run
func DefaultSettings() Settings {
	return Settings{
		Encoder:   DefaultEncoder,
		FFmpeg:    DefaultFFmpeg,
		OutputDir: DefaultOutputDir,
	}
}

// Load reads settings from the process environment
func Load() Settings {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads settings through getenv. Unset or invalid values keep their
// defaults.
func LoadFrom(getenv func(string) string) Settings {
	s := DefaultSettings()

	encoder := Encoder(strings.ToLower(strings.TrimSpace(getenv(KeyEncoder))))
	if slices.Contains(s.GetEncoderOptions(), encoder) {
		s.Encoder = encoder
	}

	if path := strings.TrimSpace(getenv(KeyFFmpeg)); path != "" {
		s.FFmpeg = path
	}

	if dir := strings.TrimSpace(getenv(KeyOutputDir)); isSingleElement(dir) {
		s.OutputDir = dir
	}

	s.Verify = parseBool(getenv(KeyVerify), s.Verify)
	s.Strict = parseBool(getenv(KeyStrict), s.Strict)
	s.Verbose = parseBool(getenv(KeyVerbose), s.Verbose)

	return s
}

// GetEncoderOptions returns the supported encoder values
func (s Settings) GetEncoderOptions() []Encoder {
	return []Encoder{EncoderFFmpeg, EncoderNative}
}

func parseBool(value string, fallback bool) bool {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

// isSingleElement rejects empty names, dot entries and anything with a separator
func isSingleElement(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
