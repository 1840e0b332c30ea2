package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/mp3towav/internal/config"
)

func missingToolSettings(t *testing.T) config.Settings {
	settings := config.DefaultSettings()
	settings.FFmpeg = filepath.Join(t.TempDir(), "no-such-ffmpeg")
	return settings
}

func TestRun_NoFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run(config.DefaultSettings(), &stdout, &stderr)

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout.String(), "No MP3 files found in the current directory.")
	assert.Empty(t, stderr.String(), "logging is off unless verbose")
	assert.DirExists(t, "wav")
}

func TestRun_FailuresKeepExitZero(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("a.mp3", nil, 0644))

	var stdout, stderr bytes.Buffer
	code := run(missingToolSettings(t), &stdout, &stderr)

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout.String(), "Errors: 1")
}

func TestRun_StrictExitCode(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("a.mp3", nil, 0644))

	settings := missingToolSettings(t)
	settings.Strict = true
	settings.Verbose = true

	var stdout, stderr bytes.Buffer
	code := run(settings, &stdout, &stderr)

	assert.Equal(t, ExitFailure, code)
	// The summary is printed before the exit code is decided
	assert.Contains(t, stdout.String(), "Some files failed to convert. Please check the logs.")
	assert.Contains(t, stderr.String(), "mp3towav: ")
	assert.Contains(t, stderr.String(), "warning: tool")
	assert.Contains(t, stderr.String(), "progress: 1/1 files done, 0 pending")
}

func TestRun_VerboseLogsProgress(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("a.mp3", nil, 0644))
	require.NoError(t, os.WriteFile("b.mp3", nil, 0644))

	settings := missingToolSettings(t)
	settings.Verbose = true

	var stdout, stderr bytes.Buffer
	code := run(settings, &stdout, &stderr)

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stderr.String(), "progress: 1/2 files done, 1 pending")
	assert.Contains(t, stderr.String(), "progress: 2/2 files done, 0 pending")
	assert.Equal(t, 2, strings.Count(stderr.String(), "progress: "))
}

func TestRun_QuietHasNoProgress(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("a.mp3", nil, 0644))

	var stdout, stderr bytes.Buffer
	run(missingToolSettings(t), &stdout, &stderr)

	assert.NotContains(t, stderr.String(), "progress:")
}

func TestRun_FatalOutputDir(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("wav", []byte("x"), 0644))

	var stdout, stderr bytes.Buffer
	code := run(config.DefaultSettings(), &stdout, &stderr)

	assert.Equal(t, ExitFatal, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "cannot prepare output directory")
}

func TestNewTranscoder(t *testing.T) {
	settings := config.DefaultSettings()
	logger := newLogger(settings, &bytes.Buffer{})

	_, isFFmpeg := newTranscoder(settings, logger).(interface{ Path() string })
	assert.True(t, isFFmpeg)

	settings.Encoder = config.EncoderNative
	_, isFFmpeg = newTranscoder(settings, logger).(interface{ Path() string })
	assert.False(t, isFFmpeg)
}
