package platform

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestEnsureDirectory_ReportsCreation(t *testing.T) {
	testDir := filepath.Join(t.TempDir(), "wav")

	created, err := EnsureDirectory(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if !created {
		t.Error("Expected first call to report creation")
	}

	created, err = EnsureDirectory(testDir)
	if err != nil {
		t.Fatalf("Failed to reuse directory: %v", err)
	}
	if created {
		t.Error("Expected second call to reuse the existing directory")
	}
}

func TestEnsureDirectory_FileInTheWay(t *testing.T) {
	tempDir := t.TempDir()
	blocker := filepath.Join(tempDir, "wav")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocking file: %v", err)
	}

	_, err := EnsureDirectory(blocker)
	if err == nil {
		t.Fatal("Expected error when a file occupies the directory path")
	}

	if !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("Expected 'not a directory' error, got: %v", err)
	}
}

func TestFindInputFiles(t *testing.T) {
	tempDir := t.TempDir()

	files := []string{"song.mp3", "Track.MP3", "mixed.Mp3", "track.mp3.txt", "notes.txt", "song.wav"}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(tempDir, name), nil, 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
	// A directory with a matching name is not an input
	if err := os.Mkdir(filepath.Join(tempDir, "album.mp3"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	// Nested files are not scanned
	nested := filepath.Join(tempDir, "nested")
	if err := os.Mkdir(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(nested, "deep.mp3"), nil, 0644); err != nil {
		t.Fatalf("Failed to create nested file: %v", err)
	}

	names, err := FindInputFiles(tempDir, InputExtensionMP3)
	if err != nil {
		t.Fatalf("FindInputFiles failed: %v", err)
	}

	sort.Strings(names)
	expected := []string{"Track.MP3", "mixed.Mp3", "song.mp3"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d files, got %d: %v", len(expected), len(names), names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("File %d: expected %s, got %s", i, expected[i], names[i])
		}
	}
}

func TestFindInputFiles_MissingDir(t *testing.T) {
	_, err := FindInputFiles(filepath.Join(t.TempDir(), "missing"), InputExtensionMP3)
	if err == nil {
		t.Fatal("Expected error for missing directory, got nil")
	}

	if !strings.Contains(err.Error(), "failed to read directory") {
		t.Errorf("Expected 'failed to read directory' error, got: %v", err)
	}
}

func TestReplaceExtension(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"song.mp3", "song.wav"},
		{"Track.MP3", "Track.wav"},
		{"my.favourite.song.mp3", "my.favourite.song.wav"},
		{"spaces in name.mp3", "spaces in name.wav"},
		{".mp3", ".mp3.wav"},
		{"..mp3", "..mp3.wav"},
		{".hidden.mp3", ".hidden.wav"},
		{"a..mp3", "a..wav"},
		{"noext", "noext.wav"},
	}

	for _, test := range tests {
		result := ReplaceExtension(test.input, OutputExtensionWAV)
		if result != test.expected {
			t.Errorf("ReplaceExtension(%s) = %s, expected %s", test.input, result, test.expected)
		}
	}
}

func TestOutputPathFor(t *testing.T) {
	name, path := OutputPathFor(filepath.Join("music", "wav"), "song.mp3")

	if name != "song.wav" {
		t.Errorf("Expected name song.wav, got %s", name)
	}

	if expected := filepath.Join("music", "wav", "song.wav"); path != expected {
		t.Errorf("Expected path %s, got %s", expected, path)
	}
}

func TestLookupTool_Missing(t *testing.T) {
	_, err := LookupTool("definitely-not-a-real-tool-mp3towav")
	if err == nil {
		t.Fatal("Expected error for missing tool, got nil")
	}

	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected 'not found' error, got: %v", err)
	}
}
