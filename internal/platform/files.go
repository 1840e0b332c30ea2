package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// File extensions
const (
	InputExtensionMP3  = ".mp3"
	OutputExtensionWAV = ".wav"
)

// EnsureDirectory creates dirPath if it doesn't exist. It reports whether the
// directory was created by this call; an existing directory is reused.
func EnsureDirectory(dirPath string) (bool, error) {
	info, err := os.Stat(dirPath)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("path exists and is not a directory: %s", dirPath)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat %s: %w", dirPath, err)
	}

	if err := os.MkdirAll(dirPath, DefaultDirPermissions); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return true, nil
}

// FindInputFiles lists the regular entries directly inside dir whose name ends
// with ext, compared case-insensitively. Names are returned in directory
// listing order.
func FindInputFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	suffix := strings.ToLower(ext)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if strings.HasSuffix(strings.ToLower(entry.Name()), suffix) {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

// ReplaceExtension swaps the final extension of name for newExt, keeping the
// base name as is. Leading dots belong to the base name, so ".mp3" and
// "..mp3" have no extension and only get newExt appended.
func ReplaceExtension(name, newExt string) string {
	rest := strings.TrimLeft(name, ".")
	leading := name[:len(name)-len(rest)]
	return leading + strings.TrimSuffix(rest, filepath.Ext(rest)) + newExt
}

// OutputPathFor returns the WAV file name and full path inside outputDir for
// the given input file name.
func OutputPathFor(outputDir, inputName string) (string, string) {
	outputName := ReplaceExtension(inputName, OutputExtensionWAV)
	return outputName, filepath.Join(outputDir, outputName)
}

// LookupTool resolves an executable name or path the way exec.Command would
func LookupTool(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("tool %q not found: %w", name, err)
	}
	return path, nil
}
