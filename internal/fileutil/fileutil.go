// Package fileutil provides file IO helpers for the command-line tool.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StdioPath selects stdin or stdout instead of a file.
const StdioPath = "-"

// Sentinel errors for file operations.
var (
	ErrEmptyPath = errors.New("path cannot be empty")
)

// ReadInput reads the whole input, from stdin when path is "-".
func ReadInput(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if path == StdioPath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// WriteOutput writes data to path, to stdout when path is "-". File writes
// go through a temp file in the target directory followed by a rename, so
// a crash mid-write never leaves a truncated output file.
func WriteOutput(path string, data []byte) error {
	if path == "" {
		return ErrEmptyPath
	}
	if path == StdioPath {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing stdout: %w", err)
		}
		return nil
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
