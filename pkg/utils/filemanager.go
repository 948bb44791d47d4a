// =============================================================================
// Order Line Cleaner - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the cleaner, including:
//   - Output directory management
//   - Atomic artifact writes
//   - Small file inspection helpers
//
// WRITE STRATEGY:
//   - Each artifact is written to a temporary file next to its final path
//   - The temporary file is renamed over the final path once fully written
//   - On any failure the temporary file is removed and the final path is left
//     as it was, so a reader never sees a half-written artifact
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for one output directory.
type FileManager struct {
	// OutputDir is the directory where artifacts are placed.
	OutputDir string
}

// NewFileManager creates a new FileManager for outputDir.
func NewFileManager(outputDir string) *FileManager {
	return &FileManager{OutputDir: outputDir}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureOutputDir creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// Path returns the location of name inside the output directory.
func (fm *FileManager) Path(name string) string {
	return filepath.Join(fm.OutputDir, name)
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFile writes the artifact name into the output directory atomically.
//
// PARAMETERS:
//   - name: The file name inside OutputDir.
//   - write: Called once with a buffered writer for the file contents.
//
// RETURNS:
//   - The final path of the artifact.
//   - An error if the directory cannot be created, write fails, or the file
//     cannot be moved into place.
func (fm *FileManager) WriteFile(name string, write func(io.Writer) error) (string, error) {
	if err := fm.EnsureOutputDir(); err != nil {
		return "", err
	}

	path := fm.Path(name)
	if err := WriteFileAtomic(path, write); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFileAtomic writes path through a temporary sibling file and renames it
// into place.
func WriteFileAtomic(path string, write func(io.Writer) error) (err error) {
	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	writer := bufio.NewWriter(file)
	if err = write(writer); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// GetFileModTime returns the modification time of a file.
func GetFileModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
