package storage

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const tempPrefix = ".tmp-"

// AtomicWriter provides crash-safe file writing using temp file + rename.
type AtomicWriter struct {
	fs         afero.Fs
	targetPath string
	tempFile   afero.File
}

// NewAtomicWriter creates a new atomic writer for the target path on fs.
func NewAtomicWriter(fs afero.Fs, targetPath string) (*AtomicWriter, error) {
	dir := filepath.Dir(targetPath)

	// Ensure directory exists
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	tempFile, err := afero.TempFile(fs, dir, tempPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	return &AtomicWriter{
		fs:         fs,
		targetPath: targetPath,
		tempFile:   tempFile,
	}, nil
}

// Write implements io.Writer.
func (w *AtomicWriter) Write(p []byte) (n int, err error) {
	return w.tempFile.Write(p)
}

// Commit syncs and renames the temp file to the target path.
func (w *AtomicWriter) Commit() error {
	tempPath := w.tempFile.Name()

	if err := w.tempFile.Sync(); err != nil {
		w.tempFile.Close()
		w.fs.Remove(tempPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := w.tempFile.Close(); err != nil {
		w.fs.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := w.fs.Rename(tempPath, w.targetPath); err != nil {
		w.fs.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Abort cancels the write and cleans up the temp file.
func (w *AtomicWriter) Abort() error {
	tempPath := w.tempFile.Name()
	w.tempFile.Close()
	return w.fs.Remove(tempPath)
}

// AtomicWriteFile writes data to a file on fs atomically.
func AtomicWriteFile(fs afero.Fs, path string, data []byte) error {
	writer, err := NewAtomicWriter(fs, path)
	if err != nil {
		return err
	}

	if _, err := writer.Write(data); err != nil {
		writer.Abort()
		return err
	}

	return writer.Commit()
}
