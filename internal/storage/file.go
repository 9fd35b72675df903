package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileMedium stores each key as a file under a base directory.
type FileMedium struct {
	fs      afero.Fs
	baseDir string
	quota   int64 // bytes, 0 means unlimited
}

// FileOption configures a FileMedium.
type FileOption func(*FileMedium)

// WithQuota caps the total size of stored values in bytes.
func WithQuota(bytes int64) FileOption {
	return func(m *FileMedium) {
		m.quota = bytes
	}
}

// NewFileMedium creates a medium rooted at baseDir on fs.
// Use afero.NewOsFs() for real storage or afero.NewMemMapFs() for tests.
func NewFileMedium(fs afero.Fs, baseDir string, opts ...FileOption) *FileMedium {
	m := &FileMedium{
		fs:      fs,
		baseDir: baseDir,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewOsFileMedium creates a FileMedium on the operating system filesystem.
func NewOsFileMedium(baseDir string, opts ...FileOption) *FileMedium {
	return NewFileMedium(afero.NewOsFs(), baseDir, opts...)
}

// Get reads the value stored for key.
func (m *FileMedium) Get(key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	data, err := afero.ReadFile(m.fs, m.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes value for key atomically.
func (m *FileMedium) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if m.quota > 0 {
		used, err := m.usage(key)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > m.quota {
			return fmt.Errorf("write %q: %w", key, ErrQuotaExceeded)
		}
	}

	if err := AtomicWriteFile(m.fs, m.path(key), []byte(value)); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Remove deletes the file backing key.
func (m *FileMedium) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := m.fs.Remove(m.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

// Len counts stored keys.
func (m *FileMedium) Len() (int, error) {
	entries, err := m.entries()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// BaseDir returns the directory keys are stored under.
func (m *FileMedium) BaseDir() string {
	return m.baseDir
}

func (m *FileMedium) path(key string) string {
	return filepath.Join(m.baseDir, key)
}

// entries lists stored key files, skipping directories and in-flight temp files.
func (m *FileMedium) entries() ([]os.FileInfo, error) {
	exists, err := afero.DirExists(m.fs, m.baseDir)
	if err != nil {
		return nil, fmt.Errorf("check storage directory: %w", err)
	}
	if !exists {
		return nil, nil
	}

	infos, err := afero.ReadDir(m.fs, m.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage directory: %w", err)
	}

	var entries []os.FileInfo
	for _, info := range infos {
		if info.IsDir() || strings.HasPrefix(info.Name(), tempPrefix) {
			continue
		}
		entries = append(entries, info)
	}
	return entries, nil
}

// usage sums the size of every stored value except the one at skipKey,
// which is about to be overwritten.
func (m *FileMedium) usage(skipKey string) (int64, error) {
	entries, err := m.entries()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, info := range entries {
		if info.Name() == skipKey {
			continue
		}
		total += info.Size()
	}
	return total, nil
}
