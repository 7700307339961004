package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore persists uploads under a single base directory. All paths it
// accepts and returns are relative to that base.
type DiskStore struct {
	base string
}

// NewDiskStore creates the base directory if needed
func NewDiskStore(base string) (*DiskStore, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("resolve storage base: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage base: %w", err)
	}
	return &DiskStore{base: abs}, nil
}

// Save streams src into relDir/filename, creating directories on the way.
// It refuses to overwrite and returns the stored relative path and size.
func (s *DiskStore) Save(relDir, filename string, src io.Reader) (string, int64, error) {
	rel := filepath.Join(relDir, filename)
	abs, err := s.resolve(rel)
	if err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", 0, fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("create upload file: %w", err)
	}

	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(abs)
		return "", 0, fmt.Errorf("write upload file: %w", err)
	}
	return filepath.ToSlash(rel), n, nil
}

// Open opens a stored file for reading
func (s *DiskStore) Open(relPath string) (*os.File, error) {
	abs, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}
	return os.Open(abs)
}

// Remove deletes a stored file. Missing files are not an error.
func (s *DiskStore) Remove(relPath string) error {
	abs, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve joins relPath onto the base and rejects traversal outside it
func (s *DiskStore) resolve(relPath string) (string, error) {
	abs := filepath.Join(s.base, filepath.FromSlash(relPath))
	if abs != s.base && !strings.HasPrefix(abs, s.base+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes storage base: %s", relPath)
	}
	return abs, nil
}
