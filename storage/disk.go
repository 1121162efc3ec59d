package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskStore keeps uploads as plain files in one directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir when absent.
func NewDiskStore(dir string) (*DiskStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: abs}, nil
}

func (s *DiskStore) Dir() string {
	return s.dir
}

// secureJoin resolves name inside the base directory and rejects anything that escapes it
func (s *DiskStore) secureJoin(name string) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	target := filepath.Join(s.dir, clean)
	rel, err := filepath.Rel(s.dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidName
	}
	return target, nil
}

func (s *DiskStore) Save(name string, r io.Reader, _ int64, _ string) error {
	target, err := s.secureJoin(name)
	if err != nil {
		return err
	}
	// The directory may have been removed since startup.
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(target)
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

func (s *DiskStore) Remove(name string) error {
	target, err := s.secureJoin(name)
	if err != nil {
		return err
	}
	return os.Remove(target)
}

func (s *DiskStore) Open(name string) (io.ReadSeekCloser, time.Time, error) {
	target, err := s.secureJoin(name)
	if err != nil {
		return nil, time.Time{}, err
	}
	f, err := os.Open(target)
	if err != nil {
		return nil, time.Time{}, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, time.Time{}, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, time.Time{}, fmt.Errorf("%s: %w", name, os.ErrNotExist)
	}
	return f, info.ModTime(), nil
}
