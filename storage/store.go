package storage

import (
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"
)

var ErrInvalidName = errors.New("invalid stored file name")

// FileStore persists uploaded files under flat generated names.
// Remove and Open report missing files with an error matching fs.ErrNotExist.
type FileStore interface {
	Save(name string, r io.Reader, size int64, contentType string) error
	Remove(name string) error
	Open(name string) (io.ReadSeekCloser, time.Time, error)
}

// IsNotExist reports whether err means the stored file is absent.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// cleanName accepts a single path element only, so a stored name can never
// reach outside the store.
func cleanName(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}
	if cleaned := path.Clean(name); cleaned != name || cleaned == "." || cleaned == ".." {
		return "", ErrInvalidName
	}
	return name, nil
}

// NormalizeRoute turns "uploads", "/uploads/" and "/uploads" into "/uploads".
func NormalizeRoute(route string) string {
	route = strings.Trim(strings.TrimSpace(route), "/")
	if route == "" {
		return "/uploads"
	}
	return "/" + route
}

// URLFor is the stored relative path of a generated file name.
func URLFor(route, name string) string {
	return NormalizeRoute(route) + "/" + name
}

// NameFromURL strips the route prefix from a stored path and validates the rest.
func NameFromURL(route, storedPath string) (string, error) {
	prefix := NormalizeRoute(route) + "/"
	rel := strings.TrimPrefix(storedPath, prefix)
	if rel == storedPath {
		// Rows written by hand may lack the leading slash.
		rel = strings.TrimPrefix(storedPath, strings.TrimPrefix(prefix, "/"))
	}
	return cleanName(rel)
}
