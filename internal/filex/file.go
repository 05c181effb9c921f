// Package filex holds small filesystem helpers: data directory bootstrap and
// loading local files picked for upload.
package filex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDir makes sure dir exists and returns its absolute path. Relative
// paths are resolved against the current working directory.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// File is a local file selected for upload.
//
// Content is nil when the file is larger than the read limit passed to Load;
// Size always carries the real size so callers can report the violation.
type File struct {
	Name    string
	Size    int64
	Content []byte
}

// Load stats path and reads its content if it does not exceed limit bytes.
// A non-positive limit reads the whole file.
func Load(path string, limit int64) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	out := &File{Name: filepath.Base(path), Size: fi.Size()}
	if limit > 0 && fi.Size() > limit {
		return out, nil
	}

	out.Content, err = io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}
