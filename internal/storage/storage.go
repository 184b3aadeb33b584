// Package storage names and writes screenshot files.
package storage

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const (
	filePrefix   = "window_"
	fileExt      = ".png"
	timestampFmt = "20060102_150405"
)

// Filename returns window_<YYYYMMDD_HHMMSS>.png for t in its own location.
// Two captures within the same second share a name.
func Filename(t time.Time) string {
	return filePrefix + t.Format(timestampFmt) + fileExt
}

// EnsureFolder creates path and any missing parents. Existing folders are
// left alone.
func EnsureFolder(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create folder %s", path)
	}
	return nil
}

// DefaultFolder returns <Pictures>/subfolder. On Windows the profile's
// Pictures folder is used when it exists; otherwise ~/Pictures. The working
// directory stands in for the home directory when it cannot be resolved.
func DefaultFolder(subfolder string) string {
	if profile := os.Getenv("USERPROFILE"); profile != "" {
		pictures := filepath.Join(profile, "Pictures")
		if info, err := os.Stat(pictures); err == nil && info.IsDir() {
			return filepath.Join(pictures, subfolder)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home, err = os.Getwd()
		if err != nil {
			home = "."
		}
	}
	return filepath.Join(home, "Pictures", subfolder)
}

// Writer encodes images as PNG into a folder
type Writer struct {
	// Clock supplies the timestamp used in file names. Defaults to time.Now.
	Clock func() time.Time
}

// NewWriter returns a Writer using the wall clock
func NewWriter() *Writer {
	return &Writer{Clock: time.Now}
}

func (w *Writer) now() time.Time {
	if w == nil || w.Clock == nil {
		return time.Now()
	}
	return w.Clock()
}

// Save writes img to folder and returns the full path. A file with the same
// name is replaced.
func (w *Writer) Save(img image.Image, folder string) (string, error) {
	if img == nil {
		return "", errors.New("no image to save")
	}

	path := filepath.Join(folder, Filename(w.now()))

	// Encode next to the target and rename, so a failed save never touches
	// an existing screenshot of the same name.
	f, err := os.CreateTemp(folder, ".window_*.png.tmp")
	if err != nil {
		return "", errors.Wrap(err, "failed to create screenshot file")
	}
	tmp := f.Name()

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", errors.Wrapf(err, "failed to encode %s", path)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	// CreateTemp makes the file private to the owner
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	return path, nil
}
