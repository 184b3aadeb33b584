package storage

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.Local)
	assert.Equal(t, "window_20240305_140709.png", Filename(ts))
}

func TestEnsureFolderIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Pictures", "Screenshots")

	require.NoError(t, EnsureFolder(dir))
	require.NoError(t, EnsureFolder(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureFolderBlockedByFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.Error(t, EnsureFolder(filepath.Join(file, "sub")))
}

func TestDefaultFolder(t *testing.T) {
	profile := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(profile, "Pictures"), 0o755))
	t.Setenv("USERPROFILE", profile)

	assert.Equal(t, filepath.Join(profile, "Pictures", "Screenshots"), DefaultFolder("Screenshots"))
}

func TestDefaultFolderWithoutProfilePictures(t *testing.T) {
	t.Setenv("USERPROFILE", t.TempDir())

	got := DefaultFolder("Screenshots")
	assert.Equal(t, "Screenshots", filepath.Base(got))
	assert.Equal(t, "Pictures", filepath.Base(filepath.Dir(got)))
}

func TestWriterSave(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.Local)
	w := &Writer{Clock: func() time.Time { return ts }}

	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetRGBA(10, 20, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff})

	path, err := w.Save(img, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "window_20240305_140709.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 300), decoded.Bounds())

	r, g, b, a := decoded.At(10, 20).RGBA()
	assert.Equal(t, [4]uint32{0x1212, 0x3434, 0x5656, 0xffff}, [4]uint32{r, g, b, a})
}

func TestWriterSaveOverwritesSameSecond(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.Local)
	w := &Writer{Clock: func() time.Time { return ts }}

	first, err := w.Save(image.NewRGBA(image.Rect(0, 0, 2, 2)), dir)
	require.NoError(t, err)
	second, err := w.Save(image.NewRGBA(image.Rect(0, 0, 5, 5)), dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriterSaveErrors(t *testing.T) {
	w := NewWriter()

	_, err := w.Save(nil, t.TempDir())
	assert.Error(t, err)

	_, err = w.Save(image.NewRGBA(image.Rect(0, 0, 1, 1)), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWriterSaveFailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.Local)
	w := &Writer{Clock: func() time.Time { return ts }}

	path, err := w.Save(image.NewRGBA(image.Rect(0, 0, 2, 2)), dir)
	require.NoError(t, err)

	// png refuses a zero-sized image, so this encode fails
	_, err = w.Save(image.NewRGBA(image.Rect(0, 0, 0, 0)), dir)
	require.Error(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err, "earlier screenshot must survive a failed save")
	assert.Equal(t, image.Rect(0, 0, 2, 2), decoded.Bounds())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}
