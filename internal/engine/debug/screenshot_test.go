package debug

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dunehall/internal/export"
)

func TestFlipRows(t *testing.T) {
	// 1x2: bottom row red, top row blue, as glReadPixels returns them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRows(pixels, 1, 2)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.NotZero(t, b)
	r, _, _, _ = img.At(0, 1).RGBA()
	assert.NotZero(t, r)

	_, err = FlipRows(pixels, 2, 2)
	assert.Error(t, err)
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "dunehall", ".WEBP")
	sc.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 8e6, time.UTC) }
	assert.Equal(t, filepath.Join("shots", "dunehall_2026-03-04_05-06-07.008.webp"), sc.GenerateFilename())

	sc = NewScreenshotCapture("", "x", "")
	sc.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, "x_2026-01-01_00-00-00.000.png", sc.GenerateFilename())
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	sc := NewScreenshotCapture(dir, "shot", "tga")

	path, err := sc.CaptureFromPixels(make([]byte, 4*3*2), 3, 2)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.Equal(t, ".tga", filepath.Ext(path))
}

func TestCaptureRejectsUnknownFormat(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "shot", "bmp")
	_, err := sc.CaptureFromPixels(make([]byte, 4), 1, 1)
	assert.ErrorIs(t, err, export.ErrImageFormat)
}
