package export

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// ErrImageFormat is returned for unknown image extensions.
var ErrImageFormat = errors.New("export: unsupported image format")

// EncodeImage writes img in the format named by ext (".png", ".webp" or
// ".tga").
func EncodeImage(w io.Writer, img image.Image, ext string) error {
	var err error
	switch strings.ToLower(ext) {
	case ".png":
		err = png.Encode(w, img)
	case ".webp":
		err = nativewebp.Encode(w, img, nil)
	case ".tga":
		err = tga.Encode(w, toNRGBA(img))
	default:
		return fmt.Errorf("%w: %q", ErrImageFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", ext, err)
	}
	return nil
}

// WriteImage saves img to path, choosing the encoder from the extension.
func WriteImage(path string, img image.Image) error {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".png", ".webp", ".tga":
	default:
		return fmt.Errorf("%w: %q", ErrImageFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := EncodeImage(f, img, ext); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
