package export

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/dunehall/internal/engine/terrain"
	dmath "github.com/Faultbox/dunehall/pkg/math"
)

// ScanParams shapes the elevation scan.
type ScanParams struct {
	Size    int     `yaml:"size"`
	World   float64 `yaml:"world"`
	CenterX float64 `yaml:"center_x"`
	CenterZ float64 `yaml:"center_z"`
	// Heights map from [Floor, Floor+Span] onto black..white.
	Floor float64 `yaml:"floor"`
	Span  float64 `yaml:"span"`
	Label string  `yaml:"label"`
}

// DefaultScanParams covers the whole dune field.
func DefaultScanParams() ScanParams {
	return ScanParams{
		Size:  256,
		World: 800,
		Floor: -15,
		Span:  60,
		Label: "ELEVATION SCAN",
	}
}

// ElevationScan renders field top-down as grayscale. Row 0 is the far
// (-Z) edge; column 0 is -X.
func ElevationScan(field terrain.Sampler, p ScanParams) *image.Gray {
	size := max(p.Size, 2)
	span := p.Span
	if span == 0 {
		span = 1
	}
	img := image.NewGray(image.Rect(0, 0, size, size))
	for j := range size {
		v := float64(j)/float64(size-1) - 0.5
		wz := p.CenterZ + v*p.World
		for i := range size {
			u := float64(i)/float64(size-1) - 0.5
			wx := p.CenterX + u*p.World
			h := field.Elevation(wx, wz)
			img.Pix[j*img.Stride+i] = uint8(dmath.Saturate((h-p.Floor)/span) * 255)
		}
	}
	return img
}

// Panel frames a scan for display: scaled to size pixels, a thin black
// border, and the label centered underneath.
func Panel(scan image.Image, size int, label string) *image.RGBA {
	const (
		border   = 2
		labelGap = 6
	)
	face := basicfont.Face7x13
	labelH := face.Metrics().Height.Ceil() + labelGap

	w := size + 2*border
	h := size + 2*border + labelH
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.Transparent, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, w, size+2*border), image.Black, image.Point{}, draw.Src)

	dst := image.Rect(border, border, border+size, border+size)
	xdraw.ApproxBiLinear.Scale(out, dst, scan, scan.Bounds(), xdraw.Src, nil)

	d := font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	textW := d.MeasureString(label).Ceil()
	d.Dot = fixed.P((w-textW)/2, size+2*border+labelGap+face.Metrics().Ascent.Ceil())
	d.DrawString(label)
	return out
}
