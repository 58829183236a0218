package export

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dunehall/internal/assets"
	"github.com/Faultbox/dunehall/internal/engine/heightfield"
	"github.com/Faultbox/dunehall/internal/engine/scene"
)

type slope struct{}

func (slope) Elevation(x, z float64) float64 { return x / 400 * 30 }

func smallScene(t *testing.T) *scene.Scene {
	t.Helper()
	p := scene.DefaultParams()
	p.TerrainResolution = 8
	p.RingSegments = 8
	p.MountainResolution = 8
	p.PlinthSegments = 8
	return scene.Build(assets.DefaultPlacements(), heightfield.Default(), p)
}

func decode(t *testing.T, data []byte) *gltf.Document {
	t.Helper()
	var doc gltf.Document
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(data)).Decode(&doc))
	return &doc
}

func TestWriteGLBStatic(t *testing.T) {
	s := smallScene(t)
	var buf bytes.Buffer
	require.NoError(t, WriteGLB(&buf, s, GLBOptions{}))
	assert.Equal(t, "glTF", buf.String()[:4])

	doc := decode(t, buf.Bytes())
	// terrain, mountains, plinth and six drums; the ring is GPU-only
	assert.Len(t, doc.Nodes, 9)
	assert.Len(t, doc.Meshes, 4, "drums share one mesh")
	assert.Len(t, doc.Materials, 4)

	terrainMesh := doc.Meshes[*doc.Nodes[0].Mesh]
	acc := doc.Accessors[terrainMesh.Primitives[0].Attributes[gltf.POSITION]]
	pos, err := modeler.ReadPosition(doc, acc, nil)
	require.NoError(t, err)
	assert.Len(t, pos, 9*9)
}

func TestWriteGLBWithObjects(t *testing.T) {
	s := smallScene(t)
	doc := Document(s, GLBOptions{Objects: true})
	assert.Len(t, doc.Nodes, 9+6*3)
	assert.Len(t, doc.Meshes, 7)
	assert.Len(t, doc.Materials, 7)
}

func TestSaveGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.glb")
	require.NoError(t, SaveGLB(path, smallScene(t), GLBOptions{}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000))
}

func TestElevationScan(t *testing.T) {
	p := DefaultScanParams()
	p.Size = 16
	img := ElevationScan(slope{}, p)
	require.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())

	// x = -400 -> h = -30, below the floor; x = +400 -> h = 30, (30+15)/60 = 0.75
	assert.Equal(t, uint8(0), img.GrayAt(0, 5).Y)
	assert.Equal(t, uint8(191), img.GrayAt(15, 5).Y)
	assert.Equal(t, img.GrayAt(7, 0), img.GrayAt(7, 15), "slope is constant along z")
}

func TestElevationScanFlatPlatform(t *testing.T) {
	field := heightfield.Default()
	p := DefaultScanParams()
	p.Size = 9
	p.World = 40
	img := ElevationScan(field, p)
	first := img.GrayAt(0, 0)
	for y := range 9 {
		for x := range 9 {
			assert.Equal(t, first, img.GrayAt(x, y))
		}
	}
}

func TestPanel(t *testing.T) {
	scan := ElevationScan(slope{}, ScanParams{Size: 32, World: 800, Floor: -15, Span: 60})
	panel := Panel(scan, 64, "ELEVATION SCAN")
	b := panel.Bounds()
	assert.Equal(t, 68, b.Dx())
	assert.Greater(t, b.Dy(), 68)

	// Border is black and opaque.
	r, g, bl, a := panel.At(0, 0).RGBA()
	assert.Equal(t, [4]uint32{0, 0, 0, 0xffff}, [4]uint32{r, g, bl, a})

	lit := false
	for y := 68; y < b.Dy(); y++ {
		for x := range b.Dx() {
			if _, _, _, a := panel.At(x, y).RGBA(); a > 0 {
				lit = true
			}
		}
	}
	assert.True(t, lit, "label drawn below the scan")
}

func TestEncodeImage(t *testing.T) {
	img := ElevationScan(slope{}, ScanParams{Size: 8, World: 800, Floor: -15, Span: 60})

	var buf bytes.Buffer
	require.NoError(t, EncodeImage(&buf, img, ".png"))
	back, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), back.Bounds())

	buf.Reset()
	require.NoError(t, EncodeImage(&buf, img, ".TGA"))
	back, err = tga.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), back.Bounds())

	buf.Reset()
	require.NoError(t, EncodeImage(&buf, img, ".webp"))
	assert.Equal(t, "RIFF", buf.String()[:4])

	assert.ErrorIs(t, EncodeImage(&buf, img, ".bmp"), ErrImageFormat)
}

func TestWriteImage(t *testing.T) {
	dir := t.TempDir()
	img := ElevationScan(slope{}, ScanParams{Size: 8, World: 800, Floor: -15, Span: 60})
	require.NoError(t, WriteImage(filepath.Join(dir, "scan.png"), img))
	assert.ErrorIs(t, WriteImage(filepath.Join(dir, "scan.gif"), img), ErrImageFormat)
	_, err := os.Stat(filepath.Join(dir, "scan.gif"))
	assert.True(t, os.IsNotExist(err))
}
