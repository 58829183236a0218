package terrain

// Heightmap is a regular grid of cached elevations with bilinear lookup. It
// answers placement and clearance queries without re-running the full
// height-field law.
type Heightmap struct {
	Extent     Extent
	Resolution int
	Heights    []float64 // row-major, (Resolution+1)^2
}

// BuildHeightmap samples field on the same lattice BuildGrid uses.
func BuildHeightmap(extent Extent, resolution int, field Sampler) *Heightmap {
	if resolution < 1 {
		resolution = 1
	}
	stride := resolution + 1
	h := &Heightmap{
		Extent:     extent,
		Resolution: resolution,
		Heights:    make([]float64, stride*stride),
	}

	stepX := extent.Width / float64(resolution)
	stepZ := extent.Depth / float64(resolution)
	for iz := range stride {
		for ix := range stride {
			h.Heights[iz*stride+ix] = field.Elevation(
				extent.MinX()+float64(ix)*stepX,
				extent.MinZ()+float64(iz)*stepZ,
			)
		}
	}
	return h
}

// Height returns the bilinearly interpolated elevation at a world position.
// Positions outside the extent clamp to the nearest edge cell.
func (h *Heightmap) Height(worldX, worldZ float64) float64 {
	if h == nil || len(h.Heights) == 0 {
		return 0
	}
	stride := h.Resolution + 1

	fx := (worldX - h.Extent.MinX()) / h.Extent.Width * float64(h.Resolution)
	fz := (worldZ - h.Extent.MinZ()) / h.Extent.Depth * float64(h.Resolution)

	cellX := clampi(int(fx), 0, h.Resolution-1)
	cellZ := clampi(int(fz), 0, h.Resolution-1)
	fracX := clampf(fx-float64(cellX), 0, 1)
	fracZ := clampf(fz-float64(cellZ), 0, 1)

	h00 := h.Heights[cellZ*stride+cellX]
	h10 := h.Heights[cellZ*stride+cellX+1]
	h01 := h.Heights[(cellZ+1)*stride+cellX]
	h11 := h.Heights[(cellZ+1)*stride+cellX+1]

	north := h00*(1-fracX) + h10*fracX
	south := h01*(1-fracX) + h11*fracX
	return north*(1-fracZ) + south*fracZ
}

// Clearance returns how far y sits above the terrain at (x, z). Negative
// values mean the point is buried.
func (h *Heightmap) Clearance(x, y, z float64) float64 {
	return y - h.Height(x, z)
}

func clampi(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
