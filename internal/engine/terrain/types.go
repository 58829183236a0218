// Package terrain builds the static desert meshes: the dune grid sampled from
// the height field, a cached heightmap for placement queries, and the
// distant mountain band.
package terrain

// Sampler is anything that yields an elevation for a ground coordinate.
type Sampler interface {
	Elevation(x, z float64) float64
}

// Extent is a rectangular world window centered on (CenterX, CenterZ).
type Extent struct {
	CenterX float64 `yaml:"center_x" toml:"center_x"`
	CenterZ float64 `yaml:"center_z" toml:"center_z"`
	Width   float64 `yaml:"width" toml:"width"`
	Depth   float64 `yaml:"depth" toml:"depth"`
}

// Square returns an extent of the given side centered on the origin.
func Square(size float64) Extent {
	return Extent{Width: size, Depth: size}
}

// MinX returns the west edge.
func (e Extent) MinX() float64 { return e.CenterX - e.Width/2 }

// MinZ returns the north edge.
func (e Extent) MinZ() float64 { return e.CenterZ - e.Depth/2 }

// Contains reports whether (x, z) lies inside the extent, edges included.
func (e Extent) Contains(x, z float64) bool {
	return x >= e.MinX() && x <= e.MinX()+e.Width && z >= e.MinZ() && z <= e.MinZ()+e.Depth
}
