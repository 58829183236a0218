package shading

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	dmath "github.com/Faultbox/dunehall/pkg/math"
)

// DialParams tunes the guilloche "tapisserie" dial.
type DialParams struct {
	Color     mgl64.Vec3
	Highlight mgl64.Vec3
	GridSize  float64
}

// DefaultDialParams returns the deep blue dial.
func DefaultDialParams() DialParams {
	return DialParams{
		Color:     MustHex("#0f2045"),
		Highlight: MustHex("#1e3f7d"),
		GridSize:  40,
	}
}

// Dial shades a pyramid-tile dial with turned graining.
type Dial struct {
	P DialParams
}

// NewDial returns a dial model.
func NewDial(p DialParams) *Dial {
	return &Dial{P: p}
}

// Kind implements Model.
func (d *Dial) Kind() Kind { return KindDial }

// Height is the relief of the dial at uv, roughly in [-0.03, 1.03].
func (d *Dial) Height(uv mgl64.Vec2) float64 {
	st := uv.Mul(d.P.GridSize)
	tile := mgl64.Vec2{dmath.Fract(st[0])*2 - 1, dmath.Fract(st[1])*2 - 1}

	cheb := gomath.Max(gomath.Abs(tile[0]), gomath.Abs(tile[1]))
	pyramid := dmath.Smoothstep(0.95, 0.4, cheb)
	tileGrain := gomath.Sin(tile.Len()*150) * 0.02

	global := uv.Sub(mgl64.Vec2{0.5, 0.5}).Len()
	globalGrain := gomath.Sin(global*800) * 0.01

	return pyramid + tileGrain + globalGrain
}

// Evaluate implements Model.
func (d *Dial) Evaluate(in Input) Output {
	const delta = 0.001
	p := d.P

	h := d.Height(in.UV)
	hx := d.Height(in.UV.Add(mgl64.Vec2{delta, 0}))
	hy := d.Height(in.UV.Add(mgl64.Vec2{0, delta}))

	n0 := unit(in.Normal, up)
	t, b := tangentBasis(n0)
	local := unit(mgl64.Vec3{h - hx, h - hy, delta}, mgl64.Vec3{0, 0, 1})
	relief := t.Mul(local[0]).Add(b.Mul(local[1])).Add(n0.Mul(local[2]))
	n := unit(n0.Add(relief.Mul(0.5)), n0)

	l := unit(in.LightDir, up)
	v := unit(in.ViewDir, up)
	diff := gomath.Max(n.Dot(l), 0)
	half := unit(l.Add(v), n)
	spec := gomath.Pow(gomath.Max(n.Dot(half), 0), 32)

	base := mix3(p.Color.Mul(0.3), p.Highlight, dmath.Saturate(h))
	color := base.Mul(diff*0.8 + 0.2).Add(splat(spec * 0.5))
	color = color.Add(splat(hashC(in.UV.Mul(1000)) * 0.02))

	return Output{
		Color:     color,
		Normal:    n,
		Roughness: 0.35,
	}
}
