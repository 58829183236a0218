package heightfield

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"
)

// FuncName is the name of the generated GLSL elevation function.
const FuncName = "duneHeight"

var glslTemplate = template.Must(template.New("dune").Funcs(template.FuncMap{
	"f":   glslFloat,
	"pow": glslPow,
}).Parse(`// generated from heightfield.Params; edit the Go table, not this text
float {{.Name}}(vec2 p) {
    float dist = length(p);
    float blend = 0.0;
    if (dist >= {{f .P.PlatformRadius}}) {
        blend = smoothstep({{f .P.PlatformRadius}}, {{f .P.BlendRadius}}, dist);
    }
    if (blend <= {{f .P.BlendEpsilon}}) {
        return {{f .P.PlatformHeight}};
    }
    float wx = p.x + sin(p.y * {{f .P.WarpFreq}}) * {{f .P.WarpAmp}};
    float wz = p.y + sin(p.x * {{f .P.WarpFreq}} * 1.5) * {{f .P.WarpAmp}};
    float y = (1.0 - abs(sin(wx * {{f .P.PrimaryFreq}}))) * {{f .P.PrimaryAmp}};
    float ridge = 1.0 - abs(sin(wz * {{f .P.SecondaryFreq}} + wx * {{f .P.SecondarySkew}} * {{f .P.SecondaryFreq}}));
    y += {{pow "ridge" .P.SecondaryPower}} * {{f .P.SecondaryAmp}};
    y += sin(p.x * {{f .P.RippleFreq}}) * cos(p.y * {{f .P.RippleFreq}} * 1.2) * {{f .P.RippleAmp}};
    y += sin(p.x * {{f .P.RollFreqX}}) * {{f .P.RollAmp}} + cos(p.y * {{f .P.RollFreqZ}}) * {{f .P.RollAmp}};
    return y * blend - {{f .P.BaseOffset}};
}
`))

// GLSL returns a GLSL function `float duneHeight(vec2 worldXZ)` that
// evaluates the same law as Elevation with the field's constants inlined.
func (f *Field) GLSL() string {
	var buf bytes.Buffer
	// The template only formats numbers; execution cannot fail on valid Params.
	_ = glslTemplate.Execute(&buf, struct {
		Name string
		P    Params
	}{FuncName, f.p})
	return buf.String()
}

// glslFloat formats v as a GLSL float literal (always with a decimal point).
func glslFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// glslPow expands an integer power into repeated multiplication, which
// avoids pow() being undefined for negative bases on some drivers.
func glslPow(name string, n int) string {
	if n <= 1 {
		return name
	}
	return "(" + strings.TrimSuffix(strings.Repeat(name+" * ", n), " * ") + ")"
}
