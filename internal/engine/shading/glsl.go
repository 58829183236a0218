package shading

import (
	"strings"

	"github.com/Faultbox/dunehall/internal/engine/shading/shaders"
)

const glslVersion = "#version 410 core\n"

// Stage selects the vertex program paired with a fragment variant.
type Stage int

const (
	StageMesh Stage = iota
	StageRing
	StageStone
)

// Sources assembles the vertex and fragment GLSL for a variant. heightGLSL
// is the generated height function; it is linked into both stages so any
// vertex program may displace by it.
func Sources(kind Kind, stage Stage, heightGLSL string) (vertex, fragment string) {
	var vs string
	switch stage {
	case StageRing:
		vs = shaders.RingVertex
	case StageStone:
		vs = shaders.StoneVertex
	default:
		vs = shaders.MeshVertex
	}

	var fs string
	switch kind {
	case KindStone:
		fs = shaders.StoneFragment
	case KindMountain:
		fs = shaders.MountainFragment
	case KindDial:
		fs = shaders.DialFragment
	case KindMetal:
		fs = shaders.MetalFragment
	default:
		fs = shaders.SandFragment
	}

	vertex = assemble(heightGLSL, vs)
	fragment = assemble(shaders.Common, heightGLSL, fs)
	return vertex, fragment
}

func assemble(parts ...string) string {
	var b strings.Builder
	b.WriteString(glslVersion)
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(p)
		if !strings.HasSuffix(p, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
