// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// Common holds uniforms and noise helpers shared by every fragment stage.
//
//go:embed common.glsl
var Common string

// MeshVertex is the plain model-space vertex stage.
//
//go:embed mesh.vert
var MeshVertex string

// RingVertex displaces a flat ring by the generated height function.
//
//go:embed ring.vert
var RingVertex string

// StoneVertex carves flutes, chips and wobble into stone meshes.
//
//go:embed stone.vert
var StoneVertex string

//go:embed sand.frag
var SandFragment string

//go:embed stone.frag
var StoneFragment string

//go:embed mountain.frag
var MountainFragment string

//go:embed dial.frag
var DialFragment string

//go:embed metal.frag
var MetalFragment string
