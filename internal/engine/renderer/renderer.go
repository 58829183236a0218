// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/dunehall/internal/engine/mesh"
	"github.com/Faultbox/dunehall/internal/engine/model"
	"github.com/Faultbox/dunehall/internal/engine/scene"
	"github.com/Faultbox/dunehall/internal/engine/shader"
	"github.com/Faultbox/dunehall/internal/engine/shading"
	"github.com/Faultbox/dunehall/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	MSAA   int
	// HeightGLSL is the generated dune height function linked into every
	// program.
	HeightGLSL string
}

type programKey struct {
	kind  shading.Kind
	stage shading.Stage
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// Frame holds what every draw of one frame shares.
type Frame struct {
	View     mgl64.Mat4
	Proj     mgl64.Mat4
	Uniforms Values
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	programs map[programKey]*shader.Program
	meshes   map[*mesh.Mesh]*gpuMesh

	frame   Frame
	current *shader.Program
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      logger.Named("renderer"),
		programs: make(map[programKey]*shader.Program),
		meshes:   make(map[*mesh.Mesh]*gpuMesh),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	if cfg.MSAA > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Prepare uploads every mesh of the scene and compiles every program it
// needs, so the first frames do not stall.
func (r *Renderer) Prepare(s *scene.Scene) error {
	for _, n := range s.Static {
		if err := r.prepare(n.Mesh, n.Shader, n.Stage); err != nil {
			return fmt.Errorf("%s: %w", n.Name, err)
		}
	}
	for _, o := range s.Objects {
		for _, part := range o.Model.Parts {
			if err := r.prepare(part.Mesh, part.Shader, part.Stage); err != nil {
				return fmt.Errorf("%s: %w", o.Placement.ID, err)
			}
		}
	}
	r.log.Info("scene uploaded",
		zap.Int("meshes", len(r.meshes)),
		zap.Int("programs", len(r.programs)),
	)
	return nil
}

func (r *Renderer) prepare(m *mesh.Mesh, sh shading.Model, stage shading.Stage) error {
	if _, err := r.program(sh.Kind(), stage); err != nil {
		return err
	}
	r.upload(m)
	return nil
}

func (r *Renderer) program(kind shading.Kind, stage shading.Stage) (*shader.Program, error) {
	key := programKey{kind: kind, stage: stage}
	if p, ok := r.programs[key]; ok {
		return p, nil
	}
	vs, fs := shading.Sources(kind, stage, r.config.HeightGLSL)
	name := fmt.Sprintf("%s/%d", kind, stage)
	p, err := shader.Compile(name, vs, fs)
	if err != nil {
		return nil, err
	}
	r.programs[key] = p
	r.log.Debug("program compiled", zap.String("program", name), zap.Uint32("id", p.ID))
	return p, nil
}

// upload creates the VAO/VBO/EBO for m once.
func (r *Renderer) upload(m *mesh.Mesh) *gpuMesh {
	if g, ok := r.meshes[m]; ok {
		return g
	}
	g := &gpuMesh{count: int32(len(m.Indices))}
	r.meshes[m] = g
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return g
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*mesh.VertexStride, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, mesh.VertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	// Normal (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, mesh.VertexStride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	// UV (location = 2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, mesh.VertexStride, gl.PtrOffset(6*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return g
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, g := range r.meshes {
		if g.vao != 0 {
			gl.DeleteVertexArrays(1, &g.vao)
			gl.DeleteBuffers(1, &g.vbo)
			gl.DeleteBuffers(1, &g.ebo)
		}
	}
	for _, p := range r.programs {
		p.Delete()
	}
	r.meshes = map[*mesh.Mesh]*gpuMesh{}
	r.programs = map[programKey]*shader.Program{}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Begin starts a new frame cleared to the fog color.
func (r *Renderer) Begin(f Frame) {
	r.frame = f
	r.current = nil
	if c, ok := f.Uniforms["uFogColor"]; ok {
		gl.ClearColor(c.V[0], c.V[1], c.V[2], 1)
	}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	r.current = nil
}

// DrawNodes draws static scene nodes.
func (r *Renderer) DrawNodes(nodes []scene.Node) error {
	for _, n := range nodes {
		if err := r.Draw(n.Mesh, n.Shader, n.Stage, n.Transform); err != nil {
			return fmt.Errorf("%s: %w", n.Name, err)
		}
	}
	return nil
}

// DrawModel draws every part of m with one transform.
func (r *Renderer) DrawModel(m *model.Model, xf mgl64.Mat4) error {
	for _, part := range m.Parts {
		if err := r.Draw(part.Mesh, part.Shader, part.Stage, xf); err != nil {
			return fmt.Errorf("%s: %w", m.Name, err)
		}
	}
	return nil
}

// Draw draws one mesh.
func (r *Renderer) Draw(m *mesh.Mesh, sh shading.Model, stage shading.Stage, xf mgl64.Mat4) error {
	p, err := r.program(sh.Kind(), stage)
	if err != nil {
		return err
	}
	g := r.upload(m)
	if g.count == 0 || g.vao == 0 {
		return nil
	}

	if r.current != p {
		p.Use()
		r.current = p
		r.setMatrix(p, "uView", r.frame.View)
		r.setMatrix(p, "uProj", r.frame.Proj)
		r.setValues(p, r.frame.Uniforms)
	}
	r.setMatrix(p, "uModel", xf)
	r.setValues(p, MaterialUniforms(sh))

	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
	return nil
}

func (r *Renderer) setMatrix(p *shader.Program, name string, m mgl64.Mat4) {
	p.SetMat4(name, mat32(m))
}

func (r *Renderer) setValues(p *shader.Program, vals Values) {
	for name, v := range vals {
		if v.Vec {
			p.SetVec3(name, v.V)
		} else {
			p.SetFloat(name, v.F)
		}
	}
}
