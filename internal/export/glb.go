// Package export writes offline artifacts of the scene: a binary glTF of
// the static geometry and the elevation scan image.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/dunehall/internal/engine/mesh"
	"github.com/Faultbox/dunehall/internal/engine/scene"
	"github.com/Faultbox/dunehall/internal/engine/shading"
	"github.com/Faultbox/dunehall/internal/game/entity"
	"github.com/Faultbox/dunehall/internal/logger"
)

// GLBOptions selects what goes into the export.
type GLBOptions struct {
	// Objects adds the watches at their rest poses.
	Objects bool
}

// Document converts the scene into a glTF document. Meshes and materials
// shared between nodes are written once. Nodes displaced on the GPU have no
// CPU geometry to export and are skipped.
func Document(s *scene.Scene, opts GLBOptions) *gltf.Document {
	log := logger.Named("export")
	doc := gltf.NewDocument()
	b := &builder{
		doc:       doc,
		meshes:    make(map[*mesh.Mesh]int),
		materials: make(map[shading.Model]int),
	}

	for _, n := range s.Static {
		if n.Stage == shading.StageRing {
			log.Debug("skipping gpu-displaced node", zap.String("node", n.Name))
			continue
		}
		b.node(n.Name, n.Mesh, n.Shader, [16]float64(n.Transform))
	}

	if opts.Objects {
		for _, o := range s.Objects {
			xf := entity.Transform(o.Placement.Pos(), o.Placement.Rot())
			for i, part := range o.Model.Parts {
				b.node(fmt.Sprintf("%s/%d", o.Placement.ID, i), part.Mesh, part.Shader, [16]float64(xf))
			}
		}
	}
	return doc
}

type builder struct {
	doc       *gltf.Document
	meshes    map[*mesh.Mesh]int
	materials map[shading.Model]int
}

func (b *builder) node(name string, m *mesh.Mesh, shader shading.Model, matrix [16]float64) {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return
	}
	idx := b.mesh(m, b.material(shader))
	b.doc.Nodes = append(b.doc.Nodes, &gltf.Node{
		Name:   name,
		Mesh:   gltf.Index(idx),
		Matrix: matrix,
	})
	b.doc.Scenes[0].Nodes = append(b.doc.Scenes[0].Nodes, len(b.doc.Nodes)-1)
}

func (b *builder) material(shader shading.Model) int {
	if idx, ok := b.materials[shader]; ok {
		return idx
	}
	sw := shading.SwatchOf(shader)
	b.doc.Materials = append(b.doc.Materials, &gltf.Material{
		Name: shader.Kind().String(),
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{sw.Color.X(), sw.Color.Y(), sw.Color.Z(), 1},
			MetallicFactor:  gltf.Float(sw.Metallic),
			RoughnessFactor: gltf.Float(sw.Roughness),
		},
	})
	idx := len(b.doc.Materials) - 1
	b.materials[shader] = idx
	return idx
}

func (b *builder) mesh(m *mesh.Mesh, material int) int {
	if idx, ok := b.meshes[m]; ok {
		return idx
	}
	positions := make([][3]float32, len(m.Vertices))
	normals := make([][3]float32, len(m.Vertices))
	uvs := make([][2]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		uvs[i] = v.UV
	}

	b.doc.Meshes = append(b.doc.Meshes, &gltf.Mesh{
		Name: m.Name,
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(modeler.WriteIndices(b.doc, m.Indices)),
			Attributes: gltf.PrimitiveAttributes{
				gltf.POSITION:   modeler.WritePosition(b.doc, positions),
				gltf.NORMAL:     modeler.WriteNormal(b.doc, normals),
				gltf.TEXCOORD_0: modeler.WriteTextureCoord(b.doc, uvs),
			},
			Material: gltf.Index(material),
		}},
	})
	idx := len(b.doc.Meshes) - 1
	b.meshes[m] = idx
	return idx
}

// WriteGLB encodes the scene as binary glTF.
func WriteGLB(w io.Writer, s *scene.Scene, opts GLBOptions) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(Document(s, opts)); err != nil {
		return fmt.Errorf("encoding glb: %w", err)
	}
	return nil
}

// SaveGLB writes the scene to path as binary glTF.
func SaveGLB(path string, s *scene.Scene, opts GLBOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteGLB(f, s, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
