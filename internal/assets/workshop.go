package assets

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/Faultbox/glworkshop/internal/engine/shader"
)

//go:embed shaders/*.vert shaders/*.frag
var embedded embed.FS

// Embedded returns the workshop shader files, rooted at the shaders directory.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "shaders")
	if err != nil {
		panic(err)
	}
	return sub
}

// VariantDef names the files and bindings of a shader variant.
type VariantDef struct {
	Name       string
	Vertex     string
	Fragment   string
	Attributes []string
	Uniforms   []string
}

// Workshop returns the three workshop variants in teaching order.
func Workshop() []VariantDef {
	return []VariantDef{
		{
			Name:       "color",
			Vertex:     "color.vert",
			Fragment:   "color.frag",
			Attributes: []string{"position"},
			Uniforms:   []string{"projMat", "modelViewMat"},
		},
		{
			Name:       "texture",
			Vertex:     "texture.vert",
			Fragment:   "texture.frag",
			Attributes: []string{"position", "texCoord"},
			Uniforms:   []string{"projMat", "modelViewMat", "textureImg"},
		},
		{
			Name:       "lighting",
			Vertex:     "lighting.vert",
			Fragment:   "lighting.frag",
			Attributes: []string{"position", "texCoord", "normal"},
			Uniforms:   []string{"projMat", "modelViewMat", "normalMat", "textureImg"},
		},
	}
}

// Variant loads the sources of def into a shader.Variant.
func (m *Manager) Variant(def VariantDef) (shader.Variant, error) {
	vert, err := m.Load(def.Vertex)
	if err != nil {
		return shader.Variant{}, fmt.Errorf("variant %s: %w", def.Name, err)
	}
	frag, err := m.Load(def.Fragment)
	if err != nil {
		return shader.Variant{}, fmt.Errorf("variant %s: %w", def.Name, err)
	}
	return shader.Variant{
		Name:       def.Name,
		Source:     shader.Source{Vertex: vert, Fragment: frag},
		Attributes: def.Attributes,
		Uniforms:   def.Uniforms,
	}, nil
}
