// Package shadertest provides an in-memory shader.Driver for tests.
//
// The fake compiler understands just enough GLSL to reject unbalanced
// delimiters, a missing main and #error directives. Its linker requires the
// vertex and fragment varying sets to match exactly and assigns locations
// only to inputs referenced outside their declaration, the way real drivers
// drop unused declarations.
package shadertest

import (
	"github.com/Faultbox/glworkshop/internal/engine/shader"
)

type shaderObject struct {
	stage         shader.Stage
	source        string
	unit          *unit
	compiled      bool
	log           string
	deletePending bool
	attached      map[shader.ProgramHandle]bool
}

type programObject struct {
	shaders []shader.ShaderHandle
	linked  bool
	log     string
	linkage *linkage
}

// Driver is a fake shader.Driver. It follows OpenGL deletion rules: a shader
// deleted while attached is freed when the last program holding it is deleted.
type Driver struct {
	// NoShaderObjects makes CreateShader return 0.
	NoShaderObjects bool
	// NoProgramObjects makes CreateProgram return 0.
	NoProgramObjects bool

	next     uint32
	shaders  map[shader.ShaderHandle]*shaderObject
	programs map[shader.ProgramHandle]*programObject

	created    int
	freed      int
	invalidOps int
	compiles   int
	links      int
}

// New returns an empty fake driver.
func New() *Driver {
	return &Driver{
		shaders:  make(map[shader.ShaderHandle]*shaderObject),
		programs: make(map[shader.ProgramHandle]*programObject),
	}
}

// Created returns the number of objects ever allocated.
func (d *Driver) Created() int { return d.created }

// Freed returns the number of objects actually released.
func (d *Driver) Freed() int { return d.freed }

// Live returns the number of allocated objects not yet released.
func (d *Driver) Live() int { return d.created - d.freed }

// LiveShaders returns the number of shader objects not yet released.
func (d *Driver) LiveShaders() int { return len(d.shaders) }

// LivePrograms returns the number of program objects not yet released.
func (d *Driver) LivePrograms() int { return len(d.programs) }

// InvalidOps counts calls made with unknown or already released handles.
func (d *Driver) InvalidOps() int { return d.invalidOps }

// Compiles counts CompileShader calls.
func (d *Driver) Compiles() int { return d.compiles }

// Links counts LinkProgram calls.
func (d *Driver) Links() int { return d.links }

// Source returns the text last uploaded to a live shader.
func (d *Driver) Source(h shader.ShaderHandle) string {
	if s, ok := d.shaders[h]; ok {
		return s.source
	}
	return ""
}

func (d *Driver) shader(h shader.ShaderHandle) *shaderObject {
	s, ok := d.shaders[h]
	if !ok {
		d.invalidOps++
	}
	return s
}

func (d *Driver) program(h shader.ProgramHandle) *programObject {
	p, ok := d.programs[h]
	if !ok {
		d.invalidOps++
	}
	return p
}

func (d *Driver) CreateShader(stage shader.Stage) shader.ShaderHandle {
	if d.NoShaderObjects {
		return 0
	}
	d.next++
	h := shader.ShaderHandle(d.next)
	d.shaders[h] = &shaderObject{stage: stage, attached: map[shader.ProgramHandle]bool{}}
	d.created++
	return h
}

func (d *Driver) ShaderSource(h shader.ShaderHandle, source string) {
	if s := d.shader(h); s != nil {
		s.source = source
	}
}

func (d *Driver) CompileShader(h shader.ShaderHandle) {
	s := d.shader(h)
	if s == nil {
		return
	}
	d.compiles++
	s.unit, s.log = compile(s.stage, s.source)
	s.compiled = s.unit != nil
}

func (d *Driver) ShaderCompiled(h shader.ShaderHandle) bool {
	s := d.shader(h)
	return s != nil && s.compiled
}

func (d *Driver) ShaderInfoLog(h shader.ShaderHandle) string {
	if s := d.shader(h); s != nil {
		return s.log
	}
	return ""
}

func (d *Driver) DeleteShader(h shader.ShaderHandle) {
	s := d.shader(h)
	if s == nil {
		return
	}
	if s.deletePending {
		return
	}
	if len(s.attached) > 0 {
		s.deletePending = true
		return
	}
	delete(d.shaders, h)
	d.freed++
}

func (d *Driver) CreateProgram() shader.ProgramHandle {
	if d.NoProgramObjects {
		return 0
	}
	d.next++
	h := shader.ProgramHandle(d.next)
	d.programs[h] = &programObject{}
	d.created++
	return h
}

func (d *Driver) AttachShader(ph shader.ProgramHandle, sh shader.ShaderHandle) {
	p := d.program(ph)
	s := d.shader(sh)
	if p == nil || s == nil {
		return
	}
	p.shaders = append(p.shaders, sh)
	s.attached[ph] = true
}

func (d *Driver) LinkProgram(ph shader.ProgramHandle) {
	p := d.program(ph)
	if p == nil {
		return
	}
	d.links++
	p.linked, p.linkage = false, nil

	var vert, frag *unit
	for _, sh := range p.shaders {
		s := d.shaders[sh]
		if s == nil || !s.compiled {
			p.log = "ERROR: attached shader is not compiled\n"
			return
		}
		if s.stage == shader.Vertex {
			vert = s.unit
		} else {
			frag = s.unit
		}
	}
	if vert == nil || frag == nil {
		p.log = "ERROR: program needs a vertex and a fragment shader\n"
		return
	}

	p.linkage, p.log = link(vert, frag)
	p.linked = p.linkage != nil
}

func (d *Driver) ProgramLinked(ph shader.ProgramHandle) bool {
	p := d.program(ph)
	return p != nil && p.linked
}

func (d *Driver) ProgramInfoLog(ph shader.ProgramHandle) string {
	if p := d.program(ph); p != nil {
		return p.log
	}
	return ""
}

func (d *Driver) DeleteProgram(ph shader.ProgramHandle) {
	p := d.program(ph)
	if p == nil {
		return
	}
	for _, sh := range p.shaders {
		s, ok := d.shaders[sh]
		if !ok {
			continue
		}
		delete(s.attached, ph)
		if s.deletePending && len(s.attached) == 0 {
			delete(d.shaders, sh)
			d.freed++
		}
	}
	delete(d.programs, ph)
	d.freed++
}

func (d *Driver) AttribLocation(ph shader.ProgramHandle, name string) int32 {
	p := d.program(ph)
	if p == nil || !p.linked {
		return shader.NoAttrib
	}
	if loc, ok := p.linkage.attribs[name]; ok {
		return loc
	}
	return shader.NoAttrib
}

func (d *Driver) UniformLocation(ph shader.ProgramHandle, name string) shader.UniformLocation {
	p := d.program(ph)
	if p == nil || !p.linked {
		return shader.NullUniform
	}
	if loc, ok := p.linkage.uniforms[name]; ok {
		return loc
	}
	return shader.NullUniform
}

var _ shader.Driver = (*Driver)(nil)
