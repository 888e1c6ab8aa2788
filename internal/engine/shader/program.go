package shader

import "sort"

// Program is a linked shader program owned by the caller.
type Program struct {
	handle  ProgramHandle
	driver  Driver
	names   map[string]string
	deleted bool
}

// Handle returns the driver program object, or zero once deleted.
func (p *Program) Handle() ProgramHandle {
	if p == nil || p.deleted {
		return 0
	}
	return p.handle
}

// Deleted reports whether Delete has been called.
func (p *Program) Deleted() bool {
	return p == nil || p.deleted
}

// Delete releases the program. Tables resolved from it become invalid.
// Calling Delete more than once is a no-op.
func (p *Program) Delete() {
	if p == nil || p.deleted {
		return
	}
	p.driver.DeleteProgram(p.handle)
	p.deleted = true
}

// driverName maps a source identifier to the name the driver knows it by.
func (p *Program) driverName(name string) string {
	if mapped, ok := p.names[name]; ok && mapped != "" {
		return mapped
	}
	return name
}

// LocationTable maps attribute and uniform names to locations in one program.
type LocationTable struct {
	program  *Program
	attribs  map[string]int32
	uniforms map[string]UniformLocation
}

// ResolveLocations queries the locations of the named attributes and uniforms.
//
// Names the program does not use resolve to NoAttrib or NullUniform: drivers
// drop unused declarations, so absence is not an error. A deleted program
// yields a table with every name absent.
func ResolveLocations(p *Program, attribs, uniforms []string) *LocationTable {
	t := &LocationTable{
		program:  p,
		attribs:  make(map[string]int32, len(attribs)),
		uniforms: make(map[string]UniformLocation, len(uniforms)),
	}

	live := !p.Deleted()
	for _, name := range attribs {
		loc := NoAttrib
		if live {
			loc = p.driver.AttribLocation(p.handle, p.driverName(name))
		}
		if loc < 0 {
			loc = NoAttrib
		}
		t.attribs[name] = loc
	}
	for _, name := range uniforms {
		loc := NullUniform
		if live {
			loc = p.driver.UniformLocation(p.handle, p.driverName(name))
		}
		if !loc.Valid() {
			loc = NullUniform
		}
		t.uniforms[name] = loc
	}

	return t
}

// Program returns the program the table was resolved from.
func (t *LocationTable) Program() *Program {
	return t.program
}

// BelongsTo reports whether the table was resolved from p.
func (t *LocationTable) BelongsTo(p *Program) bool {
	return t.program == p
}

// Valid reports whether the owning program is still alive.
func (t *LocationTable) Valid() bool {
	return !t.program.Deleted()
}

// Attrib returns the location of an attribute, or NoAttrib.
func (t *LocationTable) Attrib(name string) int32 {
	if !t.Valid() {
		return NoAttrib
	}
	if loc, ok := t.attribs[name]; ok {
		return loc
	}
	return NoAttrib
}

// Uniform returns the location of a uniform, or NullUniform.
func (t *LocationTable) Uniform(name string) UniformLocation {
	if !t.Valid() {
		return NullUniform
	}
	if loc, ok := t.uniforms[name]; ok {
		return loc
	}
	return NullUniform
}

// HasAttrib reports whether name was resolved to an active attribute.
func (t *LocationTable) HasAttrib(name string) bool {
	return t.Attrib(name) >= 0
}

// HasUniform reports whether name was resolved to an active uniform.
func (t *LocationTable) HasUniform(name string) bool {
	return t.Uniform(name).Valid()
}

// Attribs returns a copy of the attribute locations.
func (t *LocationTable) Attribs() map[string]int32 {
	out := make(map[string]int32, len(t.attribs))
	for k, v := range t.attribs {
		out[k] = v
	}
	return out
}

// Uniforms returns a copy of the uniform locations.
func (t *LocationTable) Uniforms() map[string]UniformLocation {
	out := make(map[string]UniformLocation, len(t.uniforms))
	for k, v := range t.uniforms {
		out[k] = v
	}
	return out
}

// MissingAttribs lists requested attributes the program does not use, sorted.
func (t *LocationTable) MissingAttribs() []string {
	var out []string
	for name, loc := range t.attribs {
		if loc < 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// MissingUniforms lists requested uniforms the program does not use, sorted.
func (t *LocationTable) MissingUniforms() []string {
	var out []string
	for name, loc := range t.uniforms {
		if !loc.Valid() {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both tables belong to the same program and hold the same locations.
func (t *LocationTable) Equal(o *LocationTable) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.program != o.program || len(t.attribs) != len(o.attribs) || len(t.uniforms) != len(o.uniforms) {
		return false
	}
	for k, v := range t.attribs {
		if ov, ok := o.attribs[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range t.uniforms {
		if ov, ok := o.uniforms[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
