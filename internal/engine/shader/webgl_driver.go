//go:build js && wasm

package shader

import "syscall/js"

type uniformKey struct {
	program ProgramHandle
	name    string
}

// WebGLDriver issues calls against a browser WebGL rendering context.
//
// WebGL hands out JS objects rather than integers, so the driver keeps them
// in registries keyed by the handles it returns.
type WebGLDriver struct {
	gl js.Value

	vertexShader   int
	fragmentShader int
	compileStatus  int
	linkStatus     int

	next     uint32
	shaders  map[ShaderHandle]js.Value
	programs map[ProgramHandle]js.Value

	nextUniform UniformLocation
	uniformIDs  map[uniformKey]UniformLocation
	uniforms    map[UniformLocation]js.Value
}

// NewWebGLDriver wraps a WebGL or WebGL2 context object.
func NewWebGLDriver(gl js.Value) *WebGLDriver {
	return &WebGLDriver{
		gl:             gl,
		vertexShader:   gl.Get("VERTEX_SHADER").Int(),
		fragmentShader: gl.Get("FRAGMENT_SHADER").Int(),
		compileStatus:  gl.Get("COMPILE_STATUS").Int(),
		linkStatus:     gl.Get("LINK_STATUS").Int(),
		shaders:        make(map[ShaderHandle]js.Value),
		programs:       make(map[ProgramHandle]js.Value),
		uniformIDs:     make(map[uniformKey]UniformLocation),
		uniforms:       make(map[UniformLocation]js.Value),
	}
}

func (d *WebGLDriver) id() uint32 {
	d.next++
	return d.next
}

func present(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

// Program returns the JS program object for h, for use with gl.useProgram.
func (d *WebGLDriver) Program(h ProgramHandle) js.Value {
	if v, ok := d.programs[h]; ok {
		return v
	}
	return js.Null()
}

// Uniform returns the JS location object for l, or null.
func (d *WebGLDriver) Uniform(l UniformLocation) js.Value {
	if v, ok := d.uniforms[l]; ok {
		return v
	}
	return js.Null()
}

func (d *WebGLDriver) CreateShader(stage Stage) ShaderHandle {
	kind := d.vertexShader
	if stage == Fragment {
		kind = d.fragmentShader
	}
	v := d.gl.Call("createShader", kind)
	if !present(v) {
		return 0
	}
	h := ShaderHandle(d.id())
	d.shaders[h] = v
	return h
}

func (d *WebGLDriver) ShaderSource(shader ShaderHandle, source string) {
	d.gl.Call("shaderSource", d.shaders[shader], source)
}

func (d *WebGLDriver) CompileShader(shader ShaderHandle) {
	d.gl.Call("compileShader", d.shaders[shader])
}

func (d *WebGLDriver) ShaderCompiled(shader ShaderHandle) bool {
	return d.gl.Call("getShaderParameter", d.shaders[shader], d.compileStatus).Truthy()
}

func (d *WebGLDriver) ShaderInfoLog(shader ShaderHandle) string {
	v := d.gl.Call("getShaderInfoLog", d.shaders[shader])
	if !present(v) {
		return ""
	}
	return v.String()
}

func (d *WebGLDriver) DeleteShader(shader ShaderHandle) {
	if v, ok := d.shaders[shader]; ok {
		d.gl.Call("deleteShader", v)
		delete(d.shaders, shader)
	}
}

func (d *WebGLDriver) CreateProgram() ProgramHandle {
	v := d.gl.Call("createProgram")
	if !present(v) {
		return 0
	}
	h := ProgramHandle(d.id())
	d.programs[h] = v
	return h
}

func (d *WebGLDriver) AttachShader(program ProgramHandle, shader ShaderHandle) {
	d.gl.Call("attachShader", d.programs[program], d.shaders[shader])
}

func (d *WebGLDriver) LinkProgram(program ProgramHandle) {
	d.gl.Call("linkProgram", d.programs[program])
}

func (d *WebGLDriver) ProgramLinked(program ProgramHandle) bool {
	return d.gl.Call("getProgramParameter", d.programs[program], d.linkStatus).Truthy()
}

func (d *WebGLDriver) ProgramInfoLog(program ProgramHandle) string {
	v := d.gl.Call("getProgramInfoLog", d.programs[program])
	if !present(v) {
		return ""
	}
	return v.String()
}

func (d *WebGLDriver) DeleteProgram(program ProgramHandle) {
	v, ok := d.programs[program]
	if !ok {
		return
	}
	d.gl.Call("deleteProgram", v)
	delete(d.programs, program)
	for key, id := range d.uniformIDs {
		if key.program == program {
			delete(d.uniformIDs, key)
			delete(d.uniforms, id)
		}
	}
}

func (d *WebGLDriver) AttribLocation(program ProgramHandle, name string) int32 {
	return int32(d.gl.Call("getAttribLocation", d.programs[program], name).Int())
}

func (d *WebGLDriver) UniformLocation(program ProgramHandle, name string) UniformLocation {
	key := uniformKey{program: program, name: name}
	if id, ok := d.uniformIDs[key]; ok {
		return id
	}
	v := d.gl.Call("getUniformLocation", d.programs[program], name)
	if !present(v) {
		return NullUniform
	}
	id := d.nextUniform
	d.nextUniform++
	d.uniforms[id] = v
	d.uniformIDs[key] = id
	return id
}
