//go:build !js

package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLDriver issues calls against the current OpenGL 4.1 core context.
// gl.Init must have succeeded on the calling thread.
type GLDriver struct{}

// NewGLDriver returns a driver for the current OpenGL context.
func NewGLDriver() *GLDriver {
	return &GLDriver{}
}

func glStage(stage Stage) uint32 {
	if stage == Fragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (d *GLDriver) CreateShader(stage Stage) ShaderHandle {
	return ShaderHandle(gl.CreateShader(glStage(stage)))
}

func (d *GLDriver) ShaderSource(shader ShaderHandle, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(shader), 1, csource, nil)
	free()
}

func (d *GLDriver) CompileShader(shader ShaderHandle) {
	gl.CompileShader(uint32(shader))
}

func (d *GLDriver) ShaderCompiled(shader ShaderHandle) bool {
	var status int32
	gl.GetShaderiv(uint32(shader), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *GLDriver) ShaderInfoLog(shader ShaderHandle) string {
	var logLen int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetShaderInfoLog(uint32(shader), logLen, nil, &log[0])
	return string(log)
}

func (d *GLDriver) DeleteShader(shader ShaderHandle) {
	gl.DeleteShader(uint32(shader))
}

func (d *GLDriver) CreateProgram() ProgramHandle {
	return ProgramHandle(gl.CreateProgram())
}

func (d *GLDriver) AttachShader(program ProgramHandle, shader ShaderHandle) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (d *GLDriver) LinkProgram(program ProgramHandle) {
	gl.LinkProgram(uint32(program))
}

func (d *GLDriver) ProgramLinked(program ProgramHandle) bool {
	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *GLDriver) ProgramInfoLog(program ProgramHandle) string {
	var logLen int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetProgramInfoLog(uint32(program), logLen, nil, &log[0])
	return string(log)
}

func (d *GLDriver) DeleteProgram(program ProgramHandle) {
	gl.DeleteProgram(uint32(program))
}

func (d *GLDriver) AttribLocation(program ProgramHandle, name string) int32 {
	return gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00"))
}

func (d *GLDriver) UniformLocation(program ProgramHandle, name string) UniformLocation {
	return UniformLocation(gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00")))
}
