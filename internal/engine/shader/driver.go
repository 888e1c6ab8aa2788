package shader

// Driver is the subset of a graphics context the builder needs.
//
// Implementations are not safe for concurrent use; callers must stay on the
// thread that owns the context. Create* return zero when the context cannot
// allocate an object (for example after a lost context).
type Driver interface {
	CreateShader(stage Stage) ShaderHandle
	ShaderSource(shader ShaderHandle, source string)
	CompileShader(shader ShaderHandle)
	ShaderCompiled(shader ShaderHandle) bool
	ShaderInfoLog(shader ShaderHandle) string
	DeleteShader(shader ShaderHandle)

	CreateProgram() ProgramHandle
	AttachShader(program ProgramHandle, shader ShaderHandle)
	LinkProgram(program ProgramHandle)
	ProgramLinked(program ProgramHandle) bool
	ProgramInfoLog(program ProgramHandle) string
	DeleteProgram(program ProgramHandle)

	AttribLocation(program ProgramHandle, name string) int32
	UniformLocation(program ProgramHandle, name string) UniformLocation
}
