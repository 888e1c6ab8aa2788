// Package shader builds linked shader programs from vertex/fragment source
// and resolves their attribute and uniform locations.
//
// All calls go through a Driver, which wraps whatever graphics context owns
// the objects (desktop OpenGL, WebGL, or a fake in tests). A Builder never
// leaks driver objects: every failure path releases what the attempt
// allocated before the error is returned.
package shader

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

// String returns the lowercase stage name.
func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// ShaderHandle is a driver shader object. Zero is never a valid object.
type ShaderHandle uint32

// ProgramHandle is a driver program object. Zero is never a valid object.
type ProgramHandle uint32

// NoAttrib is the attribute location reported for names the program does not use.
const NoAttrib int32 = -1

// UniformLocation identifies a uniform inside a linked program.
type UniformLocation int32

// NullUniform is the location reported for uniforms the program does not use.
const NullUniform UniformLocation = -1

// Valid reports whether the location refers to an active uniform.
func (l UniformLocation) Valid() bool {
	return l >= 0
}

// Source is a vertex/fragment source pair.
type Source struct {
	Vertex   string
	Fragment string
}

// ForStage returns the source text of the given stage.
func (s Source) ForStage(stage Stage) string {
	if stage == Fragment {
		return s.Fragment
	}
	return s.Vertex
}
