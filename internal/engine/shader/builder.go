package shader

import (
	"fmt"

	"go.uber.org/zap"
)

// State is the progress of a single build attempt.
type State int

const (
	Unbuilt State = iota
	CompilingVertex
	CompilingFragment
	Linking
	Linked
	Failed
)

func (s State) String() string {
	switch s {
	case Unbuilt:
		return "unbuilt"
	case CompilingVertex:
		return "compiling-vertex"
	case CompilingFragment:
		return "compiling-fragment"
	case Linking:
		return "linking"
	case Linked:
		return "linked"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Linked || s == Failed
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// WithTranslator runs every stage through t before it reaches the driver.
func WithTranslator(t Translator) Option {
	return func(b *Builder) {
		b.translator = t
	}
}

// Builder compiles and links shader programs against a Driver.
//
// A Builder keeps no state between attempts, so it can be reused for any
// number of sequential builds on the context's thread.
type Builder struct {
	driver     Driver
	translator Translator
	log        *zap.Logger
}

// NewBuilder creates a builder for the given driver.
func NewBuilder(driver Driver, opts ...Option) *Builder {
	b := &Builder{
		driver: driver,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Driver returns the driver the builder allocates objects from.
func (b *Builder) Driver() Driver {
	return b.driver
}

// attempt tracks one pass through the build state machine.
type attempt struct {
	state State
	log   *zap.Logger
	names map[string]string
}

func (a *attempt) to(next State) {
	a.log.Debug("shader build", zap.Stringer("from", a.state), zap.Stringer("to", next))
	a.state = next
}

// Compile compiles a single stage and returns the shader object.
// On failure no shader object remains allocated.
func (b *Builder) Compile(stage Stage, source string) (ShaderHandle, error) {
	shader, _, err := b.compile(stage, source)
	return shader, err
}

func (b *Builder) compile(stage Stage, source string) (ShaderHandle, map[string]string, error) {
	if source == "" {
		return 0, nil, fmt.Errorf("%s shader: %w", stage, ErrEmptySource)
	}

	var names map[string]string
	if b.translator != nil {
		out, err := b.translator.Translate(stage, source)
		if err != nil {
			return 0, nil, &CompileError{Stage: stage, Log: diagnostic(err.Error(), "translation failed")}
		}
		source = out.Code
		names = out.Names
	}

	shader := b.driver.CreateShader(stage)
	if shader == 0 {
		return 0, nil, fmt.Errorf("%s shader: %w", stage, ErrNoObject)
	}
	b.driver.ShaderSource(shader, source)
	b.driver.CompileShader(shader)

	if !b.driver.ShaderCompiled(shader) {
		log := diagnostic(b.driver.ShaderInfoLog(shader), "compilation failed without a log")
		b.driver.DeleteShader(shader)
		return 0, nil, &CompileError{Stage: stage, Log: log}
	}

	return shader, names, nil
}

// Build is Link for a Source pair.
func (b *Builder) Build(src Source) (*Program, error) {
	return b.Link(src.Vertex, src.Fragment)
}

// Link compiles both stages and links them into a program.
// Ownership of the returned program passes to the caller.
func (b *Builder) Link(vertexSrc, fragmentSrc string) (*Program, error) {
	a := &attempt{log: b.log}

	a.to(CompilingVertex)
	vert, vertNames, err := b.compile(Vertex, vertexSrc)
	if err != nil {
		return nil, b.fail(a, err)
	}

	a.to(CompilingFragment)
	frag, fragNames, err := b.compile(Fragment, fragmentSrc)
	if err != nil {
		b.driver.DeleteShader(vert)
		return nil, b.fail(a, err)
	}
	a.names = mergeNames(vertNames, fragNames)

	a.to(Linking)
	program := b.driver.CreateProgram()
	if program == 0 {
		b.driver.DeleteShader(vert)
		b.driver.DeleteShader(frag)
		return nil, b.fail(a, fmt.Errorf("program: %w", ErrNoObject))
	}
	b.driver.AttachShader(program, vert)
	b.driver.AttachShader(program, frag)
	b.driver.LinkProgram(program)

	if !b.driver.ProgramLinked(program) {
		log := diagnostic(b.driver.ProgramInfoLog(program), "linking failed without a log")
		b.driver.DeleteShader(vert)
		b.driver.DeleteShader(frag)
		b.driver.DeleteProgram(program)
		return nil, b.fail(a, &LinkError{Log: log})
	}

	// Attached shaders are only flagged; the driver frees them with the program.
	b.driver.DeleteShader(vert)
	b.driver.DeleteShader(frag)

	a.to(Linked)
	b.log.Debug("shader program linked", zap.Uint32("program", uint32(program)))

	return &Program{
		handle: program,
		driver: b.driver,
		names:  a.names,
	}, nil
}

func (b *Builder) fail(a *attempt, err error) error {
	from := a.state
	a.to(Failed)
	b.log.Warn("shader build failed", zap.Stringer("state", from), zap.Error(err))
	return err
}

// BuildVariant builds v and resolves its declared attributes and uniforms.
func (b *Builder) BuildVariant(v Variant) (*Program, *LocationTable, error) {
	program, err := b.Build(v.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("variant %s: %w", v.Name, err)
	}
	table := ResolveLocations(program, v.Attributes, v.Uniforms)
	b.log.Debug("variant built",
		zap.String("variant", v.Name),
		zap.Strings("missing_attributes", table.MissingAttribs()),
		zap.Strings("missing_uniforms", table.MissingUniforms()),
	)
	return program, table, nil
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
