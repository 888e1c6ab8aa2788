package shader

// Translated is the output of a Translator.
type Translated struct {
	Code string
	// Names maps source identifiers to the identifiers in Code.
	Names map[string]string
}

// Translator rewrites stage source before it is handed to the driver.
type Translator interface {
	Translate(stage Stage, source string) (Translated, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(stage Stage, source string) (Translated, error)

// Translate calls f.
func (f TranslatorFunc) Translate(stage Stage, source string) (Translated, error) {
	return f(stage, source)
}

// Dialect is the shading language a Translator reads.
type Dialect string

const (
	WebGL1 Dialect = "webgl"  // ESSL 1.00: attribute, varying, gl_FragColor
	WebGL2 Dialect = "webgl2" // ESSL 3.00: in, out, #version 300 es
)
