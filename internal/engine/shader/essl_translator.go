//go:build !js

package shader

import (
	"context"
	"fmt"

	gst "github.com/richinsley/goshadertranslator"
)

// ESSLTranslator converts WebGL shader source to desktop GLSL 4.10 or ESSL 3.00.
type ESSLTranslator struct {
	translator *gst.ShaderTranslator
	spec       gst.ShaderSpec
	gles       bool
}

// NewESSLTranslator loads the translator module for sources written in
// dialect. An empty dialect means WebGL1. Set gles for ES contexts.
func NewESSLTranslator(ctx context.Context, dialect Dialect, gles bool) (*ESSLTranslator, error) {
	var spec gst.ShaderSpec
	switch dialect {
	case "", WebGL1:
		// WebGL2 rejects highp in ESSL 1.00 fragment shaders
		spec = gst.ShaderSpecWebGL
	case WebGL2:
		spec = gst.ShaderSpecWebGL2
	default:
		return nil, fmt.Errorf("unknown shader dialect %q", dialect)
	}

	t, err := gst.NewShaderTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading shader translator: %w", err)
	}
	return &ESSLTranslator{translator: t, spec: spec, gles: gles}, nil
}

// Translate implements Translator.
func (t *ESSLTranslator) Translate(stage Stage, source string) (Translated, error) {
	outputFormat := gst.OutputFormatGLSL410
	if t.gles {
		outputFormat = gst.OutputFormatESSL
	}
	out, err := t.translator.TranslateShader(source, stage.String(), t.spec, outputFormat)
	if err != nil {
		return Translated{}, err
	}

	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return Translated{Code: out.Code, Names: names}, nil
}

// Close releases the translator module.
func (t *ESSLTranslator) Close() error {
	return t.translator.Close()
}
