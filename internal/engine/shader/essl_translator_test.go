//go:build !js

package shader_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Faultbox/glworkshop/internal/assets"
	"github.com/Faultbox/glworkshop/internal/engine/shader"
	"github.com/Faultbox/glworkshop/internal/engine/shader/shadertest"
)

func newESSLTranslator(t *testing.T, dialect shader.Dialect) *shader.ESSLTranslator {
	t.Helper()
	tr, err := shader.NewESSLTranslator(context.Background(), dialect, false)
	if err != nil {
		t.Fatalf("failed to load translator: %v", err)
	}
	t.Cleanup(func() { tr.Close() })
	return tr
}

func TestESSLTranslatorBuildsWorkshop(t *testing.T) {
	tr := newESSLTranslator(t, shader.WebGL1)
	driver := shadertest.New()
	builder := shader.NewBuilder(driver, shader.WithTranslator(tr))
	manager := assets.NewManager()

	for _, def := range assets.Workshop() {
		t.Run(def.Name, func(t *testing.T) {
			v, err := manager.Variant(def)
			if err != nil {
				t.Fatal(err)
			}
			program, table, err := builder.BuildVariant(v)
			if err != nil {
				t.Fatalf("expected translated variant to build: %v", err)
			}
			defer program.Delete()

			if missing := table.MissingAttribs(); len(missing) != 0 {
				t.Errorf("attributes lost in translation: %v", missing)
			}
			if missing := table.MissingUniforms(); len(missing) != 0 {
				t.Errorf("uniforms lost in translation: %v", missing)
			}
		})
	}

	if driver.Live() != 0 {
		t.Errorf("expected no live objects after deleting programs, got %d", driver.Live())
	}
}

func TestESSLTranslatorOutput(t *testing.T) {
	tr := newESSLTranslator(t, shader.WebGL1)
	src, err := assets.NewManager().Load("texture.frag")
	if err != nil {
		t.Fatal(err)
	}

	out, err := tr.Translate(shader.Fragment, src)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if !strings.Contains(out.Code, "#version 410") {
		t.Errorf("expected GLSL 4.10 output, got:\n%s", out.Code)
	}
	mapped, ok := out.Names["textureImg"]
	if !ok || mapped == "" {
		t.Fatalf("expected a mapped name for textureImg, got %v", out.Names)
	}
	if !strings.Contains(out.Code, mapped) {
		t.Errorf("mapped name %q not in output", mapped)
	}
}

func TestESSLTranslatorWebGL2(t *testing.T) {
	tr := newESSLTranslator(t, shader.WebGL2)
	src := `#version 300 es
precision mediump float;
in vec2 vUV;
uniform sampler2D tex;
out vec4 fragColor;
void main() {
  fragColor = texture(tex, vUV);
}
`
	if _, err := tr.Translate(shader.Fragment, src); err != nil {
		t.Fatalf("expected ESSL 3.00 source to translate: %v", err)
	}
}

func TestESSLTranslatorUnknownDialect(t *testing.T) {
	if _, err := shader.NewESSLTranslator(context.Background(), "hlsl", false); err == nil {
		t.Fatal("expected an error for an unknown dialect")
	}
}
