//go:build !js

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/glworkshop/internal/assets"
	"github.com/Faultbox/glworkshop/internal/config"
	"github.com/Faultbox/glworkshop/internal/engine/shader"
	"github.com/Faultbox/glworkshop/internal/engine/shader/shadertest"
	"github.com/Faultbox/glworkshop/internal/engine/window"
)

func TestVariantDefs(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ShadersConfig
		want    []string
		wantErr bool
	}{
		{
			name: "workshop by default",
			want: []string{"color", "texture", "lighting"},
		},
		{
			name: "only one workshop variant",
			cfg:  config.ShadersConfig{Only: "texture"},
			want: []string{"texture"},
		},
		{
			name: "configured variants replace the workshop",
			cfg: config.ShadersConfig{Variants: []config.VariantConfig{
				{Name: "flat", Vertex: "flat.vert", Fragment: "flat.frag"},
			}},
			want: []string{"flat"},
		},
		{
			name:    "unknown only",
			cfg:     config.ShadersConfig{Only: "shadow"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := variantDefs(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got []string
			for _, d := range defs {
				got = append(got, d.Name)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBuildAllReport(t *testing.T) {
	driver := shadertest.New()
	lib := shader.NewLibrary(shader.NewBuilder(driver))
	defer lib.Close()

	var out bytes.Buffer
	failures := buildAll(lib, assets.NewManager(), assets.Workshop(), &out, zap.NewNop())
	if failures != 0 {
		t.Fatalf("expected workshop to build, got %d failures:\n%s", failures, out.String())
	}

	report := out.String()
	for _, want := range []string{
		"color: ok",
		"texture: ok",
		"lighting: ok",
		"attribute normal",
		"uniform   normalMat",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("expected report to contain %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "unused") {
		t.Errorf("expected every workshop binding to be active:\n%s", report)
	}
}

func TestBuildAllFailures(t *testing.T) {
	driver := shadertest.New()
	lib := shader.NewLibrary(shader.NewBuilder(driver))
	defer lib.Close()

	manager := assets.NewManager()
	manager.AddFS("test", fstest.MapFS{
		"broken.frag":   {Data: []byte("void main(void) {\n")},
		"unlinked.frag": {Data: []byte("varying vec3 vColor;\nvoid main(void) {\n  gl_FragColor = vec4(vColor, 1.0);\n}\n")},
	})

	defs := []assets.VariantDef{
		{Name: "broken", Vertex: "color.vert", Fragment: "broken.frag"},
		{Name: "unlinked", Vertex: "color.vert", Fragment: "unlinked.frag"},
		{Name: "missing", Vertex: "color.vert", Fragment: "nope.frag"},
		{Name: "color", Vertex: "color.vert", Fragment: "color.frag", Attributes: []string{"position", "texCoord"}},
	}

	var out bytes.Buffer
	if failures := buildAll(lib, manager, defs, &out, zap.NewNop()); failures != 3 {
		t.Fatalf("expected 3 failures, got %d:\n%s", failures, out.String())
	}

	report := out.String()
	for _, want := range []string{
		"broken: fragment shader failed to compile",
		"unlinked: program failed to link",
		"  ERROR: Varying 'vColor'",
		"missing: variant missing: shader file not found: nope.frag",
		"attribute texCoord       unused",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("expected report to contain %q:\n%s", want, report)
		}
	}

	if driver.LivePrograms() != 1 {
		t.Errorf("expected only the color program live, got %d", driver.LivePrograms())
	}
}

func TestIndent(t *testing.T) {
	if got := indent("a\nb\n"); got != "  a\n  b\n" {
		t.Errorf("unexpected indent %q", got)
	}
}

func TestRelName(t *testing.T) {
	root := t.TempDir()
	dirs := []string{filepath.Join(root, "base"), filepath.Join(root, "override")}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	name, ok := relName(dirs, filepath.Join(root, "override", "lighting.frag"))
	if !ok || name != "lighting.frag" {
		t.Errorf("expected lighting.frag, got %q (%v)", name, ok)
	}
	name, ok = relName(dirs, filepath.Join(root, "base", "sub", "a.vert"))
	if !ok || name != "sub/a.vert" {
		t.Errorf("expected sub/a.vert, got %q (%v)", name, ok)
	}
	if _, ok := relName(dirs, filepath.Join(root, "elsewhere", "x.vert")); ok {
		t.Error("expected paths outside the shader dirs to be ignored")
	}
}

func TestAffected(t *testing.T) {
	defs := assets.Workshop()

	var got []string
	for _, d := range affected(defs, "texture.frag") {
		got = append(got, d.Name)
	}
	if strings.Join(got, ",") != "texture" {
		t.Errorf("expected only texture, got %v", got)
	}
	if len(affected(defs, "unknown.vert")) != 0 {
		t.Error("expected no variants for an unknown file")
	}
}

func TestWriteList(t *testing.T) {
	var out bytes.Buffer
	writeList(&out, assets.Workshop())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected one line per variant, got:\n%s", out.String())
	}
	for i, def := range assets.Workshop() {
		fields := strings.Fields(lines[i])
		if len(fields) != 3 || fields[0] != def.Name || fields[1] != def.Vertex || fields[2] != def.Fragment {
			t.Errorf("unexpected line %q for %s", lines[i], def.Name)
		}
	}
}

func TestWriteHeader(t *testing.T) {
	var out bytes.Buffer
	writeHeader(&out, window.Info{Version: "4.1 Core", Renderer: "llvmpipe", GLSL: "4.10"})
	if got := out.String(); got != "OpenGL 4.1 Core, GLSL 4.10 (llvmpipe)\n" {
		t.Errorf("unexpected header %q", got)
	}
}

func TestForwardFiltersEvents(t *testing.T) {
	events := make(chan fsnotify.Event)
	changed := make(chan string, 1)
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		forward(events, nil, changed, done)
		close(exited)
	}()

	events <- fsnotify.Event{Name: "a.frag", Op: fsnotify.Chmod}
	events <- fsnotify.Event{Name: "b.frag", Op: fsnotify.Write}

	select {
	case got := <-changed:
		if got != "b.frag" {
			t.Errorf("expected b.frag, got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no change forwarded")
	}

	close(done)
	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("forward did not stop")
	}
}

func TestForwardStopsWhileBlocked(t *testing.T) {
	events := make(chan fsnotify.Event)
	changed := make(chan string) // never read
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		forward(events, nil, changed, done)
		close(exited)
	}()

	events <- fsnotify.Event{Name: "a.frag", Op: fsnotify.Write}
	close(done)

	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("forward stayed blocked on an unread change")
	}
}
