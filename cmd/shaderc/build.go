//go:build !js

package main

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Faultbox/glworkshop/internal/assets"
	"github.com/Faultbox/glworkshop/internal/config"
	"github.com/Faultbox/glworkshop/internal/engine/shader"
	"github.com/Faultbox/glworkshop/internal/engine/window"
)

// variantDefs returns the variants to build: the configured ones, or the
// workshop set when none are configured, narrowed to only when set.
func variantDefs(cfg config.ShadersConfig) ([]assets.VariantDef, error) {
	var defs []assets.VariantDef
	if len(cfg.Variants) == 0 {
		defs = assets.Workshop()
	} else {
		for _, v := range cfg.Variants {
			defs = append(defs, assets.VariantDef{
				Name:       v.Name,
				Vertex:     v.Vertex,
				Fragment:   v.Fragment,
				Attributes: v.Attributes,
				Uniforms:   v.Uniforms,
			})
		}
	}

	if cfg.Only == "" {
		return defs, nil
	}
	for _, def := range defs {
		if def.Name == cfg.Only {
			return []assets.VariantDef{def}, nil
		}
	}
	return nil, fmt.Errorf("unknown variant %q", cfg.Only)
}

// writeList prints the selected variants and the files they use.
func writeList(w io.Writer, defs []assets.VariantDef) {
	for _, def := range defs {
		fmt.Fprintf(w, "%-12s %s %s\n", def.Name, def.Vertex, def.Fragment)
	}
}

// writeHeader identifies the context the report was produced on.
func writeHeader(w io.Writer, info window.Info) {
	fmt.Fprintf(w, "OpenGL %s, GLSL %s (%s)\n", info.Version, info.GLSL, info.Renderer)
}

// buildVariant loads the sources of def and (re)builds it into lib.
func buildVariant(lib *shader.Library, manager *assets.Manager, def assets.VariantDef) (*shader.Entry, error) {
	v, err := manager.Variant(def)
	if err != nil {
		return nil, err
	}
	return lib.Load(v)
}

// buildAll builds every variant, writing a report for each, and returns the
// number of failures.
func buildAll(lib *shader.Library, manager *assets.Manager, defs []assets.VariantDef, out io.Writer, log *zap.Logger) int {
	failures := 0
	for _, def := range defs {
		entry, err := buildVariant(lib, manager, def)
		if err != nil {
			failures++
			log.Error("variant failed", zap.String("variant", def.Name), zap.Error(err))
			writeFailure(out, def.Name, err)
			continue
		}
		writeReport(out, entry)
	}
	return failures
}

// writeReport prints the location table of a built variant.
func writeReport(w io.Writer, e *shader.Entry) {
	fmt.Fprintf(w, "%s: ok (program %d)\n", e.Variant.Name, e.Program.Handle())
	for _, name := range e.Variant.Attributes {
		loc := e.Locations.Attrib(name)
		if loc < 0 {
			fmt.Fprintf(w, "  attribute %-14s unused\n", name)
			continue
		}
		fmt.Fprintf(w, "  attribute %-14s %d\n", name, loc)
	}
	for _, name := range e.Variant.Uniforms {
		loc := e.Locations.Uniform(name)
		if !loc.Valid() {
			fmt.Fprintf(w, "  uniform   %-14s unused\n", name)
			continue
		}
		fmt.Fprintf(w, "  uniform   %-14s %d\n", name, loc)
	}
}

// writeFailure prints the driver diagnostic of a failed variant.
func writeFailure(w io.Writer, name string, err error) {
	var (
		compileErr *shader.CompileError
		linkErr    *shader.LinkError
	)
	switch {
	case errors.As(err, &compileErr):
		fmt.Fprintf(w, "%s: %s shader failed to compile\n%s\n", name, compileErr.Stage, indent(compileErr.Log))
	case errors.As(err, &linkErr):
		fmt.Fprintf(w, "%s: program failed to link\n%s\n", name, indent(linkErr.Log))
	default:
		fmt.Fprintf(w, "%s: %v\n", name, err)
	}
}

func indent(log string) string {
	out := make([]byte, 0, len(log)+16)
	out = append(out, ' ', ' ')
	for i := 0; i < len(log); i++ {
		out = append(out, log[i])
		if log[i] == '\n' && i < len(log)-1 {
			out = append(out, ' ', ' ')
		}
	}
	return string(out)
}
