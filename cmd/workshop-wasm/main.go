//go:build js && wasm

// Package main builds the workshop shader variants inside a browser page and
// publishes their programs and locations for the page's draw loop.
//
// The page must contain <canvas id="canvas">. After start-up the global
// glworkshop object holds one entry per variant:
//
//	glworkshop.lighting.program
//	glworkshop.lighting.attribs.normal
//	glworkshop.lighting.uniforms.normalMat
package main

import (
	"syscall/js"

	"go.uber.org/zap"

	"github.com/Faultbox/glworkshop/internal/assets"
	"github.com/Faultbox/glworkshop/internal/engine/shader"
	"github.com/Faultbox/glworkshop/internal/logger"
)

func main() {
	if err := logger.Init("info", ""); err != nil {
		panic(err)
	}
	defer logger.Sync()

	canvas := js.Global().Get("document").Call("getElementById", "canvas")
	if canvas.IsNull() || canvas.IsUndefined() {
		logger.Error("no canvas element with id \"canvas\"")
		return
	}
	gl := canvas.Call("getContext", "webgl")
	if gl.IsNull() || gl.IsUndefined() {
		logger.Error("WebGL is not available")
		return
	}

	driver := shader.NewWebGLDriver(gl)
	lib := shader.NewLibrary(shader.NewBuilder(driver, shader.WithLogger(logger.Named("shader"))))
	manager := assets.NewManager()

	exports := js.Global().Get("Object").New()
	for _, def := range assets.Workshop() {
		v, err := manager.Variant(def)
		if err != nil {
			logger.Error("loading variant", zap.String("variant", def.Name), zap.Error(err))
			continue
		}
		entry, err := lib.Load(v)
		if err != nil {
			logger.Error("building variant", zap.String("variant", def.Name), zap.Error(err))
			continue
		}
		exports.Set(def.Name, export(driver, entry))
	}
	js.Global().Set("glworkshop", exports)

	// Programs must outlive main for the page to draw with them
	select {}
}

func export(driver *shader.WebGLDriver, e *shader.Entry) js.Value {
	attribs := js.Global().Get("Object").New()
	for _, name := range e.Variant.Attributes {
		attribs.Set(name, e.Locations.Attrib(name))
	}
	uniforms := js.Global().Get("Object").New()
	for _, name := range e.Variant.Uniforms {
		uniforms.Set(name, driver.Uniform(e.Locations.Uniform(name)))
	}

	out := js.Global().Get("Object").New()
	out.Set("program", driver.Program(e.Program.Handle()))
	out.Set("attribs", attribs)
	out.Set("uniforms", uniforms)
	return out
}
