//go:build !js

// Package main is shaderc, which builds shader variants against a real
// OpenGL context and prints their attribute and uniform locations.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/glworkshop/internal/assets"
	"github.com/Faultbox/glworkshop/internal/config"
	"github.com/Faultbox/glworkshop/internal/engine/shader"
	"github.com/Faultbox/glworkshop/internal/engine/window"
	"github.com/Faultbox/glworkshop/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 2
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 2
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.WriteConfig() {
		if err := cfg.Save(); err != nil {
			logger.Error("writing config", zap.Error(err))
			return 2
		}
		fmt.Printf("wrote %s\n", config.DefaultPath())
		return 0
	}

	defs, err := variantDefs(cfg.Shaders)
	if err != nil {
		logger.Error("selecting variants", zap.Error(err))
		return 2
	}

	if config.ListOnly() {
		writeList(os.Stdout, defs)
		return 0
	}

	manager := assets.NewManager()
	defer manager.Close()
	for _, dir := range cfg.Shaders.Dirs {
		if err := manager.AddDir(dir); err != nil {
			logger.Error("shader directory", zap.Error(err))
			return 2
		}
	}

	win, info, err := window.New(window.Config{
		Title:   cfg.Window.Title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		Visible: cfg.Window.Visible,
		VSync:   true,
		GLMajor: cfg.Window.GLMajor,
		GLMinor: cfg.Window.GLMinor,
	}, logger.Named("window"))
	if err != nil {
		logger.Error("creating GL context", zap.Error(err))
		return 2
	}
	defer win.Close()
	writeHeader(os.Stdout, info)

	opts := []shader.Option{shader.WithLogger(logger.Named("shader"))}
	if cfg.Shaders.Translate {
		translator, err := shader.NewESSLTranslator(context.Background(), shader.Dialect(cfg.Shaders.Dialect), false)
		if err != nil {
			logger.Error("creating translator", zap.Error(err))
			return 2
		}
		defer translator.Close()
		logger.Debug("translating shaders", zap.String("dialect", cfg.Shaders.Dialect))
		opts = append(opts, shader.WithTranslator(translator))
	}

	lib := shader.NewLibrary(shader.NewBuilder(shader.NewGLDriver(), opts...))
	defer lib.Close()

	failures := buildAll(lib, manager, defs, os.Stdout, logger.Log)

	if cfg.Shaders.Watch {
		if err := watch(win, lib, manager, defs, cfg.Shaders.Dirs); err != nil {
			logger.Error("watch", zap.Error(err))
			return 1
		}
		return 0
	}

	if failures > 0 {
		logger.Warn("build finished with failures", zap.Int("failed", failures), zap.Int("total", len(defs)))
		return 1
	}
	logger.Info("all variants built", zap.Int("total", len(defs)))
	return 0
}
