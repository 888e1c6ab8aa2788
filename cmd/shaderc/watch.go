//go:build !js

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/glworkshop/internal/assets"
	"github.com/Faultbox/glworkshop/internal/engine/shader"
	"github.com/Faultbox/glworkshop/internal/engine/window"
	"github.com/Faultbox/glworkshop/internal/logger"
)

// pollInterval is how often the main thread checks for window events.
const pollInterval = 50 * time.Millisecond

// watch rebuilds variants whose files change until the window is closed.
// fsnotify events arrive on a goroutine; every GL call stays on this thread.
func watch(win *window.Window, lib *shader.Library, manager *assets.Manager, defs []assets.VariantDef, dirs []string) error {
	if len(dirs) == 0 {
		return fmt.Errorf("watch needs at least one shader directory")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	logger.Info("watching shader directories", zap.Strings("dirs", dirs))

	changed := make(chan string, 16)
	done := make(chan struct{})
	defer close(done)
	go forward(watcher.Events, watcher.Errors, changed, done)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case path := <-changed:
			name, ok := relName(dirs, path)
			if !ok {
				continue
			}
			manager.Invalidate(name)
			for _, def := range affected(defs, name) {
				logger.Info("rebuilding", zap.String("variant", def.Name), zap.String("file", name))
				entry, err := buildVariant(lib, manager, def)
				if err != nil {
					writeFailure(os.Stdout, def.Name, err)
					continue
				}
				writeReport(os.Stdout, entry)
			}
		case <-ticker.C:
			if win.PollQuit() {
				return nil
			}
		}
	}
}

// forward passes the paths of relevant events to changed until the watcher
// closes or done is closed.
func forward(events <-chan fsnotify.Event, errs <-chan error, changed chan<- string, done <-chan struct{}) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case changed <- event.Name:
			case <-done:
				return
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-done:
			return
		}
	}
}

// relName maps a changed path to the name a variant refers to it by.
func relName(dirs []string, path string) (string, bool) {
	for i := len(dirs) - 1; i >= 0; i-- {
		rel, err := filepath.Rel(dirs[i], path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}

// affected returns the variants that use the named file.
func affected(defs []assets.VariantDef, name string) []assets.VariantDef {
	var out []assets.VariantDef
	for _, def := range defs {
		if def.Vertex == name || def.Fragment == name {
			out = append(out, def)
		}
	}
	return out
}
