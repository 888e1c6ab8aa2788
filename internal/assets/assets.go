// Package assets loads shader sources from the embedded workshop set and
// from directories on disk.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Manager resolves shader paths against a stack of file systems.
type Manager struct {
	layers []fs.FS
	names  []string
	cache  *Cache
	mu     sync.RWMutex
}

// NewManager creates a manager that only sees the embedded workshop shaders.
func NewManager() *Manager {
	m := &Manager{
		cache: NewCache(),
	}
	m.AddFS("embedded", Embedded())
	return m
}

// AddFS adds a file system layer.
// Layers are searched in reverse order (last added = highest priority).
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.layers = append(m.layers, fsys)
	m.names = append(m.names, name)
	m.mu.Unlock()
}

// AddDir adds a directory on disk as a layer.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding shader dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding shader dir %s: not a directory", dir)
	}
	m.AddFS(dir, os.DirFS(dir))
	return nil
}

// Load returns the text of a shader file.
func (m *Manager) Load(path string) (string, error) {
	if src, ok := m.cache.Get(path); ok {
		return src, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.layers[i], path)
		if err == nil {
			src := string(data)
			m.cache.Set(path, src)
			return src, nil
		}
	}

	return "", fmt.Errorf("shader file not found: %s", path)
}

// Invalidate drops a cached file so the next Load reads it again.
func (m *Manager) Invalidate(path string) {
	m.cache.Delete(path)
}

// Layers returns the layer names, lowest priority first.
func (m *Manager) Layers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.names...)
}

// Close drops all layers and cached sources.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layers = nil
	m.names = nil
	m.cache.Clear()
}

// Cache is an in-memory cache of shader sources.
type Cache struct {
	data map[string]string
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]string),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return src, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key, src string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = src
}

// Delete removes an item from cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]string)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
