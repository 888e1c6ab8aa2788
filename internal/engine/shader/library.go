package shader

import (
	"sort"

	"go.uber.org/zap"
)

// Entry is a built variant held by a Library.
type Entry struct {
	Variant   Variant
	Program   *Program
	Locations *LocationTable
}

// Library keeps the current program for each variant name.
//
// A failed rebuild leaves the previous entry in place, so a caller can keep
// drawing with the last working program while the source is being fixed.
type Library struct {
	builder *Builder
	entries map[string]*Entry
	log     *zap.Logger
}

// NewLibrary creates an empty library that builds with b.
func NewLibrary(b *Builder) *Library {
	return &Library{
		builder: b,
		entries: make(map[string]*Entry),
		log:     b.log,
	}
}

// Load builds v and stores it under v.Name, replacing any previous entry.
// On failure the previous entry, if any, is kept and the error returned.
func (l *Library) Load(v Variant) (*Entry, error) {
	program, table, err := l.builder.BuildVariant(v)
	if err != nil {
		if _, ok := l.entries[v.Name]; ok {
			l.log.Warn("keeping previous program", zap.String("variant", v.Name))
		}
		return nil, err
	}

	if prev, ok := l.entries[v.Name]; ok {
		prev.Program.Delete()
	}
	e := &Entry{Variant: v, Program: program, Locations: table}
	l.entries[v.Name] = e
	l.log.Info("variant loaded", zap.String("variant", v.Name), zap.Uint32("program", uint32(program.Handle())))
	return e, nil
}

// Get returns the current entry for name.
func (l *Library) Get(name string) (*Entry, bool) {
	e, ok := l.entries[name]
	return e, ok
}

// Names returns the loaded variant names, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Remove deletes the program stored under name.
func (l *Library) Remove(name string) {
	if e, ok := l.entries[name]; ok {
		e.Program.Delete()
		delete(l.entries, name)
	}
}

// Close deletes every program in the library.
func (l *Library) Close() {
	for name := range l.entries {
		l.Remove(name)
	}
}
