package ptmaterial

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gekko3d/ptmaterial/rt/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var (
	ErrDuplicateName = errors.New("material name already in library")
	ErrUnknownHandle = errors.New("unknown material handle")
	ErrEmptyName     = errors.New("material name is empty")
)

// Handle identifies a library entry independently of its buffer index.
type Handle uuid.UUID

func (h Handle) String() string { return uuid.UUID(h).String() }

type libraryEntry struct {
	name     string
	handle   Handle
	material core.PTMaterial
}

// Library is an ordered table of named materials. Entry i is record i in the
// packed buffer. Safe for concurrent use.
type Library struct {
	mu      sync.RWMutex
	entries []libraryEntry
	byName  map[string]int
	byID    map[Handle]int
	dirty   bool
}

func NewLibrary() *Library {
	return &Library{
		byName: make(map[string]int),
		byID:   make(map[Handle]int),
	}
}

func (l *Library) Add(name string, m core.PTMaterial) (Handle, error) {
	if name == "" {
		return Handle{}, ErrEmptyName
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byName[name]; ok {
		return Handle{}, fmt.Errorf("add %q: %w", name, ErrDuplicateName)
	}
	h := Handle(uuid.New())
	l.byName[name] = len(l.entries)
	l.byID[h] = len(l.entries)
	l.entries = append(l.entries, libraryEntry{name: name, handle: h, material: m})
	l.dirty = true
	return h, nil
}

func (l *Library) Set(h Handle, m core.PTMaterial) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.byID[h]
	if !ok {
		return fmt.Errorf("set %s: %w", h, ErrUnknownHandle)
	}
	if l.entries[i].material.Equal(m) {
		return nil
	}
	l.entries[i].material = m
	l.dirty = true
	return nil
}

func (l *Library) Get(h Handle) (core.PTMaterial, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.byID[h]
	if !ok {
		return core.PTMaterial{}, false
	}
	return l.entries[i].material, true
}

// Lookup returns the handle registered under name.
func (l *Library) Lookup(name string) (Handle, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.byName[name]
	if !ok {
		return Handle{}, false
	}
	return l.entries[i].handle, true
}

// Index returns the record index the shader sees for h.
func (l *Library) Index(h Handle) (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.byID[h]
	return i, ok
}

func (l *Library) Name(h Handle) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i, ok := l.byID[h]; ok {
		return l.entries[i].name
	}
	return ""
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Materials returns a copy of the records in index order.
func (l *Library) Materials() []core.PTMaterial {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.PTMaterial, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.material
	}
	return out
}

// Names returns entry names in index order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.name
	}
	return out
}

// Pack encodes the library little-endian with a 24 byte stride.
func (l *Library) Pack() []byte {
	return core.EncodeMaterials(l.Materials())
}

func (l *Library) Dirty() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dirty
}

func (l *Library) ClearDirty() {
	l.mu.Lock()
	l.dirty = false
	l.mu.Unlock()
}

// Clamp limits albedo, metallic and smoothness to [0,1]. The record itself
// never clamps; producers call this before handing materials over.
func Clamp(m core.PTMaterial) core.PTMaterial {
	for i := range m.Albedo {
		m.Albedo[i] = mgl32.Clamp(m.Albedo[i], 0, 1)
	}
	m.Metallic = mgl32.Clamp(m.Metallic, 0, 1)
	m.Smoothness = mgl32.Clamp(m.Smoothness, 0, 1)
	return m
}
