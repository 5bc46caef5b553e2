package locations

import (
	"path/filepath"

	"github.com/arthur-debert/pathfinder/pkg/fscache"
	"github.com/arthur-debert/pathfinder/pkg/registry"
)

// ModuleTable indexes the module locations of one location by module
// name and by content root
type ModuleTable struct {
	probe  *fscache.Cache
	byName registry.Registry[*ModuleLocation]
	byPath map[string]*ModuleLocation
	order  []string
}

// NewModuleTable creates an empty table. Paths are compared in the
// canonical form given by probe.
func NewModuleTable(probe *fscache.Cache) *ModuleTable {
	return &ModuleTable{
		probe:  probe,
		byName: registry.New[*ModuleLocation](),
		byPath: make(map[string]*ModuleLocation),
	}
}

// Add inserts m unless a module of the same name is present. The first
// module found for a name shadows later ones.
func (t *ModuleTable) Add(m *ModuleLocation) bool {
	if err := t.byName.Register(m.module, m); err != nil {
		return false
	}
	t.order = append(t.order, m.module)
	t.indexPaths(m)
	return true
}

// Put inserts or replaces the module named by m. A replaced module keeps
// its position.
func (t *ModuleTable) Put(m *ModuleLocation) {
	if old, ok := t.byName.Lookup(m.module); ok {
		t.unindexPaths(old)
	} else {
		t.order = append(t.order, m.module)
	}
	_ = t.byName.Put(m.module, m)
	t.indexPaths(m)
}

// UpdatePaths replaces the content roots of m and re-indexes them
func (t *ModuleTable) UpdatePaths(m *ModuleLocation, paths []string) {
	t.unindexPaths(m)
	m.paths = paths
	t.indexPaths(m)
}

func (t *ModuleTable) indexPaths(m *ModuleLocation) {
	for _, p := range m.paths {
		t.byPath[t.probe.Canonical(p)] = m
	}
}

func (t *ModuleTable) unindexPaths(m *ModuleLocation) {
	for _, p := range m.paths {
		key := t.probe.Canonical(p)
		if t.byPath[key] == m {
			delete(t.byPath, key)
		}
	}
}

// Get returns the module called name
func (t *ModuleTable) Get(name string) (*ModuleLocation, bool) {
	return t.byName.Lookup(name)
}

// ForPath returns the module whose content root is path or one of its
// ancestors
func (t *ModuleTable) ForPath(path string) (*ModuleLocation, bool) {
	for p := t.probe.Canonical(path); ; p = filepath.Dir(p) {
		if m, ok := t.byPath[p]; ok {
			return m, true
		}
		if p == filepath.Dir(p) {
			return nil, false
		}
	}
}

// All returns the modules in insertion order
func (t *ModuleTable) All() []*ModuleLocation {
	out := make([]*ModuleLocation, 0, len(t.order))
	for _, name := range t.order {
		if m, ok := t.byName.Lookup(name); ok {
			out = append(out, m)
		}
	}
	return out
}

// Names returns the module names in sorted order
func (t *ModuleTable) Names() []string { return t.byName.List() }

// Len returns the number of modules
func (t *ModuleTable) Len() int { return t.byName.Count() }
