package locations

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/searchpath"
)

// modulePathHandler serves a path of modules. The module table is built
// by scanning the entries on first use; explicit per-module settings are
// kept apart so that they survive a rescan and always win.
type modulePathHandler struct {
	base
	entries   []string
	overrides []*ModuleLocation
	table     *ModuleTable
}

func newModulePathHandler(loc Location, env *Env) *modulePathHandler {
	return &modulePathHandler{base: base{loc: loc, env: env}}
}

func (h *modulePathHandler) kind() Kind { return KindModulePath }

// checkModulePathEntries cleans entries and drops those resolving to an
// earlier entry. Existing files must be modular archives or packaged
// modules.
func checkModulePathEntries(env *Env, paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		p = filepath.Clean(p)
		canonical := env.probe().Canonical(p)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		if env.probe().IsRegularFile(p) {
			base := filepath.Base(p)
			if !strings.HasSuffix(base, ".jar") && !env.matcher().IsModuleFile(base) {
				return nil, errors.New(errors.ErrInvalidInput, "invalid module path entry").WithPath(p)
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (h *modulePathHandler) handleOption(_ Option, value string) error {
	return h.setPaths(searchpath.Split(value, ""))
}

func (h *modulePathHandler) setPaths(paths []string) error {
	if paths == nil {
		h.entries, h.table, h.explicit = nil, nil, len(h.overrides) > 0
		return nil
	}
	entries, err := checkModulePathEntries(h.env, paths)
	if err != nil {
		return err
	}
	h.entries, h.table, h.explicit = entries, nil, true
	return nil
}

func (h *modulePathHandler) paths() ([]string, error) {
	if h.entries == nil {
		return nil, nil
	}
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out, nil
}

func (h *modulePathHandler) scan() *ModuleTable {
	if h.table != nil {
		return h.table
	}
	logger := logging.GetLogger("locations").With().Str("location", h.loc.Name()).Logger()
	defer logging.LogOperationStart(logger, "module.scan")()

	t := NewModuleTable(h.env.probe())
	for _, m := range h.overrides {
		t.Put(m)
	}
	for i, entry := range h.entries {
		for _, f := range h.env.discover(entry) {
			if !t.Add(newModuleLocation(h.loc, f.name, []string{f.root}, false, i)) {
				logger.Debug().
					Str("module", f.name).
					Str("path", f.root).
					Msg("Module shadowed by an earlier entry")
			}
		}
	}
	logger.Debug().Int("modules", t.Len()).Msg("Built module table")
	h.table = t
	return t
}

func (h *modulePathHandler) locationForModule(name string) (*ModuleLocation, error) {
	m, _ := h.scan().Get(name)
	return m, nil
}

func (h *modulePathHandler) locationForPath(path string) (*ModuleLocation, error) {
	m, _ := h.scan().ForPath(path)
	return m, nil
}

func (h *modulePathHandler) setPathsForModule(name string, paths []string) error {
	checked, err := checkModulePathEntries(h.env, paths)
	if err != nil {
		return err
	}
	h.overrides, h.table = putOverride(h.loc, h.overrides, h.table, name, checked)
	h.noteChanged(name)
	h.explicit = true
	return nil
}

// putOverride records an explicit module in overrides and, when the
// table was already built, updates it in place
func putOverride(loc Location, overrides []*ModuleLocation, table *ModuleTable, name string, paths []string) ([]*ModuleLocation, *ModuleTable) {
	for _, m := range overrides {
		if m.module == name {
			if table != nil {
				table.UpdatePaths(m, paths)
			} else {
				m.paths = paths
			}
			return overrides, table
		}
	}
	m := newModuleLocation(loc, name, paths, true, -1)
	if table != nil {
		table.Put(m)
	}
	return append(overrides, m), table
}

func (h *modulePathHandler) listLocationsForModules() ([][]*ModuleLocation, error) {
	return groupModules(h.overrides, h.scan()), nil
}

// groupModules returns the explicit modules as one set followed by one
// set per path entry, in entry order
func groupModules(overrides []*ModuleLocation, t *ModuleTable) [][]*ModuleLocation {
	var out [][]*ModuleLocation
	if len(overrides) > 0 {
		out = append(out, append([]*ModuleLocation(nil), overrides...))
	}
	byEntry := map[int][]*ModuleLocation{}
	var order []int
	for _, m := range t.All() {
		if m.explicit {
			continue
		}
		if _, ok := byEntry[m.entry]; !ok {
			order = append(order, m.entry)
		}
		byEntry[m.entry] = append(byEntry[m.entry], m)
	}
	for _, i := range order {
		out = append(out, byEntry[i])
	}
	return out
}

func (h *modulePathHandler) invalidate() { h.table = nil }
