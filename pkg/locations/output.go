package locations

import (
	"path/filepath"

	"github.com/arthur-debert/pathfinder/pkg/errors"
)

// outputHandler serves a single output directory. Module scoped output
// locations are created on demand below it.
type outputHandler struct {
	base
	dir   string
	table *ModuleTable
}

func newOutputHandler(loc Location, env *Env) *outputHandler {
	return &outputHandler{base: base{loc: loc, env: env}}
}

func (h *outputHandler) kind() Kind { return KindOutput }

func (h *outputHandler) handleOption(_ Option, value string) error {
	return h.setPaths([]string{value})
}

// checkSingleDirectory validates the value of a single directory setting
func checkSingleDirectory(env *Env, loc Location, paths []string) (string, error) {
	if len(paths) != 1 {
		return "", errors.Newf(errors.ErrInvalidInput, "%s takes exactly one directory, got %d", loc.Name(), len(paths)).
			WithDetail("paths", paths)
	}
	dir := filepath.Clean(paths[0])
	if !env.probe().IsDirectory(dir) {
		return "", errors.Newf(errors.ErrInvalidInput, "directory not found for %s", loc.Name()).WithPath(dir)
	}
	return dir, nil
}

func (h *outputHandler) setPaths(paths []string) error {
	if paths == nil {
		h.dir, h.table, h.explicit = "", nil, false
		return nil
	}
	dir, err := checkSingleDirectory(h.env, h.loc, paths)
	if err != nil {
		return err
	}
	h.dir, h.table, h.explicit = dir, nil, true
	return nil
}

func (h *outputHandler) paths() ([]string, error) {
	if h.dir == "" {
		return nil, nil
	}
	return []string{h.dir}, nil
}

func (h *outputHandler) ensureTable() *ModuleTable {
	if h.table == nil {
		h.table = NewModuleTable(h.env.probe())
	}
	return h.table
}

func (h *outputHandler) locationForModule(name string) (*ModuleLocation, error) {
	if h.table != nil {
		if m, ok := h.table.Get(name); ok {
			return m, nil
		}
	}
	if h.dir == "" {
		return nil, nil
	}
	m := newModuleLocation(h.loc, name, []string{filepath.Join(h.dir, name)}, false, 0)
	h.ensureTable().Add(m)
	return m, nil
}

func (h *outputHandler) locationForPath(path string) (*ModuleLocation, error) {
	if h.table == nil {
		return nil, nil
	}
	m, _ := h.table.ForPath(path)
	return m, nil
}

func (h *outputHandler) setPathsForModule(name string, paths []string) error {
	dir, err := checkSingleDirectory(h.env, h.loc, paths)
	if err != nil {
		return err
	}
	t := h.ensureTable()
	if m, ok := t.Get(name); ok {
		t.UpdatePaths(m, []string{dir})
		m.explicit = true
	} else {
		t.Put(newModuleLocation(h.loc, name, []string{dir}, true, -1))
	}
	h.noteChanged(name)
	h.explicit = true
	return nil
}

func (h *outputHandler) listLocationsForModules() ([][]*ModuleLocation, error) {
	if h.table == nil || h.table.Len() == 0 {
		return nil, nil
	}
	return [][]*ModuleLocation{h.table.All()}, nil
}
