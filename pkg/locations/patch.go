package locations

import (
	"strings"

	"github.com/arthur-debert/pathfinder/pkg/diagnostics"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/pattern"
)

// patchHandler holds per-module patch paths. It has no paths of its own;
// a setting carries name=pathlist segments joined by pattern.Delimiter.
type patchHandler struct {
	base
	table *ModuleTable
}

func newPatchHandler(env *Env) *patchHandler {
	return &patchHandler{base: base{loc: PatchModulePath, env: env}, table: NewModuleTable(env.probe())}
}

func (h *patchHandler) kind() Kind { return KindPatch }

func (h *patchHandler) handleOption(_ Option, value string) error {
	seen := map[string]bool{}
	for _, part := range strings.Split(value, pattern.Delimiter) {
		if part == "" {
			continue
		}
		a, ok := pattern.SplitAssignment(part)
		if !ok {
			diagnostics.Error(h.env.Sink, diagnostics.KeyInvalidPatchArgument, part, nil)
			continue
		}
		if seen[a.Module] {
			return errors.Newf(errors.ErrInvalidInput, "repeated patch for module %s", a.Module)
		}
		seen[a.Module] = true
		if err := h.setPathsForModule(a.Module, a.Paths); err != nil {
			return err
		}
	}
	return nil
}

func (h *patchHandler) setPaths(paths []string) error {
	if paths != nil {
		return errors.New(errors.ErrUnsupported, "patch paths are set per module")
	}
	h.table, h.explicit = NewModuleTable(h.env.probe()), false
	return nil
}

func (h *patchHandler) paths() ([]string, error) { return nil, nil }

func (h *patchHandler) locationForModule(name string) (*ModuleLocation, error) {
	m, _ := h.table.Get(name)
	return m, nil
}

func (h *patchHandler) locationForPath(path string) (*ModuleLocation, error) {
	m, _ := h.table.ForPath(path)
	return m, nil
}

func (h *patchHandler) setPathsForModule(name string, paths []string) error {
	entries := h.env.newPath(false).AddAll(paths, h.env.Settings.WarnMissing).Entries()
	if m, ok := h.table.Get(name); ok {
		h.table.UpdatePaths(m, entries)
	} else {
		h.table.Put(newModuleLocation(h.loc, name, entries, true, -1))
	}
	h.noteChanged(name)
	h.explicit = true
	return nil
}

func (h *patchHandler) listLocationsForModules() ([][]*ModuleLocation, error) {
	if h.table.Len() == 0 {
		return nil, nil
	}
	return [][]*ModuleLocation{h.table.All()}, nil
}
