package locations

import (
	"path/filepath"

	"github.com/arthur-debert/pathfinder/pkg/diagnostics"
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/pattern"
)

// moduleSourcePathHandler serves the module source path. Its value is a
// pattern expanded against the filesystem plus module specific settings.
type moduleSourcePathHandler struct {
	base
	templates []pattern.Template
	overrides []*ModuleLocation
	table     *ModuleTable
}

func newModuleSourcePathHandler(env *Env) *moduleSourcePathHandler {
	return &moduleSourcePathHandler{base: base{loc: ModuleSourcePath, env: env}}
}

func (h *moduleSourcePathHandler) kind() Kind { return KindModuleSourcePath }

func (h *moduleSourcePathHandler) handleOption(_ Option, value string) error {
	v, err := pattern.Decode(value)
	if err != nil {
		return err
	}
	if v.Pattern != "" {
		templates, err := pattern.Parse(v.Pattern)
		if err != nil {
			return err
		}
		h.templates, h.table = templates, nil
	}
	for _, a := range v.Assignments {
		if err := h.setPathsForModule(a.Module, a.Paths); err != nil {
			return err
		}
	}
	h.explicit = true
	return nil
}

// setPaths treats every path as a directory of modules
func (h *moduleSourcePathHandler) setPaths(paths []string) error {
	if paths == nil {
		h.templates, h.table, h.explicit = nil, nil, len(h.overrides) > 0
		return nil
	}
	templates := make([]pattern.Template, 0, len(paths))
	for _, p := range paths {
		templates = append(templates, pattern.Template{Prefix: filepath.Clean(p)})
	}
	h.templates, h.table, h.explicit = templates, nil, true
	return nil
}

// paths returns the directories whose sub-directories are scanned
func (h *moduleSourcePathHandler) paths() ([]string, error) {
	if h.templates == nil {
		return nil, nil
	}
	out := make([]string, 0, len(h.templates))
	for _, t := range h.templates {
		out = append(out, t.String())
	}
	return out, nil
}

func (h *moduleSourcePathHandler) scan() *ModuleTable {
	if h.table != nil {
		return h.table
	}
	logger := logging.GetLogger("locations")
	defer logging.LogOperationStart(logger, "module.source.scan")()
	probe := h.env.probe()

	t := NewModuleTable(probe)
	for _, m := range h.overrides {
		t.Put(m)
	}

	var names []string
	roots := map[string][]string{}
	for _, tmpl := range h.templates {
		if !probe.IsDirectory(tmpl.Prefix) {
			if h.env.Settings.WarnMissing {
				diagnostics.Warn(h.env.Sink, diagnostics.CategoryPath, diagnostics.KeyDirElementNotFound, tmpl.Prefix)
			}
			continue
		}
		candidates, err := tmpl.Candidates(probe.FS())
		if err != nil {
			diagnostics.Error(h.env.Sink, diagnostics.KeyCantReadFile, tmpl.Prefix, err)
			continue
		}
		for _, c := range candidates {
			if _, ok := roots[c.Name]; !ok {
				names = append(names, c.Name)
			}
			roots[c.Name] = append(roots[c.Name], c.Path)
		}
	}

	for _, name := range names {
		if !h.hasSourceDescriptor(roots[name]) {
			logger.Trace().Str("module", name).Msg("Candidate has no module declaration")
			continue
		}
		t.Add(newModuleLocation(h.loc, name, roots[name], false, 0))
	}
	logger.Debug().Int("templates", len(h.templates)).Int("modules", t.Len()).Msg("Expanded module source path")
	h.table = t
	return t
}

func (h *moduleSourcePathHandler) hasSourceDescriptor(roots []string) bool {
	for _, r := range roots {
		if h.env.probe().IsRegularFile(filepath.Join(r, h.env.Settings.SourceDescriptorName)) {
			return true
		}
	}
	return false
}

func (h *moduleSourcePathHandler) locationForModule(name string) (*ModuleLocation, error) {
	m, _ := h.scan().Get(name)
	return m, nil
}

func (h *moduleSourcePathHandler) locationForPath(path string) (*ModuleLocation, error) {
	m, _ := h.scan().ForPath(path)
	return m, nil
}

func (h *moduleSourcePathHandler) setPathsForModule(name string, paths []string) error {
	cleaned := make([]string, 0, len(paths))
	for _, p := range paths {
		cleaned = append(cleaned, filepath.Clean(p))
	}
	h.overrides, h.table = putOverride(h.loc, h.overrides, h.table, name, cleaned)
	h.noteChanged(name)
	h.explicit = true
	return nil
}

func (h *moduleSourcePathHandler) listLocationsForModules() ([][]*ModuleLocation, error) {
	return groupModules(h.overrides, h.scan()), nil
}

func (h *moduleSourcePathHandler) invalidate() { h.table = nil }
