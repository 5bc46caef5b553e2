package locations

import (
	"path/filepath"

	"github.com/arthur-debert/pathfinder/pkg/diagnostics"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/logging"
)

// SystemNone disables the system modules
const SystemNone = "none"

// systemModulesHandler serves the modules of a platform image. The home
// defaults to the configured system home.
type systemModulesHandler struct {
	base
	home  string
	none  bool
	table *ModuleTable
}

func newSystemModulesHandler(env *Env) *systemModulesHandler {
	return &systemModulesHandler{base: base{loc: SystemModules, env: env}}
}

func (h *systemModulesHandler) kind() Kind { return KindSystemModules }

func (h *systemModulesHandler) handleOption(_ Option, value string) error {
	if value == SystemNone {
		h.home, h.none, h.table, h.explicit = "", true, nil, true
		return nil
	}
	return h.setPaths([]string{value})
}

// setPaths takes a single alternate home, which must hold an image
func (h *systemModulesHandler) setPaths(paths []string) error {
	if paths == nil {
		h.home, h.none, h.table, h.explicit = "", false, nil, false
		return nil
	}
	if len(paths) != 1 {
		return errors.Newf(errors.ErrInvalidInput, "%s takes exactly one home, got %d", h.loc.Name(), len(paths))
	}
	home := filepath.Clean(paths[0])
	if img := h.env.imageFor(home); !h.env.probe().IsRegularFile(img) {
		return errors.New(errors.ErrInvalidInput, "system home has no module image").WithPath(img)
	}
	h.home, h.none, h.table, h.explicit = home, false, nil, true
	return nil
}

func (h *systemModulesHandler) currentHome() string {
	if h.none {
		return ""
	}
	if h.home != "" {
		return h.home
	}
	return h.env.Settings.SystemHome
}

// imagePath returns the image in use, empty when there is none
func (h *systemModulesHandler) imagePath() string {
	home := h.currentHome()
	if home == "" {
		return ""
	}
	img := h.env.imageFor(home)
	if !h.env.probe().IsRegularFile(img) {
		return ""
	}
	h.env.Cache.RegisterImage(img)
	return img
}

func (h *systemModulesHandler) paths() ([]string, error) {
	img := h.imagePath()
	if img == "" {
		return nil, nil
	}
	return []string{img}, nil
}

func (h *systemModulesHandler) scan() *ModuleTable {
	if h.table != nil {
		return h.table
	}
	t := NewModuleTable(h.env.probe())
	h.table = t

	path := h.imagePath()
	if path == "" {
		return t
	}
	logger := logging.GetLogger("locations")
	defer logging.LogOperationStart(logger, "system.scan")()

	img, err := h.env.Cache.Image(path)
	if err != nil {
		diagnostics.Error(h.env.Sink, diagnostics.KeyCantReadFile, path, err)
		return t
	}
	for _, name := range img.Modules() {
		t.Add(newModuleLocation(h.loc, name, []string{img.ModulePath(name)}, false, 0))
	}
	logger.Debug().
		Str("image", path).
		Int("modules", t.Len()).
		Msg("Indexed system modules")
	return t
}

func (h *systemModulesHandler) locationForModule(name string) (*ModuleLocation, error) {
	m, _ := h.scan().Get(name)
	return m, nil
}

func (h *systemModulesHandler) locationForPath(path string) (*ModuleLocation, error) {
	m, _ := h.scan().ForPath(path)
	return m, nil
}

func (h *systemModulesHandler) listLocationsForModules() ([][]*ModuleLocation, error) {
	t := h.scan()
	if t.Len() == 0 {
		return nil, nil
	}
	return [][]*ModuleLocation{t.All()}, nil
}

func (h *systemModulesHandler) invalidate() { h.table = nil }
