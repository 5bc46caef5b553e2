package locations

import (
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/searchpath"
)

// bootHandler merges the platform class path from its option fragments
// on first read: prepend, endorsed dirs, boot path, append, ext dirs
type bootHandler struct {
	base
	values map[Option]string

	entries    []string
	computed   bool
	defaultSet bool
	// fixed is set when the entries were given as a list
	fixed bool
}

func newBootHandler(env *Env) *bootHandler {
	return &bootHandler{
		base:   base{loc: PlatformClassPath, env: env},
		values: make(map[Option]string),
	}
}

func (h *bootHandler) kind() Kind { return KindBootAggregate }

func (h *bootHandler) handleOption(opt Option, value string) error {
	if opt == OptBootClassPath {
		delete(h.values, OptBootPrepend)
		delete(h.values, OptBootAppend)
	}
	h.values[opt] = value
	h.entries, h.computed, h.fixed = nil, false, false
	return nil
}

func (h *bootHandler) setPaths(paths []string) error {
	h.values = make(map[Option]string)
	if paths == nil {
		h.entries, h.computed, h.fixed = nil, false, false
		return nil
	}
	h.entries = h.env.newPath(false).AddAll(paths, false).Entries()
	h.computed, h.fixed, h.defaultSet = true, true, false
	return nil
}

func (h *bootHandler) invalidate() {
	if !h.fixed {
		h.entries, h.computed = nil, false
	}
}

func (h *bootHandler) paths() ([]string, error) {
	h.lazy()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out, nil
}

func (h *bootHandler) isDefault() bool {
	h.lazy()
	return h.defaultSet
}

func (h *bootHandler) isExplicit() bool { return !h.isDefault() }

func (h *bootHandler) lazy() {
	if h.computed {
		return
	}
	h.entries = h.compute()
	h.computed = true
	h.defaultSet = h.values[OptBootPrepend] == "" && h.values[OptBootClassPath] == "" && h.values[OptBootAppend] == ""
}

func (h *bootHandler) compute() []string {
	env := h.env
	warn := env.Settings.WarnMissing
	p := env.newPath(false)

	p.AddFiles(h.values[OptBootPrepend], warn)

	if v, ok := h.values[OptEndorsedDirs]; ok {
		p.AddDirectories(v, warn)
	} else {
		p.AddDirectories(env.homeDirs(env.Settings.EndorsedDirs), false)
	}

	if v := h.values[OptBootClassPath]; v != "" {
		p.AddFiles(v, warn)
	} else {
		h.addSystemClasses(p)
	}

	p.AddFiles(h.values[OptBootAppend], warn)

	if v, ok := h.values[OptExtDirs]; ok {
		p.AddDirectories(v, warn)
	} else {
		p.AddDirectories(env.homeDirs(env.Settings.ExtDirs), false)
	}

	logger := logging.GetLogger("locations")

	logger.Debug().
		Int("entries", p.Len()).
		Msg("Merged platform class path")
	return p.Entries()
}

// addSystemClasses adds the default boot entries: the module image when
// the home has one, otherwise the archives of the boot directory
func (h *bootHandler) addSystemClasses(p *searchpath.SearchPath) {
	env := h.env
	if env.Settings.SystemHome == "" {
		return
	}
	img := env.imageFor(env.Settings.SystemHome)
	if env.probe().IsRegularFile(img) {
		env.Cache.RegisterImage(img)
		p.AddImage(img)
		return
	}
	p.AddDirectories(env.homeDirs(env.Settings.BootDir), false)
}
