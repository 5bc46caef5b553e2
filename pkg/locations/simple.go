package locations

import (
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/searchpath"
)

// simpleHandler serves a plain search path such as the class path
type simpleHandler struct {
	base
	classPath bool
	entries   []string
	computed  bool
	// fallback computes the paths of a location that was never set
	fallback func() ([]string, error)
}

func newSimpleHandler(loc Location, env *Env, classPath bool) *simpleHandler {
	return &simpleHandler{base: base{loc: loc, env: env}, classPath: classPath}
}

func (h *simpleHandler) kind() Kind { return KindSimple }

func (h *simpleHandler) handleOption(_ Option, value string) error {
	h.entries = h.env.newPath(h.classPath).AddFiles(value, h.env.Settings.WarnMissing).Entries()
	h.explicit = true
	h.computed = true
	return nil
}

func (h *simpleHandler) setPaths(paths []string) error {
	if paths == nil {
		h.entries, h.explicit, h.computed = nil, false, false
		return nil
	}
	h.entries = h.env.newPath(h.classPath).AddAll(paths, h.env.Settings.WarnMissing).Entries()
	h.explicit = true
	h.computed = true
	return nil
}

func (h *simpleHandler) paths() ([]string, error) {
	if !h.computed {
		entries, err := h.computeDefault()
		if err != nil {
			return nil, err
		}
		h.entries, h.computed = entries, true
		logger := logging.GetLogger("locations")
		logger.Debug().
			Str("location", h.loc.Name()).
			Int("entries", len(entries)).
			Msg("Computed default search path")
	}
	if h.entries == nil {
		return nil, nil
	}
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out, nil
}

func (h *simpleHandler) computeDefault() ([]string, error) {
	if h.fallback != nil {
		return h.fallback()
	}
	if !h.classPath {
		return nil, nil
	}
	cp := h.env.Settings.DefaultClassPath
	if cp == "" {
		cp = searchpath.CurrentDirectory
	}
	return h.env.newPath(true).AddFiles(cp, h.env.Settings.WarnMissing).Entries(), nil
}

func (h *simpleHandler) invalidate() {
	if !h.explicit {
		h.entries, h.computed = nil, false
	}
}
