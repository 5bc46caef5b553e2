package locations

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pathfinder/pkg/archive"
	"github.com/arthur-debert/pathfinder/pkg/descriptor"
	"github.com/arthur-debert/pathfinder/pkg/diagnostics"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/modname"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
)

// packagedContentDir holds the classes of a packaged module file
const packagedContentDir = "classes"

// found is a module discovered while scanning a path entry
type found struct {
	name string
	root string
}

// discover lists the modules a module path entry provides. A directory is
// either one exploded module, when it holds a descriptor, or a directory
// of modules. Entries that fail are reported and skipped.
func (e *Env) discover(entry string) []found {
	logger := logging.GetLogger("locations.discover")
	probe := e.probe()

	switch {
	case probe.IsDirectory(entry):
		if name, present, ok := e.explodedModule(entry); present {
			if !ok {
				return nil
			}
			logger.Debug().Str("entry", entry).Str("module", name).Msg("Found exploded module")
			return []found{{name: name, root: entry}}
		}
		children, err := probe.FS().ReadDir(entry)
		if err != nil {
			diagnostics.Error(e.Sink, diagnostics.KeyCantReadFile, entry, err)
			return nil
		}
		var out []found
		for _, child := range children {
			if f, ok := e.inferModule(filepath.Join(entry, child.Name())); ok {
				out = append(out, f)
			}
		}
		logger.Debug().Str("entry", entry).Int("modules", len(out)).Msg("Scanned directory of modules")
		return out
	case probe.IsRegularFile(entry):
		if f, ok := e.inferModule(entry); ok {
			return []found{f}
		}
		return nil
	}
	logger.Trace().Str("entry", entry).Msg("Module path entry does not exist")
	return nil
}

// explodedModule reads the descriptor at the root of dir. present tells
// whether there is one; ok whether it could be read.
func (e *Env) explodedModule(dir string) (name string, present, ok bool) {
	p := filepath.Join(dir, e.Settings.DescriptorName)
	if !e.probe().IsRegularFile(p) {
		return "", false, false
	}
	data, err := e.probe().FS().ReadFile(p)
	if err != nil {
		diagnostics.Error(e.Sink, diagnostics.KeyCantReadFile, p, err)
		return "", true, false
	}
	d, err := descriptor.Parse(data)
	if err != nil {
		diagnostics.Error(e.Sink, diagnostics.KeyBadModuleDescriptor, p, err)
		return "", true, false
	}
	return d.Name, true, true
}

// inferModule works out the module held by a child of a module path entry
func (e *Env) inferModule(p string) (found, bool) {
	if e.probe().IsDirectory(p) {
		name, present, ok := e.explodedModule(p)
		if !present || !ok {
			return found{}, false
		}
		return found{name: name, root: p}, true
	}

	base := filepath.Base(p)
	switch {
	case strings.HasSuffix(base, ".jar"):
		return e.inferArchiveModule(p)
	case e.matcher().IsModuleFile(base):
		return e.inferPackagedModule(p)
	}
	logger := logging.GetLogger("locations.discover")
	logger.Trace().Str("path", p).Msg("Ignoring non-module file")
	return found{}, false
}

func (e *Env) openModuleArchive(p string) (*archive.Archive, bool) {
	if !e.Cache.ArchiveSupport() {
		diagnostics.Error(e.Sink, diagnostics.KeyNoArchiveSupport, p, nil)
		return nil, false
	}
	a, err := e.Cache.OpenArchive(p)
	if err != nil {
		diagnostics.Error(e.Sink, diagnostics.KeyCantReadFile, p, err)
		return nil, false
	}
	return a, true
}

// readDescriptor reads the descriptor entry of a, reporting whether the
// entry exists and whether it could be decoded
func (e *Env) readDescriptor(a *archive.Archive, entry relpath.File) (*descriptor.Descriptor, bool, bool) {
	if !a.Exists(entry) {
		return nil, false, false
	}
	data, err := a.ReadFile(entry)
	if err == nil {
		var d *descriptor.Descriptor
		if d, err = descriptor.Parse(data); err == nil {
			return d, true, true
		}
	}
	diagnostics.Error(e.Sink, diagnostics.KeyBadModuleDescriptor, a.Path(), err)
	return nil, true, false
}

// inferArchiveModule names a modular or automatic archive: descriptor
// first, then the manifest, then the file name
func (e *Env) inferArchiveModule(p string) (found, bool) {
	a, ok := e.openModuleArchive(p)
	if !ok {
		return found{}, false
	}
	if d, present, ok := e.readDescriptor(a, relpath.NewFile(e.Settings.DescriptorName)); present {
		if !ok {
			return found{}, false
		}
		return found{name: d.Name, root: p}, true
	}

	m, err := a.Manifest()
	if err != nil {
		diagnostics.Error(e.Sink, diagnostics.KeyCantReadFile, p, err)
		return found{}, false
	}
	if name := m.AutomaticModuleName(); name != "" {
		if err := modname.Validate(name); err != nil {
			diagnostics.Error(e.Sink, diagnostics.KeyCantDeriveModuleName, p, err)
			return found{}, false
		}
		return found{name: name, root: p}, true
	}

	name, err := modname.DeriveAutomatic(filepath.Base(p))
	if err != nil {
		diagnostics.Error(e.Sink, diagnostics.KeyCantDeriveModuleName, p, err)
		return found{}, false
	}
	logger := logging.GetLogger("locations.discover")
	logger.Debug().Str("path", p).Str("module", name).Msg("Derived automatic module name")
	return found{name: name, root: p}, true
}

// inferPackagedModule names a packaged module file from its descriptor.
// The module's content root is the classes directory inside the file.
func (e *Env) inferPackagedModule(p string) (found, bool) {
	a, ok := e.openModuleArchive(p)
	if !ok {
		return found{}, false
	}
	entry := relpath.NewDirectory(packagedContentDir).File(e.Settings.DescriptorName)
	d, present, ok := e.readDescriptor(a, entry)
	if !present {
		err := errors.New(errors.ErrDescriptorInvalid, "packaged module has no descriptor").WithPath(p)
		diagnostics.Error(e.Sink, diagnostics.KeyBadModuleDescriptor, p, err)
		return found{}, false
	}
	if !ok {
		return found{}, false
	}
	return found{name: d.Name, root: filepath.Join(p, packagedContentDir)}, true
}
