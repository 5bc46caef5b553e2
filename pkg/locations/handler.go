package locations

import (
	"github.com/arthur-debert/pathfinder/pkg/errors"
)

// Kind is the handler variant serving a location
type Kind int

const (
	KindSimple Kind = iota
	KindOutput
	KindBootAggregate
	KindModulePath
	KindModuleSourcePath
	KindSystemModules
	KindPatch
	KindModule
)

var kindNames = map[Kind]string{
	KindSimple:           "simple",
	KindOutput:           "output",
	KindBootAggregate:    "boot",
	KindModulePath:       "module-path",
	KindModuleSourcePath: "module-source-path",
	KindSystemModules:    "system-modules",
	KindPatch:            "patch",
	KindModule:           "module",
}

func (k Kind) String() string { return kindNames[k] }

// handler is the closed set of location variants. Operations a variant
// does not support fall through to base.
type handler interface {
	kind() Kind
	location() Location
	handleOption(opt Option, value string) error
	paths() ([]string, error)
	setPaths(paths []string) error
	isExplicit() bool
	isDefault() bool
	locationForModule(name string) (*ModuleLocation, error)
	locationForPath(path string) (*ModuleLocation, error)
	setPathsForModule(name string, paths []string) error
	listLocationsForModules() ([][]*ModuleLocation, error)
	// invalidate drops state computed from the filesystem
	invalidate()
	// takeChanged returns the modules whose paths changed since the last
	// call
	takeChanged() []string
}

type base struct {
	loc      Location
	env      *Env
	explicit bool
	changed  []string
}

func (b *base) location() Location { return b.loc }

func (b *base) isExplicit() bool { return b.explicit }

func (b *base) isDefault() bool { return !b.explicit }

func (b *base) handleOption(opt Option, _ string) error {
	return errors.Newf(errors.ErrUnsupported, "option %s does not apply to %s", opt, b.loc.Name())
}

func (b *base) locationForModule(string) (*ModuleLocation, error) { return nil, nil }

func (b *base) locationForPath(string) (*ModuleLocation, error) { return nil, nil }

func (b *base) setPathsForModule(name string, _ []string) error {
	return errors.Newf(errors.ErrUnsupported, "%s does not hold modules, cannot set paths for %s", b.loc.Name(), name)
}

func (b *base) listLocationsForModules() ([][]*ModuleLocation, error) { return nil, nil }

func (b *base) invalidate() {}

func (b *base) noteChanged(module string) { b.changed = append(b.changed, module) }

func (b *base) takeChanged() []string {
	out := b.changed
	b.changed = nil
	return out
}
