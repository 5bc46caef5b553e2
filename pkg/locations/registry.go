package locations

import (
	"sync"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/logging"
)

// Registry holds the handler of every location. Mutations are expected
// from one caller at a time; the lock only keeps readers on other
// goroutines from seeing half-built state.
type Registry struct {
	env *Env

	mu       sync.Mutex
	handlers map[Location]handler
	order    []Location
	epochs   map[Location]uint64
}

// New creates a registry with a handler for every standard location
func New(env *Env) *Registry {
	r := &Registry{
		env:      env,
		handlers: make(map[Location]handler),
		epochs:   make(map[Location]uint64),
	}
	classPath := newSimpleHandler(ClassPath, env, true)
	processorPath := newSimpleHandler(AnnotationProcessorPath, env, false)
	processorPath.fallback = classPath.paths

	for _, h := range []handler{
		newOutputHandler(ClassOutput, env),
		newOutputHandler(SourceOutput, env),
		newOutputHandler(NativeHeaderOutput, env),
		classPath,
		newSimpleHandler(SourcePath, env, false),
		processorPath,
		newBootHandler(env),
		newModuleSourcePathHandler(env),
		newModulePathHandler(UpgradeModulePath, env),
		newSystemModulesHandler(env),
		newModulePathHandler(ModulePath, env),
		newModulePathHandler(AnnotationProcessorModulePath, env),
		newPatchHandler(env),
	} {
		r.add(h)
	}
	return r
}

func (r *Registry) add(h handler) {
	r.handlers[h.location()] = h
	r.order = append(r.order, h.location())
}

// Env returns the shared collaborators
func (r *Registry) Env() *Env { return r.env }

// dependents lists locations whose default is computed from another
var dependents = map[Location][]Location{
	ClassPath: {AnnotationProcessorPath},
}

// touch records a mutation of loc
func (r *Registry) touch(loc Location) {
	r.epochs[loc]++
	for _, dep := range dependents[loc] {
		if h := r.handlers[dep]; h != nil && !h.isExplicit() {
			h.invalidate()
			r.epochs[dep]++
		}
	}
	logger := logging.GetLogger("locations")
	logger.Trace().
		Str("location", loc.Name()).
		Uint64("epoch", r.epochs[loc]).
		Msg("Location changed")
}

// HandleOption applies a path option. handled is false for options that
// are not path options.
func (r *Registry) HandleOption(flag, value string) (handled bool, err error) {
	opt, loc, ok := LookupOption(flag)
	if !ok {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	logger := logging.GetLogger("locations")
	logger.Debug().
		Str("option", string(opt)).
		Str("location", loc.Name()).
		Msg("Handling path option")
	h := r.handlers[loc]
	err = h.handleOption(opt, value)
	// a failing value may still have replaced earlier modules
	r.touch(loc)
	r.touchChanged(h)
	return true, err
}

// touchChanged records a mutation of every module location h changed
func (r *Registry) touchChanged(h handler) {
	for _, name := range h.takeChanged() {
		if m, err := h.locationForModule(name); err == nil && m != nil {
			r.touch(m)
		}
	}
}

// SetPaths configures loc. nil resets it to its default.
func (r *Registry) SetPaths(loc Location, paths []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := loc.(*ModuleLocation); ok {
		return r.setPathsForModule(m.parent, m.module, paths)
	}
	h := r.handlers[loc]
	if h == nil {
		if paths == nil {
			return nil
		}
		if loc.IsOutput() {
			h = newOutputHandler(loc, r.env)
		} else {
			h = newSimpleHandler(loc, r.env, false)
		}
		r.add(h)
	}
	if err := h.setPaths(paths); err != nil {
		return err
	}
	r.touch(loc)
	return nil
}

// Paths returns the entries of loc, nil when it is not set
func (r *Registry) Paths(loc Location) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paths(loc)
}

func (r *Registry) paths(loc Location) ([]string, error) {
	if m, ok := loc.(*ModuleLocation); ok {
		return m.Paths(), nil
	}
	h := r.handlers[loc]
	if h == nil {
		return nil, nil
	}
	return h.paths()
}

// HasLocation reports whether loc is known and set
func (r *Registry) HasLocation(loc Location) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := loc.(*ModuleLocation); ok {
		return true
	}
	h := r.handlers[loc]
	if h == nil {
		return false
	}
	if h.isExplicit() {
		return true
	}
	p, err := h.paths()
	return err == nil && p != nil
}

// IsExplicit reports whether loc was configured rather than defaulted
func (r *Registry) IsExplicit(loc Location) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := loc.(*ModuleLocation); ok {
		return m.explicit
	}
	h := r.handlers[loc]
	return h != nil && h.isExplicit()
}

// IsDefaultPlatformClassPath reports whether no boot fragment was set
func (r *Registry) IsDefaultPlatformClassPath() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handlers[PlatformClassPath].isDefault()
}

// IsDefaultSystemModules reports whether the system modules come from the
// configured home
func (r *Registry) IsDefaultSystemModules() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handlers[SystemModules].isDefault()
}

// Kind returns the handler variant serving loc
func (r *Registry) Kind(loc Location) Kind {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := loc.(*ModuleLocation); ok {
		return KindModule
	}
	if h := r.handlers[loc]; h != nil {
		return h.kind()
	}
	if loc.IsOutput() {
		return KindOutput
	}
	return KindSimple
}

func (r *Registry) moduleHandler(loc Location) (handler, error) {
	if _, ok := loc.(*ModuleLocation); ok {
		return nil, errors.Newf(errors.ErrUnsupported, "%s is a module location and holds no modules", loc.Name())
	}
	return r.handlers[loc], nil
}

// LocationForModule returns the location of module name inside loc, nil
// when loc has no such module
func (r *Registry) LocationForModule(loc Location, name string) (*ModuleLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.moduleHandler(loc)
	if err != nil || h == nil {
		return nil, err
	}
	return h.locationForModule(name)
}

// LocationForModuleByPath returns the module of loc whose content root
// holds path
func (r *Registry) LocationForModuleByPath(loc Location, path string) (*ModuleLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.moduleHandler(loc)
	if err != nil || h == nil {
		return nil, err
	}
	return h.locationForPath(path)
}

// SetPathsForModule pins module name of loc to paths. The setting wins
// over anything found by scanning, including a scan that already ran.
func (r *Registry) SetPathsForModule(loc Location, name string, paths []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setPathsForModule(loc, name, paths)
}

func (r *Registry) setPathsForModule(loc Location, name string, paths []string) error {
	h, err := r.moduleHandler(loc)
	if err != nil {
		return err
	}
	if h == nil {
		return errors.Newf(errors.ErrUnsupported, "unknown location %s cannot hold modules", loc.Name())
	}
	if err := h.setPathsForModule(name, paths); err != nil {
		return err
	}
	r.touch(loc)
	r.touchChanged(h)
	return nil
}

// ListLocationsForModules returns the modules of loc as sets: explicit
// modules first, then one set per path entry
func (r *Registry) ListLocationsForModules(loc Location) ([][]*ModuleLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.moduleHandler(loc)
	if err != nil || h == nil {
		return nil, err
	}
	return h.listLocationsForModules()
}

// InferModuleName returns the module served by loc
func (r *Registry) InferModuleName(loc Location) (string, bool) {
	if m, ok := loc.(*ModuleLocation); ok {
		return m.module, true
	}
	return "", false
}

// Epoch returns a counter that changes whenever loc is mutated
func (r *Registry) Epoch(loc Location) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.epochs[loc]
}

// Locations returns every location with a handler, standard ones first
func (r *Registry) Locations() []Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Location, len(r.order))
	copy(out, r.order)
	return out
}

// Invalidate drops everything computed from the filesystem. Explicit
// settings are kept; module tables and defaults are rebuilt on next use.
func (r *Registry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, loc := range r.order {
		r.handlers[loc].invalidate()
	}
	for loc := range r.epochs {
		r.epochs[loc]++
	}
	for _, loc := range r.order {
		if _, ok := r.epochs[loc]; !ok {
			r.epochs[loc] = 1
		}
	}
}
