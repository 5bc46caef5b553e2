package filemanager

import (
	"github.com/arthur-debert/pathfinder/pkg/archive"
	"github.com/arthur-debert/pathfinder/pkg/container"
	"github.com/arthur-debert/pathfinder/pkg/diagnostics"
	"github.com/arthur-debert/pathfinder/pkg/filesystem"
	"github.com/arthur-debert/pathfinder/pkg/fscache"
	"github.com/arthur-debert/pathfinder/pkg/index"
	"github.com/arthur-debert/pathfinder/pkg/locations"
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// Options configures a Manager
type Options struct {
	// FS is the filesystem to resolve against; nil means the OS
	FS            types.FS
	CaseSensitive bool
	// NoArchives disables archive support altogether
	NoArchives bool
	Order      types.Order
	Matcher    *archive.Matcher
	Settings   locations.Settings
	// Sink receives diagnostics; nil logs them
	Sink diagnostics.Sink
}

// DefaultOptions returns options for the OS filesystem
func DefaultOptions() Options {
	return Options{
		CaseSensitive: fscache.DefaultCaseSensitive(),
		Order:         types.OrderName,
		Matcher:       archive.DefaultMatcher(),
		Settings:      locations.DefaultSettings(),
	}
}

// Manager resolves locations to files
type Manager struct {
	opts  Options
	probe *fscache.Cache
	cache *container.Cache
	reg   *locations.Registry
	idx   *index.Index
}

// New creates a Manager
func New(opts Options) *Manager {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Matcher == nil {
		opts.Matcher = archive.DefaultMatcher()
	}
	if opts.Sink == nil {
		opts.Sink = diagnostics.LogSink{}
	}

	probe := fscache.New(opts.FS, opts.CaseSensitive)
	var opener archive.Opener
	if !opts.NoArchives {
		opener = archive.FSOpener{FS: opts.FS}
	}
	cache := container.NewCache(container.Options{
		Probe:  probe,
		Opener: opener,
		Order:  opts.Order,
	})
	reg := locations.New(&locations.Env{
		Cache:    cache,
		Matcher:  opts.Matcher,
		Sink:     opts.Sink,
		Settings: opts.Settings,
	})

	logger := logging.WithFields(map[string]interface{}{
		"component":      "filemanager",
		"archives":       !opts.NoArchives,
		"case_sensitive": opts.CaseSensitive,
		"order":          string(opts.Order),
		"system_home":    opts.Settings.SystemHome,
	})
	logger.Debug().Msg("File manager created")

	return &Manager{
		opts:  opts,
		probe: probe,
		cache: cache,
		reg:   reg,
		idx:   index.New(reg, cache),
	}
}

// Registry exposes the location registry
func (m *Manager) Registry() *locations.Registry { return m.reg }

// HandleOption applies a path option. handled is false when flag is not
// a path option.
func (m *Manager) HandleOption(flag, value string) (handled bool, err error) {
	return m.reg.HandleOption(flag, value)
}

// SetLocation sets the entries of loc; nil resets it to its default
func (m *Manager) SetLocation(loc locations.Location, paths []string) error {
	return m.reg.SetPaths(loc, paths)
}

// GetLocation returns the entries of loc in search order, nil when unset
func (m *Manager) GetLocation(loc locations.Location) ([]string, error) {
	return m.reg.Paths(loc)
}

// HasLocation reports whether loc is set
func (m *Manager) HasLocation(loc locations.Location) bool {
	return m.reg.HasLocation(loc)
}

// SetLocationForModule pins module name of loc to paths
func (m *Manager) SetLocationForModule(loc locations.Location, name string, paths []string) error {
	return m.reg.SetPathsForModule(loc, name, paths)
}

// GetLocationForModule returns the location of module name in loc, nil
// when there is none
func (m *Manager) GetLocationForModule(loc locations.Location, name string) (*locations.ModuleLocation, error) {
	return m.reg.LocationForModule(loc, name)
}

// GetLocationForModuleByPath returns the module of loc holding path
func (m *Manager) GetLocationForModuleByPath(loc locations.Location, path string) (*locations.ModuleLocation, error) {
	return m.reg.LocationForModuleByPath(loc, path)
}

// GetLocationForModuleOf returns the module of loc holding f
func (m *Manager) GetLocationForModuleOf(loc locations.Location, f *container.FileObject) (*locations.ModuleLocation, error) {
	return m.reg.LocationForModuleByPath(loc, f.Path())
}

// ListLocationsForModules returns the modules visible in loc as sets,
// explicitly configured modules first, then one set per path entry
func (m *Manager) ListLocationsForModules(loc locations.Location) ([][]*locations.ModuleLocation, error) {
	return m.reg.ListLocationsForModules(loc)
}

// InferModuleName returns the module a module location serves
func (m *Manager) InferModuleName(loc locations.Location) (string, bool) {
	return m.reg.InferModuleName(loc)
}

// IsDefaultPlatformClassPath reports whether the platform class path is
// the one derived from the system home
func (m *Manager) IsDefaultPlatformClassPath() bool {
	return m.reg.IsDefaultPlatformClassPath()
}

// IsDefaultSystemModules reports whether the system modules come from
// the configured system home
func (m *Manager) IsDefaultSystemModules() bool {
	return m.reg.IsDefaultSystemModules()
}

// IsSameFile reports whether a and b are the same file. Plain files are
// compared by canonical path.
func (m *Manager) IsSameFile(a, b *container.FileObject) bool {
	if container.IsSameFile(a, b) {
		return true
	}
	if a == nil || b == nil || a.Origin() != container.OriginFile || b.Origin() != container.OriginFile {
		return false
	}
	return m.probe.IsSameFile(a.Path(), b.Path())
}

// Reset closes every open archive and image and forgets everything read
// from the filesystem. Configured locations are kept and recomputed on
// next use.
func (m *Manager) Reset() error {
	err := m.cache.Close()
	m.probe.Clear()
	m.reg.Invalidate()
	m.idx.Clear()
	logger := logging.GetLogger("filemanager")
	logger.Debug().Msg("File manager reset")
	return err
}

// Close releases every open archive and image. Closing twice is a no-op;
// a closed Manager reopens what it needs when queried again.
func (m *Manager) Close() error {
	err := m.cache.Close()
	m.idx.Clear()
	return err
}
