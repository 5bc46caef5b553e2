package locations

import (
	"path/filepath"

	"github.com/arthur-debert/pathfinder/pkg/archive"
	"github.com/arthur-debert/pathfinder/pkg/container"
	"github.com/arthur-debert/pathfinder/pkg/descriptor"
	"github.com/arthur-debert/pathfinder/pkg/diagnostics"
	"github.com/arthur-debert/pathfinder/pkg/fscache"
	"github.com/arthur-debert/pathfinder/pkg/image"
	"github.com/arthur-debert/pathfinder/pkg/searchpath"
)

// Settings are the tunables handlers consult when computing paths
type Settings struct {
	// EmptyElement replaces empty class path elements; empty drops them
	EmptyElement    string
	WarnMissing     bool
	ExpandClassPath bool

	// DefaultClassPath is used when the class path is never set
	DefaultClassPath string

	// SystemHome is the platform home holding the module image and the
	// boot, ext and endorsed directories
	SystemHome   string
	ImagePath    string
	BootDir      string
	ExtDirs      string
	EndorsedDirs string

	DescriptorName       string
	SourceDescriptorName string
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		EmptyElement:         searchpath.CurrentDirectory,
		WarnMissing:          true,
		ExpandClassPath:      true,
		ImagePath:            image.DefaultRelativePath,
		BootDir:              "lib/boot",
		DescriptorName:       descriptor.DefaultFileName,
		SourceDescriptorName: descriptor.DefaultSourceFileName,
	}
}

// Env carries the collaborators shared by every handler
type Env struct {
	Cache    *container.Cache
	Matcher  *archive.Matcher
	Sink     diagnostics.Sink
	Settings Settings
}

func (e *Env) probe() *fscache.Cache { return e.Cache.Probe() }

func (e *Env) matcher() *archive.Matcher {
	if e.Matcher == nil {
		e.Matcher = archive.DefaultMatcher()
	}
	return e.Matcher
}

// newPath creates a search path builder. Only the class path substitutes
// empty elements and follows manifest class paths.
func (e *Env) newPath(classPath bool) *searchpath.SearchPath {
	opts := searchpath.Options{
		Probe:    e.probe(),
		Archives: e.Cache,
		Matcher:  e.matcher(),
		Sink:     e.Sink,
	}
	if classPath {
		opts.EmptyElement = e.Settings.EmptyElement
		opts.ExpandClassPath = e.Settings.ExpandClassPath
	}
	return searchpath.New(opts)
}

// homePath resolves a path relative to the system home
func (e *Env) homePath(rel string) string {
	if rel == "" || e.Settings.SystemHome == "" {
		return ""
	}
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(e.Settings.SystemHome, filepath.FromSlash(rel))
}

// homeDirs resolves every element of a path list against the system home
func (e *Env) homeDirs(list string) string {
	var out []string
	for _, elem := range searchpath.Split(list, "") {
		if p := e.homePath(elem); p != "" {
			out = append(out, p)
		}
	}
	return searchpath.Join(out)
}

// imageFor returns the module image path below home
func (e *Env) imageFor(home string) string {
	return image.PathFor(home, e.Settings.ImagePath)
}
