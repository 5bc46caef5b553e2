package archive

import (
	"path/filepath"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/types"
	"github.com/bmatcuk/doublestar"
)

// Opener opens archives. A nil Opener means the platform has no archive
// support at all.
type Opener interface {
	Open(path string) (*Archive, error)
}

// FSOpener opens archives through a filesystem probe
type FSOpener struct {
	FS types.FS
}

// Open implements Opener
func (o FSOpener) Open(path string) (*Archive, error) {
	return Open(o.FS, path)
}

// Matcher recognises archive file names
type Matcher struct {
	archive []string
	module  []string
}

// DefaultArchivePatterns match class archives
var DefaultArchivePatterns = []string{"*.{jar,zip}"}

// DefaultModulePatterns match packaged module files
var DefaultModulePatterns = []string{"*.jmod"}

// NewMatcher validates the glob patterns and builds a matcher
func NewMatcher(archivePatterns, modulePatterns []string) (*Matcher, error) {
	for _, p := range append(append([]string{}, archivePatterns...), modulePatterns...) {
		if _, err := doublestar.Match(p, "probe"); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid archive pattern %q", p)
		}
	}
	return &Matcher{archive: archivePatterns, module: modulePatterns}, nil
}

// DefaultMatcher recognises .jar, .zip and .jmod files
func DefaultMatcher() *Matcher {
	return &Matcher{archive: DefaultArchivePatterns, module: DefaultModulePatterns}
}

func matchAny(patterns []string, name string) bool {
	base := filepath.Base(name)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}
	return false
}

// IsArchive reports whether name looks like a class archive
func (m *Matcher) IsArchive(name string) bool {
	return matchAny(m.archive, name)
}

// IsModuleFile reports whether name looks like a packaged module file
func (m *Matcher) IsModuleFile(name string) bool {
	return matchAny(m.module, name)
}

// IsRecognized reports whether name has any known archive extension
func (m *Matcher) IsRecognized(name string) bool {
	return m.IsArchive(name) || m.IsModuleFile(name)
}
