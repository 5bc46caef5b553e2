// Package searchpath builds the ordered, de-duplicated list of entries
// backing a location. Entries are compared by canonical path so that two
// spellings of one file, through a symlink or a different case, count once
// and keep the position of their first occurrence.
package searchpath

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pathfinder/pkg/archive"
	"github.com/arthur-debert/pathfinder/pkg/diagnostics"
	"github.com/arthur-debert/pathfinder/pkg/fscache"
	"github.com/arthur-debert/pathfinder/pkg/logging"
)

// CurrentDirectory is the substitute for empty class path elements
const CurrentDirectory = "."

// ArchiveOpener opens archives that the builder needs to inspect. The
// container cache implements it and keeps ownership of what it opens.
type ArchiveOpener interface {
	ArchiveSupport() bool
	OpenArchive(path string) (*archive.Archive, error)
}

// Options configures a SearchPath
type Options struct {
	Probe    *fscache.Cache
	Archives ArchiveOpener
	Matcher  *archive.Matcher
	Sink     diagnostics.Sink

	// EmptyElement replaces empty elements of a path list. Empty elements
	// are dropped when it is unset.
	EmptyElement string

	// ExpandClassPath follows the Class-Path attribute of archive manifests
	ExpandClassPath bool
}

// SearchPath is an ordered set of path entries
type SearchPath struct {
	opts      Options
	entries   []string
	raw       map[string]bool
	canonical map[string]bool
}

// New creates an empty search path
func New(opts Options) *SearchPath {
	if opts.Matcher == nil {
		opts.Matcher = archive.DefaultMatcher()
	}
	return &SearchPath{
		opts:      opts,
		raw:       make(map[string]bool),
		canonical: make(map[string]bool),
	}
}

// Split breaks a delimited path list into elements. Empty elements become
// emptyElement, or are dropped when emptyElement is empty.
func Split(text, emptyElement string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, elem := range strings.Split(text, string(os.PathListSeparator)) {
		if elem == "" {
			if emptyElement == "" {
				continue
			}
			elem = emptyElement
		}
		out = append(out, elem)
	}
	return out
}

// Join renders entries as a delimited path list
func Join(entries []string) string {
	return strings.Join(entries, string(os.PathListSeparator))
}

// Entries returns a copy of the entries in order
func (s *SearchPath) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries
func (s *SearchPath) Len() int { return len(s.entries) }

// Contains reports whether entry, or another spelling of it, is present
func (s *SearchPath) Contains(entry string) bool {
	entry = filepath.Clean(entry)
	return s.raw[entry] || s.canonical[s.opts.Probe.Canonical(entry)]
}

// AddFiles adds every element of a delimited path list
func (s *SearchPath) AddFiles(text string, warn bool) *SearchPath {
	for _, elem := range Split(text, s.opts.EmptyElement) {
		s.AddFile(elem, warn)
	}
	return s
}

// AddAll adds entries in order
func (s *SearchPath) AddAll(entries []string, warn bool) *SearchPath {
	for _, e := range entries {
		s.AddFile(e, warn)
	}
	return s
}

// AddDirectories adds the archives found directly inside every directory
// of a delimited path list
func (s *SearchPath) AddDirectories(text string, warn bool) *SearchPath {
	for _, dir := range Split(text, "") {
		s.addDirectory(dir, warn)
	}
	return s
}

func (s *SearchPath) addDirectory(dir string, warn bool) {
	logger := logging.GetLogger("searchpath")
	probe := s.opts.Probe

	if !probe.Exists(dir) {
		if warn {
			diagnostics.Warn(s.opts.Sink, diagnostics.CategoryPath, diagnostics.KeyDirElementNotFound, dir)
		}
		return
	}
	if !probe.IsDirectory(dir) {
		if warn {
			diagnostics.Warn(s.opts.Sink, diagnostics.CategoryPath, diagnostics.KeyDirElementNotDirectory, dir)
		}
		return
	}

	entries, err := probe.FS().ReadDir(dir)
	if err != nil {
		diagnostics.Error(s.opts.Sink, diagnostics.KeyCantReadFile, dir, err)
		return
	}
	logger.Debug().Str("dir", dir).Int("entries", len(entries)).Msg("Scanning directory for archives")
	for _, e := range entries {
		if s.opts.Matcher.IsArchive(e.Name()) {
			s.AddFile(filepath.Join(dir, e.Name()), warn)
		}
	}
}

// AddFile adds a single entry. A missing entry is kept, with a warning
// when warn is set. A regular file must be an archive to be kept.
func (s *SearchPath) AddFile(entry string, warn bool) *SearchPath {
	logger := logging.GetLogger("searchpath")
	sink := s.opts.Sink
	probe := s.opts.Probe

	if strings.ContainsRune(entry, 0) {
		diagnostics.Warn(sink, diagnostics.CategoryPath, diagnostics.KeyInvalidPath, strings.ReplaceAll(entry, "\x00", "\\0"))
		return s
	}
	entry = filepath.Clean(entry)
	if s.raw[entry] {
		return s
	}
	canonical := probe.Canonical(entry)
	if s.canonical[canonical] {
		logger.Trace().Str("entry", entry).Str("canonical", canonical).Msg("Skipping duplicate entry")
		return s
	}

	if !probe.Exists(entry) {
		if warn {
			diagnostics.Warn(sink, diagnostics.CategoryPath, diagnostics.KeyPathElementNotFound, entry)
		}
		s.record(entry, canonical)
		return s
	}

	isArchive := false
	if probe.IsRegularFile(entry) {
		a, ok := s.checkArchive(entry, warn)
		if !ok {
			return s
		}
		isArchive = a != nil
		s.record(entry, canonical)
		if isArchive && s.opts.ExpandClassPath {
			s.expandClassPath(a, warn)
		}
		return s
	}

	s.record(entry, canonical)
	return s
}

// checkArchive validates a regular file entry. It returns the opened
// archive (nil when the file is kept without being one) and whether the
// entry should be kept at all. Only a missing archive capability is an
// error; everything else is a warning, reported when warn is set.
func (s *SearchPath) checkArchive(entry string, warn bool) (*archive.Archive, bool) {
	sink := s.opts.Sink
	if !warn {
		sink = nil
	}
	name := filepath.Base(entry)

	if !s.opts.Matcher.IsRecognized(name) {
		if s.opts.Archives == nil || !s.opts.Archives.ArchiveSupport() {
			diagnostics.Warn(sink, diagnostics.CategoryPath, diagnostics.KeyUnexpectedFile, entry)
			return nil, false
		}
		a, err := s.opts.Archives.OpenArchive(entry)
		if err != nil {
			diagnostics.Warn(sink, diagnostics.CategoryPath, diagnostics.KeyUnexpectedFile, entry)
			return nil, false
		}
		diagnostics.Warn(sink, diagnostics.CategoryPath, diagnostics.KeyUnexpectedArchiveFile, entry)
		return a, true
	}

	if s.opts.Archives == nil || !s.opts.Archives.ArchiveSupport() {
		diagnostics.Error(s.opts.Sink, diagnostics.KeyNoArchiveSupport, entry, nil)
		return nil, false
	}
	a, err := s.opts.Archives.OpenArchive(entry)
	if err != nil {
		diagnostics.WarnErr(sink, diagnostics.CategoryPath, diagnostics.KeyErrorReadingFile, entry, err)
		return nil, false
	}
	return a, true
}

// AddImage adds a packaged module image. Images are not archives to the
// builder and skip the regular file checks.
func (s *SearchPath) AddImage(path string) *SearchPath {
	path = filepath.Clean(path)
	canonical := s.opts.Probe.Canonical(path)
	if !s.raw[path] && !s.canonical[canonical] {
		s.record(path, canonical)
	}
	return s
}

func (s *SearchPath) record(entry, canonical string) {
	s.entries = append(s.entries, entry)
	s.raw[entry] = true
	s.canonical[canonical] = true
}

// expandClassPath adds the entries named by the manifest of a. Tokens are
// relative URLs resolved against the directory holding the archive; only
// file URLs are followed.
func (s *SearchPath) expandClassPath(a *archive.Archive, warn bool) {
	logger := logging.GetLogger("searchpath")

	m, err := a.Manifest()
	if err != nil {
		diagnostics.Error(s.opts.Sink, diagnostics.KeyErrorReadingFile, a.Path(), err)
		return
	}
	tokens := m.ClassPath()
	if len(tokens) == 0 {
		return
	}

	base := &url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Dir(a.Path())) + "/"}
	for _, tok := range tokens {
		ref, err := url.Parse(tok)
		if err != nil {
			diagnostics.Warn(s.opts.Sink, diagnostics.CategoryPath, diagnostics.KeyInvalidPath, tok)
			continue
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "file" {
			logger.Debug().Str("archive", a.Path()).Str("token", tok).Msg("Ignoring non-file class path reference")
			continue
		}
		logger.Trace().Str("archive", a.Path()).Str("entry", resolved.Path).Msg("Following manifest class path")
		s.AddFile(filepath.FromSlash(resolved.Path), warn)
	}
}
