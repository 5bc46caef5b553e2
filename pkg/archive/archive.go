// Package archive reads zip based archives (class archives and packaged
// module files) and indexes every directory they contain once, at open
// time, so later listings are map lookups.
package archive

import (
	"bytes"
	"io"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/manifest"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
	"github.com/arthur-debert/pathfinder/pkg/types"
	"github.com/klauspost/compress/zip"
)

// ModuleFileMagic prefixes packaged module files ahead of the zip data
var ModuleFileMagic = []byte{'J', 'M', 0x01, 0x00}

type dirNode struct {
	files   []string
	subdirs []string
}

// Archive is an open archive with its directory tree
type Archive struct {
	path    string
	file    types.File
	entries map[string]*zip.File
	dirs    map[string]*dirNode

	mu       sync.Mutex
	closed   bool
	manifest *manifest.Manifest
	mfLoaded bool
	mfErr    error
}

// Open opens the archive at p and builds its directory tree
func Open(fs types.FS, p string) (*Archive, error) {
	logger := logging.GetLogger("archive")

	f, err := fs.Open(p)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrArchiveOpen, "cannot open archive").WithPath(p)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, errors.ErrArchiveOpen, "cannot stat archive").WithPath(p)
	}

	var ra io.ReaderAt = f
	size := info.Size()
	magic := make([]byte, len(ModuleFileMagic))
	if n, _ := f.ReadAt(magic, 0); n == len(magic) && bytes.Equal(magic, ModuleFileMagic) {
		ra = io.NewSectionReader(f, int64(len(magic)), size-int64(len(magic)))
		size -= int64(len(magic))
	}

	zr, err := zip.NewReader(ra, size)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, errors.ErrArchiveInvalid, "not a readable archive").WithPath(p)
	}

	a := &Archive{
		path:    p,
		file:    f,
		entries: make(map[string]*zip.File, len(zr.File)),
		dirs:    map[string]*dirNode{"": {}},
	}
	for _, zf := range zr.File {
		name := strings.TrimPrefix(zf.Name, "/")
		if strings.HasSuffix(name, "/") {
			a.ensureDir(name)
			continue
		}
		a.entries[name] = zf
		dir, base := splitEntry(name)
		node := a.ensureDir(dir)
		node.files = append(node.files, base)
	}
	for _, node := range a.dirs {
		sort.Strings(node.files)
		sort.Strings(node.subdirs)
	}

	logger.Debug().
		Str("path", p).
		Int("entries", len(a.entries)).
		Int("directories", len(a.dirs)).
		Msg("Opened archive")
	return a, nil
}

func splitEntry(name string) (dir, base string) {
	i := strings.LastIndex(name, "/")
	if i < 0 {
		return "", name
	}
	return name[:i+1], name[i+1:]
}

// ensureDir registers dir (with trailing slash) and all of its ancestors
func (a *Archive) ensureDir(dir string) *dirNode {
	if node, ok := a.dirs[dir]; ok {
		return node
	}
	node := &dirNode{}
	a.dirs[dir] = node
	trimmed := strings.TrimSuffix(dir, "/")
	parent := ""
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		parent = trimmed[:i+1]
	}
	pnode := a.ensureDir(parent)
	pnode.subdirs = append(pnode.subdirs, path.Base(trimmed))
	return node
}

// Path returns the filesystem path of the archive
func (a *Archive) Path() string { return a.path }

// Directories returns every directory in the archive, sorted, root first
func (a *Archive) Directories() []relpath.Directory {
	names := make([]string, 0, len(a.dirs))
	for d := range a.dirs {
		names = append(names, d)
	}
	sort.Strings(names)
	out := make([]relpath.Directory, len(names))
	for i, n := range names {
		out[i] = relpath.NewDirectory(n)
	}
	return out
}

// HasDirectory reports whether dir exists in the archive
func (a *Archive) HasDirectory(dir relpath.Directory) bool {
	_, ok := a.dirs[dir.Path()]
	return ok
}

// Files returns the names of the files directly inside dir
func (a *Archive) Files(dir relpath.Directory) []string {
	if node, ok := a.dirs[dir.Path()]; ok {
		return node.files
	}
	return nil
}

// Subdirectories returns the names of the directories directly inside dir
func (a *Archive) Subdirectories(dir relpath.Directory) []string {
	if node, ok := a.dirs[dir.Path()]; ok {
		return node.subdirs
	}
	return nil
}

// Exists reports whether the file is present
func (a *Archive) Exists(f relpath.File) bool {
	_, ok := a.entries[f.Path()]
	return ok
}

// OpenEntry opens one file for reading
func (a *Archive) OpenEntry(f relpath.File) (io.ReadCloser, error) {
	a.mu.Lock()
	closed := a.closed
	a.mu.Unlock()
	if closed {
		return nil, errors.New(errors.ErrArchiveOpen, "archive is closed").WithPath(a.path)
	}

	zf, ok := a.entries[f.Path()]
	if !ok {
		return nil, errors.Newf(errors.ErrFileNotFound, "no entry %s in archive", f.Path()).WithPath(a.path)
	}
	rc, err := zf.Open()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveInvalid, "cannot read entry %s", f.Path()).WithPath(a.path)
	}
	return rc, nil
}

// ReadFile reads one file fully
func (a *Archive) ReadFile(f relpath.File) ([]byte, error) {
	rc, err := a.OpenEntry(f)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveInvalid, "cannot read entry %s", f.Path()).WithPath(a.path)
	}
	return data, nil
}

// Manifest returns the archive manifest, or nil when there is none
func (a *Archive) Manifest() (*manifest.Manifest, error) {
	a.mu.Lock()
	if a.mfLoaded {
		defer a.mu.Unlock()
		return a.manifest, a.mfErr
	}
	a.mu.Unlock()

	var m *manifest.Manifest
	var err error
	mf := relpath.NewFile(manifest.Path)
	if a.Exists(mf) {
		var data []byte
		if data, err = a.ReadFile(mf); err == nil {
			m, err = manifest.Parse(data)
			if err != nil {
				err = errors.Wrap(err, errors.ErrArchiveInvalid, "bad manifest").WithPath(a.path)
			}
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.manifest, a.mfErr, a.mfLoaded = m, err, true
	return m, err
}

// Close releases the underlying file. Closing twice is a no-op.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	logger := logging.GetLogger("archive")
	logger.Trace().Str("path", a.path).Msg("Closed archive")
	if err := a.file.Close(); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot close archive").WithPath(a.path)
	}
	return nil
}
