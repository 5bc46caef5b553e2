package container

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// Origin tells where a file object's bytes live
type Origin int

const (
	OriginFile Origin = iota
	OriginArchive
	OriginImage
)

func (o Origin) String() string {
	switch o {
	case OriginArchive:
		return "archive"
	case OriginImage:
		return "image"
	}
	return "file"
}

// FileObject is a resolved file: a directory entry, an archive entry or an
// image entry
type FileObject struct {
	kind     types.Kind
	name     relpath.File
	userPath string
	path     string
	archive  string
	origin   Origin
	fs       types.FS
	open     func() (io.ReadCloser, error)
}

func newFileObject(origin Origin, userPath, path, archive string, name relpath.File, open func() (io.ReadCloser, error)) *FileObject {
	return &FileObject{
		kind:     types.KindOf(name.Basename()),
		name:     name,
		userPath: userPath,
		path:     path,
		archive:  archive,
		origin:   origin,
		open:     open,
	}
}

// ForPath creates a file object for a plain filesystem path that was not
// found through a container, such as an output file
func ForPath(fs types.FS, path string, name relpath.File) *FileObject {
	return &FileObject{
		kind:     types.KindOf(filepath.Base(path)),
		name:     name,
		userPath: path,
		path:     path,
		origin:   OriginFile,
		fs:       fs,
		open: func() (io.ReadCloser, error) {
			f, err := fs.Open(path)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot open file").WithPath(path)
			}
			return f, nil
		},
	}
}

// Kind returns the kind derived from the file name
func (f *FileObject) Kind() types.Kind { return f.kind }

// RelativeName returns the name relative to the container root
func (f *FileObject) RelativeName() relpath.File { return f.name }

// UserPath returns the search path entry, as given, that produced f
func (f *FileObject) UserPath() string { return f.userPath }

// Path returns the filesystem path. Entries of an archive are addressed
// below the archive path.
func (f *FileObject) Path() string { return f.path }

// ArchivePath returns the enclosing archive, empty for plain files
func (f *FileObject) ArchivePath() string { return f.archive }

// Origin tells where the bytes live
func (f *FileObject) Origin() Origin { return f.origin }

// SimpleName returns the last segment of the name
func (f *FileObject) SimpleName() string { return f.name.Basename() }

// BinaryName returns the dotted binary name of f
func (f *FileObject) BinaryName() string { return f.name.BinaryName() }

// IsNameCompatible reports whether f holds simpleName of the given kind
func (f *FileObject) IsNameCompatible(simpleName string, kind types.Kind) bool {
	return f.kind == kind && f.SimpleName() == simpleName+kind.Extension()
}

// Open opens f for reading
func (f *FileObject) Open() (io.ReadCloser, error) {
	return f.open()
}

// Create opens f for writing, creating parent directories. Only plain
// files can be written.
func (f *FileObject) Create() (io.WriteCloser, error) {
	if f.origin != OriginFile || f.fs == nil {
		return nil, errors.Newf(errors.ErrUnsupported, "cannot write to %s entry", f.origin).WithPath(f.path)
	}
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "cannot create output directory").WithPath(filepath.Dir(f.path))
	}
	w, err := f.fs.Create(f.path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileCreate, "cannot create file").WithPath(f.path)
	}
	return w, nil
}

// IsSameFile reports whether a and b are the same file
func IsSameFile(a, b *FileObject) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.origin == b.origin && a.path == b.path
}

func (f *FileObject) String() string {
	if f.archive != "" {
		rel := strings.TrimPrefix(f.path, f.archive)
		return f.archive + "(" + strings.TrimPrefix(filepath.ToSlash(rel), "/") + ")"
	}
	return f.path
}

// InferBinaryName finds the entry of paths that holds file and returns the
// dotted binary name of file relative to it
func InferBinaryName(paths []string, file string) (string, bool) {
	for _, root := range paths {
		rel, err := filepath.Rel(root, file)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		return relpath.NewFile(filepath.ToSlash(rel)).BinaryName(), true
	}
	return "", false
}
