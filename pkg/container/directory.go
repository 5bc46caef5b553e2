package container

import (
	"io"
	"os"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/fscache"
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// Directory is a plain directory, walked on every query
type Directory struct {
	root  string
	probe *fscache.Cache
	order types.Order
}

// NewDirectory creates a container rooted at the canonical path root
func NewDirectory(root string, probe *fscache.Cache, order types.Order) *Directory {
	return &Directory{root: root, probe: probe, order: order}
}

// List implements Container
func (d *Directory) List(userPath string, dir relpath.Directory, kinds types.KindSet, recurse bool) ([]*FileObject, error) {
	var out []*FileObject
	err := d.list(userPath, dir, kinds, recurse, &out)
	return out, err
}

func (d *Directory) list(userPath string, dir relpath.Directory, kinds types.KindSet, recurse bool, out *[]*FileObject) error {
	logger := logging.GetLogger("container.directory")
	full := dir.Resolve(d.root)

	entries, err := d.probe.FS().ReadDir(full)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Trace().Str("dir", full).Msg("Directory vanished, nothing to list")
			return nil
		}
		if info, serr := d.probe.FS().Stat(full); serr == nil && !info.IsDir() {
			return nil
		}
		return errors.Wrap(err, errors.ErrFileAccess, "cannot list directory").WithPath(full)
	}

	isDir := make(map[string]bool, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			if recurse && relpath.IsIdentifier(name) {
				isDir[name] = true
				names = append(names, name)
			}
			continue
		}
		if kinds.Has(types.KindOf(name)) {
			names = append(names, name)
		}
	}
	d.order.SortNames(names)

	for _, name := range names {
		if isDir[name] {
			if err := d.list(userPath, dir.Join(name), kinds, recurse, out); err != nil {
				return err
			}
			continue
		}
		*out = append(*out, d.fileObject(userPath, dir.File(name)))
	}
	return nil
}

// Find implements Container
func (d *Directory) Find(userPath string, name relpath.File) (*FileObject, error) {
	full := name.Resolve(d.root)
	info, err := d.probe.FS().Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot access file").WithPath(full)
	}
	if info.IsDir() || !d.probe.MatchesCase(d.root, name) {
		return nil, nil
	}
	return d.fileObject(userPath, name), nil
}

func (d *Directory) fileObject(userPath string, name relpath.File) *FileObject {
	full := name.Resolve(d.root)
	fs := d.probe.FS()
	fo := newFileObject(OriginFile, userPath, full, "", name, func() (io.ReadCloser, error) {
		f, err := fs.Open(full)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot open file").WithPath(full)
		}
		return f, nil
	})
	fo.fs = fs
	return fo
}

// MaintainsOwnIndex implements Container
func (d *Directory) MaintainsOwnIndex() bool { return false }

// IndexedDirectories implements Container
func (d *Directory) IndexedDirectories() []relpath.Directory { return nil }

// Path implements Container
func (d *Directory) Path() string { return d.root }

// Close implements Container
func (d *Directory) Close() error { return nil }
