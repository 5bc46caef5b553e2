package container

import (
	"io"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/pathfinder/pkg/archive"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// treeIndex maps every directory reachable below a set of archive roots to
// the roots that hold it. Sub-trees whose name is not an identifier are
// skipped, exactly as the directory walk skips them.
type treeIndex struct {
	archive *archive.Archive
	origin  Origin
	roots   []relpath.Directory
	dirs    map[string][]int
	sorted  []relpath.Directory
	order   types.Order
}

func newTreeIndex(a *archive.Archive, origin Origin, roots []relpath.Directory, order types.Order) *treeIndex {
	t := &treeIndex{
		archive: a,
		origin:  origin,
		roots:   roots,
		dirs:    make(map[string][]int),
		order:   order,
	}
	for i, root := range roots {
		if a.HasDirectory(root) {
			t.walk(i, root, relpath.Root)
		}
	}
	t.sorted = make([]relpath.Directory, 0, len(t.dirs))
	for d := range t.dirs {
		t.sorted = append(t.sorted, relpath.NewDirectory(d))
	}
	sort.Slice(t.sorted, func(i, j int) bool { return t.sorted[i].Path() < t.sorted[j].Path() })
	return t
}

func (t *treeIndex) walk(rootIdx int, root, rel relpath.Directory) {
	t.dirs[rel.Path()] = append(t.dirs[rel.Path()], rootIdx)
	for _, sub := range t.archive.Subdirectories(t.entryDir(root, rel)) {
		if relpath.IsIdentifier(sub) {
			t.walk(rootIdx, root, rel.Join(sub))
		}
	}
}

func (t *treeIndex) entryDir(root, rel relpath.Directory) relpath.Directory {
	return relpath.NewDirectory(root.Path() + rel.Path())
}

func (t *treeIndex) list(userPath string, dir relpath.Directory, kinds types.KindSet, recurse bool, out *[]*FileObject) {
	for _, idx := range t.dirs[dir.Path()] {
		t.listRoot(userPath, t.roots[idx], dir, kinds, recurse, out)
	}
}

func (t *treeIndex) listRoot(userPath string, root, dir relpath.Directory, kinds types.KindSet, recurse bool, out *[]*FileObject) {
	entry := t.entryDir(root, dir)
	isDir := map[string]bool{}
	var names []string
	for _, name := range t.archive.Files(entry) {
		if kinds.Has(types.KindOf(name)) {
			names = append(names, name)
		}
	}
	if recurse {
		for _, sub := range t.archive.Subdirectories(entry) {
			if relpath.IsIdentifier(sub) {
				isDir[sub] = true
				names = append(names, sub)
			}
		}
	}
	t.order.SortNames(names)

	for _, name := range names {
		if isDir[name] {
			t.listRoot(userPath, root, dir.Join(name), kinds, recurse, out)
			continue
		}
		*out = append(*out, t.fileObject(userPath, root, dir.File(name)))
	}
}

func (t *treeIndex) find(userPath string, name relpath.File) *FileObject {
	for _, idx := range t.dirs[name.Dirname().Path()] {
		root := t.roots[idx]
		if t.archive.Exists(relpath.NewFile(root.Path() + name.Path())) {
			return t.fileObject(userPath, root, name)
		}
	}
	return nil
}

func (t *treeIndex) fileObject(userPath string, root relpath.Directory, name relpath.File) *FileObject {
	entry := relpath.NewFile(root.Path() + name.Path())
	a := t.archive
	full := filepath.Join(a.Path(), filepath.FromSlash(entry.Path()))
	return newFileObject(t.origin, userPath, full, a.Path(), name, func() (io.ReadCloser, error) {
		return a.OpenEntry(entry)
	})
}

func (t *treeIndex) directories() []relpath.Directory {
	return t.sorted
}

// Archive is an archive, optionally viewed from a sub-directory
type Archive struct {
	path    string
	subRoot relpath.Directory
	archive *archive.Archive
	index   *treeIndex
}

// NewArchive indexes a below subRoot. path is the identity of the
// container: the archive path, joined with subRoot when there is one.
func NewArchive(path string, a *archive.Archive, subRoot relpath.Directory, order types.Order) *Archive {
	return &Archive{
		path:    path,
		subRoot: subRoot,
		archive: a,
		index:   newTreeIndex(a, OriginArchive, []relpath.Directory{subRoot}, order),
	}
}

// List implements Container
func (c *Archive) List(userPath string, dir relpath.Directory, kinds types.KindSet, recurse bool) ([]*FileObject, error) {
	var out []*FileObject
	c.index.list(userPath, dir, kinds, recurse, &out)
	return out, nil
}

// Find implements Container
func (c *Archive) Find(userPath string, name relpath.File) (*FileObject, error) {
	return c.index.find(userPath, name), nil
}

// MaintainsOwnIndex implements Container
func (c *Archive) MaintainsOwnIndex() bool { return true }

// IndexedDirectories implements Container
func (c *Archive) IndexedDirectories() []relpath.Directory { return c.index.directories() }

// Path implements Container
func (c *Archive) Path() string { return c.path }

// ArchivePath returns the path of the archive file itself
func (c *Archive) ArchivePath() string { return c.archive.Path() }

// Close implements Container. The archive is shared through the cache,
// which owns it.
func (c *Archive) Close() error { return nil }
