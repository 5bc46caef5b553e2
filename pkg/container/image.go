package container

import (
	"sync"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/image"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// Image is the packaged module repository, either whole (every module's
// packages merged, in module name order) or viewed as a single module.
// The shared image handle is opened on first query.
type Image struct {
	path   string
	handle *image.Handle
	module string
	order  types.Order

	mu    sync.Mutex
	index *treeIndex
	err   error
}

// NewImage creates a container over the image behind handle. An empty
// module selects the whole image.
func NewImage(path string, handle *image.Handle, module string, order types.Order) *Image {
	return &Image{path: path, handle: handle, module: module, order: order}
}

// Module returns the module viewed by the container, empty for the whole image
func (c *Image) Module() string { return c.module }

func (c *Image) load() (*treeIndex, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index != nil || c.err != nil {
		return c.index, c.err
	}
	img, err := c.handle.Get()
	if err != nil {
		c.err = err
		return nil, err
	}

	var roots []relpath.Directory
	if c.module != "" {
		if !img.HasModule(c.module) {
			c.err = errors.Newf(errors.ErrNotFound, "module %s not in image", c.module).WithPath(c.path)
			return nil, c.err
		}
		roots = []relpath.Directory{relpath.NewDirectory(c.module)}
	} else {
		for _, m := range img.Modules() {
			roots = append(roots, relpath.NewDirectory(m))
		}
	}
	c.index = newTreeIndex(img.Archive(), OriginImage, roots, c.order)
	return c.index, nil
}

// List implements Container
func (c *Image) List(userPath string, dir relpath.Directory, kinds types.KindSet, recurse bool) ([]*FileObject, error) {
	idx, err := c.load()
	if err != nil {
		return nil, err
	}
	var out []*FileObject
	idx.list(userPath, dir, kinds, recurse, &out)
	return out, nil
}

// Find implements Container
func (c *Image) Find(userPath string, name relpath.File) (*FileObject, error) {
	idx, err := c.load()
	if err != nil {
		return nil, err
	}
	return idx.find(userPath, name), nil
}

// MaintainsOwnIndex implements Container. An image that cannot be opened
// behaves like a non-indexing container so its error surfaces on every
// directory queried.
func (c *Image) MaintainsOwnIndex() bool {
	_, err := c.load()
	return err == nil
}

// IndexedDirectories implements Container
func (c *Image) IndexedDirectories() []relpath.Directory {
	idx, err := c.load()
	if err != nil {
		return nil
	}
	return idx.directories()
}

// Path implements Container
func (c *Image) Path() string { return c.path }

// Close implements Container. The handle belongs to the cache.
func (c *Image) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index, c.err = nil, nil
	return nil
}
