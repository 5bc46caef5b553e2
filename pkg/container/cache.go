package container

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/pathfinder/pkg/archive"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/fscache"
	"github.com/arthur-debert/pathfinder/pkg/image"
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// Options configures a Cache
type Options struct {
	Probe *fscache.Cache
	// Opener opens archives; nil means there is no archive support
	Opener archive.Opener
	Order  types.Order
	// Images lists the paths of packaged module images
	Images []string
}

// Cache resolves paths to containers. Two spellings of one canonical path
// always yield the same container instance. The cache owns every archive
// and image it opens and releases them on Close.
type Cache struct {
	probe  *fscache.Cache
	opener archive.Opener
	order  types.Order

	mu       sync.Mutex
	byPath   map[string]Container
	archives map[string]*archive.Archive
	images   map[string]*image.Handle
}

// NewCache creates an empty cache
func NewCache(opts Options) *Cache {
	order := opts.Order
	if order == "" {
		order = types.OrderName
	}
	c := &Cache{
		probe:    opts.Probe,
		opener:   opts.Opener,
		order:    order,
		byPath:   make(map[string]Container),
		archives: make(map[string]*archive.Archive),
		images:   make(map[string]*image.Handle),
	}
	for _, p := range opts.Images {
		c.RegisterImage(p)
	}
	return c
}

// Probe returns the canonicalization cache
func (c *Cache) Probe() *fscache.Cache { return c.probe }

// ArchiveSupport reports whether archives can be opened at all
func (c *Cache) ArchiveSupport() bool { return c.opener != nil }

// RegisterImage marks path as a packaged module image
func (c *Cache) RegisterImage(path string) *image.Handle {
	canonical := c.probe.Canonical(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.imageHandleLocked(canonical)
}

func (c *Cache) imageHandleLocked(canonical string) *image.Handle {
	if h, ok := c.images[canonical]; ok {
		return h
	}
	h := image.NewHandle(c.opener, canonical)
	c.images[canonical] = h
	return h
}

// Image returns the opened image at path, registering it if needed
func (c *Cache) Image(path string) (*image.Image, error) {
	return c.RegisterImage(path).Get()
}

// Get returns the container for p. When the container could not be
// opened the returned container is a *Broken carrying the same error.
func (c *Cache) Get(p string) (Container, error) {
	logger := logging.GetLogger("container.cache")
	canonical := c.probe.Canonical(p)

	c.mu.Lock()
	defer c.mu.Unlock()

	if ct, ok := c.byPath[canonical]; ok {
		logger.Trace().Str("path", p).Str("canonical", canonical).Msg("Container cache hit")
		if b, isBroken := ct.(*Broken); isBroken {
			return b, b.Err()
		}
		return ct, nil
	}

	ct := c.create(canonical)
	c.byPath[canonical] = ct
	logger.Debug().Str("path", p).Str("canonical", canonical).Str("type", describe(ct)).Msg("Created container")
	if b, isBroken := ct.(*Broken); isBroken {
		return b, b.Err()
	}
	return ct, nil
}

func (c *Cache) create(canonical string) Container {
	switch {
	case c.probe.IsDirectory(canonical):
		return NewDirectory(canonical, c.probe, c.order)
	case c.probe.IsRegularFile(canonical):
		if h, ok := c.images[canonical]; ok {
			return NewImage(canonical, h, "", c.order)
		}
		a, err := c.openArchiveLocked(canonical)
		if err != nil {
			return NewBroken(canonical, err)
		}
		return NewArchive(canonical, a, relpath.Root, c.order)
	}
	return c.createInside(canonical)
}

// createInside handles paths that do not exist on disk but may name a
// directory inside an archive or image, such as lib/m.jmod/classes.
func (c *Cache) createInside(canonical string) Container {
	for dir := filepath.Dir(canonical); ; dir = filepath.Dir(dir) {
		if c.probe.IsRegularFile(dir) {
			rel, err := filepath.Rel(dir, canonical)
			if err != nil {
				return NewMissing(canonical)
			}
			rel = filepath.ToSlash(rel)
			archivePath := c.probe.Canonical(dir)
			if h, ok := c.images[archivePath]; ok {
				if strings.Contains(rel, "/") {
					return NewMissing(canonical)
				}
				return NewImage(canonical, h, rel, c.order)
			}
			a, err := c.openArchiveLocked(archivePath)
			if err != nil {
				return NewBroken(canonical, err)
			}
			sub := relpath.NewDirectory(rel)
			if !a.HasDirectory(sub) {
				return NewMissing(canonical)
			}
			return NewArchive(canonical, a, sub, c.order)
		}
		if c.probe.Exists(dir) || dir == filepath.Dir(dir) {
			return NewMissing(canonical)
		}
	}
}

// OpenArchive returns the shared archive at path. The cache owns it;
// callers must not close it.
func (c *Cache) OpenArchive(path string) (*archive.Archive, error) {
	canonical := c.probe.Canonical(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.openArchiveLocked(canonical)
}

func (c *Cache) openArchiveLocked(canonical string) (*archive.Archive, error) {
	if a, ok := c.archives[canonical]; ok {
		return a, nil
	}
	if c.opener == nil {
		return nil, errors.New(errors.ErrNoArchiveSupport, "no archive support available").WithPath(canonical)
	}
	a, err := c.opener.Open(canonical)
	if err != nil {
		return nil, err
	}
	c.archives[canonical] = a
	return a, nil
}

// Len returns the number of cached containers
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byPath)
}

// Close releases every archive and image and empties the cache. The cache
// stays usable; later lookups reopen what they need.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}
	for _, ct := range c.byPath {
		keep(ct.Close())
	}
	for _, a := range c.archives {
		keep(a.Close())
	}
	for _, h := range c.images {
		keep(h.Close())
	}
	logger := logging.GetLogger("container.cache")
	logger.Debug().
		Int("containers", len(c.byPath)).
		Int("archives", len(c.archives)).
		Msg("Closed container cache")

	c.byPath = make(map[string]Container)
	c.archives = make(map[string]*archive.Archive)
	return first
}

func describe(ct Container) string {
	switch ct.(type) {
	case *Directory:
		return "directory"
	case *Archive:
		return "archive"
	case *Image:
		return "image"
	case *Broken:
		return "broken"
	}
	return "missing"
}
