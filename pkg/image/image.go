// Package image reads the packaged module repository of a platform: one
// archive whose top level directories are module names.
package image

import (
	"path/filepath"
	"sync"

	"github.com/arthur-debert/pathfinder/pkg/archive"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
)

// DefaultRelativePath is where the image lives below a system home
const DefaultRelativePath = "lib/modules"

// PathFor returns the image path below home
func PathFor(home, rel string) string {
	if rel == "" {
		rel = DefaultRelativePath
	}
	return filepath.Join(home, filepath.FromSlash(rel))
}

// Image is an opened module repository
type Image struct {
	archive *archive.Archive
}

// Open opens the image at path
func Open(opener archive.Opener, path string) (*Image, error) {
	if opener == nil {
		return nil, errors.New(errors.ErrNoArchiveSupport, "no archive support to read the module image").WithPath(path)
	}
	a, err := opener.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrImageInvalid, "cannot open module image").WithPath(path)
	}
	return &Image{archive: a}, nil
}

// Path returns the image file path
func (i *Image) Path() string { return i.archive.Path() }

// Archive exposes the underlying archive
func (i *Image) Archive() *archive.Archive { return i.archive }

// Modules returns the module names in the image, sorted
func (i *Image) Modules() []string {
	return i.archive.Subdirectories(relpath.Root)
}

// HasModule reports whether the image contains name
func (i *Image) HasModule(name string) bool {
	return i.archive.HasDirectory(relpath.NewDirectory(name))
}

// ModulePath returns the path used to address a module inside the image
func (i *Image) ModulePath(name string) string {
	return filepath.Join(i.Path(), name)
}

// Close releases the image
func (i *Image) Close() error {
	return i.archive.Close()
}

// Handle is the shared, lazily opened image of one platform. The image is
// opened at most once until Close, which releases it and lets a later Get
// open it again.
type Handle struct {
	opener archive.Opener
	path   string

	mu     sync.Mutex
	opened bool
	img    *Image
	err    error
}

// NewHandle creates an unopened handle for the image at path
func NewHandle(opener archive.Opener, path string) *Handle {
	return &Handle{opener: opener, path: path}
}

// Path returns the image path
func (h *Handle) Path() string { return h.path }

// Get opens the image on first use and returns it
func (h *Handle) Get() (*Image, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.opened {
		logger := logging.GetLogger("image")
		logger.Debug().Str("path", h.path).Msg("Opening module image")
		h.img, h.err = Open(h.opener, h.path)
		h.opened = true
	}
	return h.img, h.err
}

// Opened reports whether the image is currently open
func (h *Handle) Opened() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.opened && h.img != nil
}

// Close releases the image. Closing an unopened handle is a no-op.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.opened {
		return nil
	}
	img := h.img
	h.img, h.err, h.opened = nil, nil, false
	if img != nil {
		return img.Close()
	}
	return nil
}
