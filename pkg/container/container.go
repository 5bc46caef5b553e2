// Package container unifies the backing stores of a search path entry:
// plain directories (walked on demand), archives and the packaged module
// image (both indexed once). Every variant answers the same two questions,
// list the files of a directory and find one file by relative name.
package container

import (
	"github.com/arthur-debert/pathfinder/pkg/relpath"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// Container is a queryable backing store for one path entry
type Container interface {
	// List returns the files of dir whose kind is in kinds. With recurse
	// set it also descends into sub-directories with identifier names.
	List(userPath string, dir relpath.Directory, kinds types.KindSet, recurse bool) ([]*FileObject, error)

	// Find returns the file with the given relative name, or nil when
	// the container does not hold it.
	Find(userPath string, name relpath.File) (*FileObject, error)

	// MaintainsOwnIndex reports whether IndexedDirectories is meaningful
	MaintainsOwnIndex() bool

	// IndexedDirectories returns every directory the container holds.
	// Empty unless the container maintains its own index.
	IndexedDirectories() []relpath.Directory

	// Path returns the canonical path the container was resolved from
	Path() string

	// Close releases resources held by the container
	Close() error
}

// Missing stands in for a path entry that does not exist
type Missing struct {
	path string
}

// NewMissing creates a container for a missing path
func NewMissing(path string) *Missing {
	return &Missing{path: path}
}

func (m *Missing) List(string, relpath.Directory, types.KindSet, bool) ([]*FileObject, error) {
	return nil, nil
}

func (m *Missing) Find(string, relpath.File) (*FileObject, error) {
	return nil, nil
}

func (m *Missing) MaintainsOwnIndex() bool {
	return false
}

func (m *Missing) IndexedDirectories() []relpath.Directory {
	return nil
}

func (m *Missing) Path() string {
	return m.path
}

func (m *Missing) Close() error {
	return nil
}

// Broken stands in for a path entry that exists but could not be opened.
// Every query reports the original error.
type Broken struct {
	path string
	err  error
}

// NewBroken creates a container that fails every query with err
func NewBroken(path string, err error) *Broken {
	return &Broken{path: path, err: err}
}

func (b *Broken) List(string, relpath.Directory, types.KindSet, bool) ([]*FileObject, error) {
	return nil, b.err
}

func (b *Broken) Find(string, relpath.File) (*FileObject, error) {
	return nil, b.err
}

// Err returns the error the container was created with
func (b *Broken) Err() error {
	return b.err
}

func (b *Broken) MaintainsOwnIndex() bool {
	return false
}

func (b *Broken) IndexedDirectories() []relpath.Directory {
	return nil
}

func (b *Broken) Path() string {
	return b.path
}

func (b *Broken) Close() error {
	return nil
}
