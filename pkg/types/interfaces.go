package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for resolution. Everything that
// touches disk goes through it so tests can swap in an in-memory backend.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Open(name string) (File, error)
	Create(name string) (io.WriteCloser, error)

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Path resolution
	EvalSymlinks(path string) (string, error)
	Abs(path string) (string, error)

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// File is an open, randomly readable file. Archives need ReaderAt plus the
// size reported by Stat.
type File interface {
	io.Reader
	io.ReaderAt
	io.Closer
	Stat() (fs.FileInfo, error)
}
