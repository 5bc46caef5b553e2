package testutil

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/pathfinder/pkg/types"
)

const maxLinkDepth = 40

// MemoryFS implements types.FS with in-memory storage. Unlike afero's
// MemMapFs it understands symbolic links, which the canonicalization tests
// depend on, and it can inject errors for chosen paths.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode
	cwd   string

	// Error injection
	errorPaths map[string]error

	// Statistics
	readCount int
	statCount int
}

// fileNode represents a file, directory or link in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
	children map[string]*fileNode
}

var _ types.FS = (*MemoryFS)(nil)

// NewMemoryFS creates a new in-memory filesystem with "/" as working directory
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:     "/",
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}

	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		cwd:        "/",
		errorPaths: make(map[string]error),
	}
}

func (m *MemoryFS) normalizePath(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.cwd, path)
	}
	return filepath.Clean(path)
}

// resolvePath follows links in every segment of path. When followLast is
// false a link in the final segment is left alone.
func (m *MemoryFS) resolvePath(path string, followLast bool) (string, error) {
	path = m.normalizePath(path)
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	current := "/"
	hops := 0
	for i := 0; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		next := filepath.Join(current, parts[i])
		if err, ok := m.errorPaths[next]; ok {
			return "", err
		}
		node, ok := m.files[next]
		if !ok {
			return "", &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
		}
		if node.isLink && (followLast || i < len(parts)-1) {
			hops++
			if hops > maxLinkDepth {
				return "", &fs.PathError{Op: "stat", Path: path, Err: errors.New("too many links")}
			}
			target := node.linkDest
			if !filepath.IsAbs(target) {
				target = filepath.Join(current, target)
			}
			rest := append(strings.Split(strings.TrimPrefix(filepath.Clean(target), "/"), "/"), parts[i+1:]...)
			parts = rest
			current = "/"
			i = -1
			continue
		}
		current = next
	}
	return current, nil
}

func (m *MemoryFS) getNode(path string, follow bool) (*fileNode, string, error) {
	resolved, err := m.resolvePath(path, follow)
	if err != nil {
		return nil, "", err
	}
	if err, ok := m.errorPaths[resolved]; ok {
		return nil, "", err
	}
	node, ok := m.files[resolved]
	if !ok {
		return nil, "", &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return node, resolved, nil
}

// Open opens a file for reading
func (m *MemoryFS) Open(name string) (types.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readCount++

	node, _, err := m.getNode(name, true)
	if err != nil {
		return nil, err
	}
	return &memoryFile{
		node:   node,
		reader: bytes.NewReader(node.content),
		path:   name,
	}, nil
}

// Create opens a file for writing; content becomes visible on Close
func (m *MemoryFS) Create(name string) (io.WriteCloser, error) {
	path := m.normalizePath(name)
	m.mu.RLock()
	parent, _, err := m.getNode(filepath.Dir(path), true)
	m.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if !parent.isDir {
		return nil, &fs.PathError{Op: "create", Path: name, Err: errors.New("not a directory")}
	}
	return &memoryWriter{fs: m, path: path}, nil
}

// ReadFile reads the entire file content
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readCount++

	node, _, err := m.getNode(name, true)
	if err != nil {
		return nil, err
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}

	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// WriteFile writes data to a file, creating parents as needed
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalizePath(name)
	if err, ok := m.errorPaths[path]; ok {
		return err
	}
	if err := m.mkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	parent := m.files[filepath.Dir(path)]

	node := &fileNode{
		name:    filepath.Base(path),
		mode:    perm,
		modTime: time.Now(),
		content: make([]byte, len(data)),
	}
	copy(node.content, data)

	parent.children[node.name] = node
	m.files[path] = node
	return nil
}

// Stat returns file info, following links
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statCount++

	node, _, err := m.getNode(name, true)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Lstat returns file info without following a final link
func (m *MemoryFS) Lstat(name string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statCount++

	node, _, err := m.getNode(name, false)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// EvalSymlinks returns path with every link resolved
func (m *MemoryFS) EvalSymlinks(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, resolved, err := m.getNode(path, true)
	return resolved, err
}

// Abs resolves path against the working directory
func (m *MemoryFS) Abs(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.normalizePath(path), nil
}

// RemoveAll removes a file or directory recursively
func (m *MemoryFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = m.normalizePath(path)

	toRemove := []string{}
	for p := range m.files {
		if strings.HasPrefix(p, path+"/") || p == path {
			toRemove = append(toRemove, p)
		}
	}

	for _, p := range toRemove {
		delete(m.files, p)
		if dir := filepath.Dir(p); dir != p {
			if parent, ok := m.files[dir]; ok && parent.isDir {
				delete(parent.children, filepath.Base(p))
			}
		}
	}
	return nil
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mkdirAll(path, perm)
}

func (m *MemoryFS) mkdirAll(path string, perm os.FileMode) error {
	path = m.normalizePath(path)

	if node, ok := m.files[path]; ok {
		if !node.isDir {
			return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("file exists")}
		}
		return nil
	}

	current := "/"
	currentNode := m.files["/"]
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		next := filepath.Join(current, part)

		if child, exists := currentNode.children[part]; exists {
			if !child.isDir {
				return &fs.PathError{Op: "mkdir", Path: next, Err: errors.New("not a directory")}
			}
			currentNode = child
			current = next
			continue
		}

		newDir := &fileNode{
			name:     part,
			mode:     perm | os.ModeDir,
			modTime:  time.Now(),
			isDir:    true,
			children: make(map[string]*fileNode),
		}
		currentNode.children[part] = newDir
		m.files[next] = newDir

		currentNode = newDir
		current = next
	}
	return nil
}

// Symlink creates a symbolic link at link pointing to target
func (m *MemoryFS) Symlink(target, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	linkPath := m.normalizePath(link)
	if _, ok := m.files[linkPath]; ok {
		return &fs.PathError{Op: "symlink", Path: link, Err: os.ErrExist}
	}
	if err := m.mkdirAll(filepath.Dir(linkPath), 0755); err != nil {
		return err
	}

	node := &fileNode{
		name:     filepath.Base(linkPath),
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: target,
	}
	m.files[filepath.Dir(linkPath)].children[node.name] = node
	m.files[linkPath] = node
	return nil
}

// ReadDir reads a directory and returns its entries sorted by name, as
// os.ReadDir does
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readCount++

	node, _, err := m.getNode(name, true)
	if err != nil {
		return nil, err
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	entries := make([]fs.DirEntry, 0, len(node.children))
	for childName, child := range node.children {
		info := os.FileInfo(&fileInfo{node: child, name: childName})
		if child.isLink {
			if target, _, err := m.getNode(filepath.Join(m.normalizePath(name), childName), true); err == nil {
				info = &fileInfo{node: target, name: childName}
			}
		}
		entries = append(entries, &dirEntry{name: childName, info: info})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Chdir changes the working directory used for relative paths
func (m *MemoryFS) Chdir(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	node, resolved, err := m.getNode(dir, true)
	if err != nil {
		return err
	}
	if !node.isDir {
		return &fs.PathError{Op: "chdir", Path: dir, Err: errors.New("not a directory")}
	}
	m.cwd = resolved
	return nil
}

// WithError configures the filesystem to return an error for a specific path
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorPaths[m.normalizePath(path)] = err
	return m
}

// Stats returns filesystem operation statistics
func (m *MemoryFS) Stats() (reads, stats int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readCount, m.statCount
}

// memoryFile implements types.File
type memoryFile struct {
	node   *fileNode
	reader *bytes.Reader
	path   string
}

func (f *memoryFile) Stat() (os.FileInfo, error) {
	return &fileInfo{node: f.node, name: f.node.name}, nil
}

func (f *memoryFile) Read(b []byte) (int, error) {
	if f.node.isDir {
		return 0, &fs.PathError{Op: "read", Path: f.path, Err: errors.New("is a directory")}
	}
	return f.reader.Read(b)
}

func (f *memoryFile) ReadAt(b []byte, off int64) (int, error) {
	if f.node.isDir {
		return 0, &fs.PathError{Op: "read", Path: f.path, Err: errors.New("is a directory")}
	}
	return f.reader.ReadAt(b, off)
}

func (f *memoryFile) Close() error {
	return nil
}

// memoryWriter buffers writes until Close
type memoryWriter struct {
	fs   *MemoryFS
	path string
	buf  bytes.Buffer
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	return w.fs.WriteFile(w.path, w.buf.Bytes(), 0644)
}

// fileInfo implements os.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return fi.node }

// dirEntry implements fs.DirEntry
type dirEntry struct {
	name string
	info os.FileInfo
}

func (de *dirEntry) Name() string               { return de.name }
func (de *dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *dirEntry) Type() os.FileMode          { return de.info.Mode().Type() }
func (de *dirEntry) Info() (os.FileInfo, error) { return de.info, nil }
