// Package fscache memoizes canonicalization and attribute queries. Every
// path the resolution engine compares is first reduced to its canonical
// (absolute, symlink free) spelling here, so two spellings of one file are
// recognised as the same entry.
package fscache

import (
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

type attrs struct {
	exists  bool
	dir     bool
	regular bool
}

// Cache wraps a filesystem probe with memoized answers
type Cache struct {
	fs            types.FS
	caseSensitive bool

	mu    sync.RWMutex
	canon map[string]string
	attrs map[string]attrs
}

// DefaultCaseSensitive reports whether the host filesystem is normally case
// sensitive.
func DefaultCaseSensitive() bool {
	return runtime.GOOS != "windows" && runtime.GOOS != "darwin"
}

// New creates a cache over fs
func New(fs types.FS, caseSensitive bool) *Cache {
	return &Cache{
		fs:            fs,
		caseSensitive: caseSensitive,
		canon:         make(map[string]string),
		attrs:         make(map[string]attrs),
	}
}

// FS returns the underlying probe
func (c *Cache) FS() types.FS { return c.fs }

// CaseSensitive reports how names are compared
func (c *Cache) CaseSensitive() bool { return c.caseSensitive }

// Canonical returns the canonical spelling of p. Paths that do not exist
// (or cannot be resolved) fall back to their cleaned absolute form.
func (c *Cache) Canonical(p string) string {
	c.mu.RLock()
	if v, ok := c.canon[p]; ok {
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	v := c.resolve(p)

	c.mu.Lock()
	c.canon[p] = v
	c.mu.Unlock()
	return v
}

func (c *Cache) resolve(p string) string {
	logger := logging.GetLogger("fscache")
	abs, err := c.fs.Abs(p)
	if err != nil {
		abs = filepath.Clean(p)
	}
	resolved, err := c.fs.EvalSymlinks(abs)
	if err != nil && !c.caseSensitive {
		resolved, err = c.fs.EvalSymlinks(c.realCase(abs))
	}
	if err != nil {
		logger.Trace().Str("path", p).Err(err).Msg("Cannot resolve path, using absolute form")
		return abs
	}
	if !c.caseSensitive {
		resolved = c.realCase(resolved)
	}
	logger.Trace().Str("path", p).Str("canonical", resolved).Msg("Canonicalized path")
	return resolved
}

// realCase rewrites every segment of an existing absolute path with the
// spelling found on disk.
func (c *Cache) realCase(p string) string {
	vol := filepath.VolumeName(p)
	rest := strings.TrimPrefix(p[len(vol):], string(filepath.Separator))
	cur := vol + string(filepath.Separator)
	if rest == "" {
		return cur
	}
	for _, seg := range strings.Split(rest, string(filepath.Separator)) {
		entries, err := c.fs.ReadDir(cur)
		if err == nil {
			for _, e := range entries {
				if e.Name() != seg && strings.EqualFold(e.Name(), seg) {
					seg = e.Name()
					break
				}
			}
		}
		cur = filepath.Join(cur, seg)
	}
	return cur
}

func (c *Cache) stat(p string) attrs {
	key := c.Canonical(p)

	c.mu.RLock()
	if a, ok := c.attrs[key]; ok {
		c.mu.RUnlock()
		return a
	}
	c.mu.RUnlock()

	var a attrs
	if info, err := c.fs.Stat(key); err == nil {
		a = attrs{exists: true, dir: info.IsDir(), regular: info.Mode().IsRegular()}
	}

	c.mu.Lock()
	c.attrs[key] = a
	c.mu.Unlock()
	return a
}

// Exists reports whether p exists
func (c *Cache) Exists(p string) bool { return c.stat(p).exists }

// IsDirectory reports whether p is a directory
func (c *Cache) IsDirectory(p string) bool { return c.stat(p).dir }

// IsRegularFile reports whether p is a regular file
func (c *Cache) IsRegularFile(p string) bool { return c.stat(p).regular }

// IsSameFile reports whether a and b name the same file
func (c *Cache) IsSameFile(a, b string) bool {
	return c.Canonical(a) == c.Canonical(b)
}

// MatchesCase reports whether the file rel below root exists on disk with
// exactly the requested spelling. Case sensitive filesystems already
// guarantee that, so only case preserving ones pay for the directory reads.
func (c *Cache) MatchesCase(root string, rel relpath.File) bool {
	if c.caseSensitive {
		return true
	}
	cur := root
	segs := strings.Split(rel.Path(), relpath.Separator)
	for _, seg := range segs {
		entries, err := c.fs.ReadDir(cur)
		if err != nil {
			return false
		}
		found := false
		for _, e := range entries {
			if e.Name() == seg {
				found = true
				break
			}
		}
		if !found {
			return false
		}
		cur = filepath.Join(cur, seg)
	}
	return true
}

// Clear drops every memoized answer
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.canon = make(map[string]string)
	c.attrs = make(map[string]attrs)
}
