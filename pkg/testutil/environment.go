// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments holding directory trees, archives
// and module images

package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/pathfinder/pkg/filesystem"
	"github.com/arthur-debert/pathfinder/pkg/manifest"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a filesystem and a root directory to build
// fixtures under
type TestEnvironment struct {
	Root string
	FS   types.FS
	Type EnvType

	memory *MemoryFS
	t      *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.memory = NewMemoryFS()
		env.FS = env.memory
		env.Root = "/work"
		if err := env.memory.MkdirAll(env.Root, 0755); err != nil {
			t.Fatalf("Failed to create root: %v", err)
		}
		if err := env.memory.Chdir(env.Root); err != nil {
			t.Fatalf("Failed to enter root: %v", err)
		}
	case EnvIsolated:
		root, err := filepath.EvalSymlinks(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to resolve temp dir: %v", err)
		}
		env.Root = root
		env.FS = filesystem.NewOS()
	}
	return env
}

// Memory returns the in-memory filesystem, nil for isolated environments
func (e *TestEnvironment) Memory() *MemoryFS {
	return e.memory
}

// Path joins slash separated rel onto the environment root
func (e *TestEnvironment) Path(rel string) string {
	if rel == "" {
		return e.Root
	}
	return filepath.Join(e.Root, filepath.FromSlash(rel))
}

// Mkdir creates directories below the root
func (e *TestEnvironment) Mkdir(rels ...string) {
	e.t.Helper()
	for _, rel := range rels {
		if err := e.FS.MkdirAll(e.Path(rel), 0755); err != nil {
			e.t.Fatalf("Failed to create %s: %v", rel, err)
		}
	}
}

// WriteFile writes a file below the root, creating parents
func (e *TestEnvironment) WriteFile(rel string, content []byte) string {
	e.t.Helper()
	p := e.Path(rel)
	if err := e.FS.MkdirAll(filepath.Dir(p), 0755); err != nil {
		e.t.Fatalf("Failed to create parent of %s: %v", rel, err)
	}
	if err := e.FS.WriteFile(p, content, 0644); err != nil {
		e.t.Fatalf("Failed to write %s: %v", rel, err)
	}
	return p
}

// WriteTree writes files below dir. Names ending in "/" become directories.
func (e *TestEnvironment) WriteTree(dir string, files map[string]string) string {
	e.t.Helper()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rel := strings.TrimSuffix(dir, "/") + "/" + name
		if strings.HasSuffix(name, "/") {
			e.Mkdir(rel)
			continue
		}
		e.WriteFile(rel, []byte(files[name]))
	}
	return e.Path(dir)
}

// WriteJar writes a class archive. A manifest is added when attrs are given.
func (e *TestEnvironment) WriteJar(rel string, files map[string]string, attrs ...manifest.Attribute) string {
	e.t.Helper()
	entries := copyFiles(files)
	if len(attrs) > 0 {
		entries[manifest.Path] = string(manifest.Marshal(attrs...))
	}
	return e.WriteFile(rel, BuildZip(e.t, entries))
}

// WriteModuleJar writes a modular archive carrying a descriptor for name
func (e *TestEnvironment) WriteModuleJar(rel, name string, files map[string]string) string {
	e.t.Helper()
	entries := copyFiles(files)
	entries[DescriptorFileName] = Descriptor(e.t, name)
	return e.WriteFile(rel, BuildZip(e.t, entries))
}

// WriteModuleFile writes a packaged module file: the magic header followed
// by a zip whose classes/ directory holds the descriptor and content.
func (e *TestEnvironment) WriteModuleFile(rel, name string, files map[string]string) string {
	e.t.Helper()
	entries := map[string]string{"classes/" + DescriptorFileName: Descriptor(e.t, name)}
	for k, v := range files {
		entries["classes/"+k] = v
	}
	data := append([]byte{'J', 'M', 0x01, 0x00}, BuildZip(e.t, entries)...)
	return e.WriteFile(rel, data)
}

// WriteExplodedModule writes a module directory with a descriptor
func (e *TestEnvironment) WriteExplodedModule(dir, name string, files map[string]string) string {
	e.t.Helper()
	entries := copyFiles(files)
	entries[DescriptorFileName] = Descriptor(e.t, name)
	return e.WriteTree(dir, entries)
}

// WriteImage writes a packaged module repository below home, returning the
// image path. modules maps module name to its files.
func (e *TestEnvironment) WriteImage(home string, modules map[string]map[string]string) string {
	e.t.Helper()
	entries := map[string]string{}
	for mod, files := range modules {
		entries[mod+"/"] = ""
		for k, v := range files {
			entries[mod+"/"+k] = v
		}
	}
	return e.WriteFile(strings.TrimSuffix(home, "/")+"/lib/modules", BuildZip(e.t, entries))
}

// Symlink creates a link at rel pointing to the absolute path target
func (e *TestEnvironment) Symlink(target, rel string) string {
	e.t.Helper()
	link := e.Path(rel)
	var err error
	if e.memory != nil {
		err = e.memory.Symlink(target, link)
	} else {
		if err = os.MkdirAll(filepath.Dir(link), 0755); err == nil {
			err = os.Symlink(target, link)
		}
	}
	if err != nil {
		e.t.Fatalf("Failed to link %s -> %s: %v", rel, target, err)
	}
	return link
}

// Remove deletes a file or tree below the root
func (e *TestEnvironment) Remove(rel string) {
	e.t.Helper()
	var err error
	if e.memory != nil {
		err = e.memory.RemoveAll(e.Path(rel))
	} else {
		err = os.RemoveAll(e.Path(rel))
	}
	if err != nil {
		e.t.Fatalf("Failed to remove %s: %v", rel, err)
	}
}

func copyFiles(files map[string]string) map[string]string {
	out := make(map[string]string, len(files)+1)
	for k, v := range files {
		out[k] = v
	}
	return out
}
