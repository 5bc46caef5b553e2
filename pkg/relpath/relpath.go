// Package relpath models platform independent relative names used as index
// keys. A Directory is either the root ("") or a slash separated name that
// always ends in "/"; a File never does. Keeping the trailing separator on
// directories turns containment into a plain prefix test.
package relpath

import (
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/arthur-debert/pathfinder/pkg/types"
)

// Separator is the separator used in every relative name
const Separator = "/"

// Directory is a relative directory name
type Directory struct {
	path string
}

// Root is the empty relative directory
var Root = Directory{}

// NewDirectory normalises p into a relative directory
func NewDirectory(p string) Directory {
	p = strings.ReplaceAll(p, "\\", Separator)
	p = strings.Trim(p, Separator)
	if p == "" || p == "." {
		return Root
	}
	return Directory{path: path.Clean(p) + Separator}
}

// ForPackage maps a dotted package name onto a relative directory
func ForPackage(pkg string) Directory {
	if pkg == "" {
		return Root
	}
	return NewDirectory(strings.ReplaceAll(pkg, ".", Separator))
}

// Path returns the relative name, with its trailing separator
func (d Directory) Path() string { return d.path }

func (d Directory) String() string { return d.path }

// IsRoot reports whether d is the empty directory
func (d Directory) IsRoot() bool { return d.path == "" }

// Package returns the dotted package name for d
func (d Directory) Package() string {
	return strings.ReplaceAll(strings.TrimSuffix(d.path, Separator), Separator, ".")
}

// Join returns the sub-directory name of d
func (d Directory) Join(name string) Directory {
	return NewDirectory(d.path + name)
}

// File returns the file name inside d
func (d Directory) File(name string) File {
	return File{path: d.path + name}
}

// Base returns the last segment of d, empty for the root
func (d Directory) Base() string {
	if d.IsRoot() {
		return ""
	}
	return path.Base(strings.TrimSuffix(d.path, Separator))
}

// Parent returns the directory enclosing d. The root is its own parent.
func (d Directory) Parent() Directory {
	if d.IsRoot() {
		return Root
	}
	parent := path.Dir(strings.TrimSuffix(d.path, Separator))
	if parent == "." {
		return Root
	}
	return Directory{path: parent + Separator}
}

// Segments returns the names that make up d
func (d Directory) Segments() []string {
	if d.IsRoot() {
		return nil
	}
	return strings.Split(strings.TrimSuffix(d.path, Separator), Separator)
}

// Contains reports whether f lives anywhere below d
func (d Directory) Contains(f File) bool {
	return len(f.path) > len(d.path) && strings.HasPrefix(f.path, d.path)
}

// ContainsDirectory reports whether o is a strict sub-directory of d
func (d Directory) ContainsDirectory(o Directory) bool {
	return len(o.path) > len(d.path) && strings.HasPrefix(o.path, d.path)
}

// Resolve joins d onto a filesystem root
func (d Directory) Resolve(root string) string {
	if d.IsRoot() {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(d.path, Separator)))
}

// File is a relative file name
type File struct {
	path string
}

// NewFile normalises p into a relative file name
func NewFile(p string) File {
	p = strings.ReplaceAll(p, "\\", Separator)
	p = strings.TrimPrefix(path.Clean(strings.TrimLeft(p, Separator)), "./")
	return File{path: p}
}

// ForClass maps a binary class name and kind onto a relative file name
func ForClass(className string, kind types.Kind) File {
	return NewFile(strings.ReplaceAll(className, ".", Separator) + kind.Extension())
}

// Path returns the relative name
func (f File) Path() string { return f.path }

func (f File) String() string { return f.path }

// Dirname returns the directory holding f
func (f File) Dirname() Directory {
	i := strings.LastIndex(f.path, Separator)
	if i < 0 {
		return Root
	}
	return Directory{path: f.path[:i+1]}
}

// Basename returns the last segment of f
func (f File) Basename() string {
	return f.path[strings.LastIndex(f.path, Separator)+1:]
}

// Resolve joins f onto a filesystem root
func (f File) Resolve(root string) string {
	return filepath.Join(root, filepath.FromSlash(f.path))
}

// BinaryName strips the extension of f and turns separators into dots
func (f File) BinaryName() string {
	p := f.path
	if ext := path.Ext(p); ext != "" {
		p = strings.TrimSuffix(p, ext)
	}
	return strings.ReplaceAll(p, Separator, ".")
}

// IsIdentifier reports whether name is usable as a package segment: a
// letter, '_' or '$', followed by letters, digits, '_' or '$'.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r), r == '_', r == '$':
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
