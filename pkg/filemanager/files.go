package filemanager

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pathfinder/pkg/container"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/locations"
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/paths"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// List returns the files of package pkg in loc whose kind is in kinds, in
// search path order. With recurse set sub-packages are included. When a
// container fails the files gathered so far are returned with the error.
func (m *Manager) List(loc locations.Location, pkg string, kinds types.KindSet, recurse bool) ([]*container.FileObject, error) {
	logger := logging.GetLogger("filemanager")
	dir := relpath.ForPackage(pkg)
	entries, err := m.idx.Lookup(loc, dir)
	if err != nil {
		return nil, err
	}

	var out []*container.FileObject
	for _, e := range entries {
		files, err := e.Container.List(e.UserPath, dir, kinds, recurse)
		out = append(out, files...)
		if err != nil {
			logger.Debug().Err(err).
				Str("location", loc.Name()).
				Str("path", e.UserPath).
				Msg("Listing failed")
			return out, err
		}
	}
	logger.Trace().
		Str("location", loc.Name()).
		Str("package", pkg).
		Int("files", len(out)).
		Msg("Listed package")
	return out, nil
}

// Find returns the first file of loc named name, nil when no entry holds it
func (m *Manager) Find(loc locations.Location, name relpath.File) (*container.FileObject, error) {
	entries, err := m.idx.Lookup(loc, name.Dirname())
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		f, err := e.Container.Find(e.UserPath, name)
		if err != nil {
			return nil, err
		}
		if f != nil {
			return f, nil
		}
	}
	return nil, nil
}

// GetFileForInput finds relativeName in package pkg of loc
func (m *Manager) GetFileForInput(loc locations.Location, pkg, relativeName string) (*container.FileObject, error) {
	if err := checkRelativeName(relativeName); err != nil {
		return nil, err
	}
	return m.Find(loc, relpath.ForPackage(pkg).File(relativeName))
}

// GetJavaFileForInput finds the file of the given kind for a binary class
// name in loc
func (m *Manager) GetJavaFileForInput(loc locations.Location, className string, kind types.Kind) (*container.FileObject, error) {
	if className == "" {
		return nil, errors.New(errors.ErrInvalidInput, "empty class name")
	}
	return m.Find(loc, relpath.ForClass(className, kind))
}

// GetFileForOutput returns the file relativeName of package pkg below the
// output location loc. The file is not created.
func (m *Manager) GetFileForOutput(loc locations.Location, pkg, relativeName string, sibling *container.FileObject) (*container.FileObject, error) {
	if err := checkRelativeName(relativeName); err != nil {
		return nil, err
	}
	return m.outputFile(loc, relpath.ForPackage(pkg).File(relativeName), sibling)
}

// GetJavaFileForOutput returns the output file of the given kind for a
// binary class name
func (m *Manager) GetJavaFileForOutput(loc locations.Location, className string, kind types.Kind, sibling *container.FileObject) (*container.FileObject, error) {
	if className == "" {
		return nil, errors.New(errors.ErrInvalidInput, "empty class name")
	}
	return m.outputFile(loc, relpath.ForClass(className, kind), sibling)
}

// outputFile places name below the directory of loc. Without one, source
// and header output fall back to class output; class output falls back to
// the directory of sibling, then the current directory.
func (m *Manager) outputFile(loc locations.Location, name relpath.File, sibling *container.FileObject) (*container.FileObject, error) {
	if !loc.IsOutput() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not an output location", loc.Name())
	}

	dir, err := m.outputDir(loc)
	if err != nil {
		return nil, err
	}
	if dir == "" && (loc == locations.SourceOutput || loc == locations.NativeHeaderOutput) {
		if dir, err = m.outputDir(locations.ClassOutput); err != nil {
			return nil, err
		}
	}

	var path string
	switch {
	case dir != "":
		path = name.Resolve(dir)
	case sibling != nil && sibling.Origin() == container.OriginFile:
		path = filepath.Join(filepath.Dir(sibling.Path()), name.Basename())
	default:
		path = name.Resolve(".")
	}
	logger := logging.GetLogger("filemanager")
	logger.Trace().
		Str("location", loc.Name()).
		Str("name", name.Path()).
		Str("path", path).
		Msg("Resolved output file")
	return container.ForPath(m.opts.FS, path, name), nil
}

func (m *Manager) outputDir(loc locations.Location) (string, error) {
	entries, err := m.reg.Paths(loc)
	if err != nil || len(entries) == 0 {
		return "", err
	}
	return entries[0], nil
}

// checkRelativeName rejects names that would escape their package
func checkRelativeName(name string) error {
	if err := paths.ValidatePath(name); err != nil {
		return err
	}
	clean := filepath.ToSlash(filepath.Clean(name))
	if filepath.IsAbs(name) || clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Newf(errors.ErrInvalidInput, "invalid relative name %q", name)
	}
	return nil
}

// Contains reports whether f lies below one of the entries of loc. An
// entry of an archive counts as inside the location that lists the
// archive.
func (m *Manager) Contains(loc locations.Location, f *container.FileObject) (bool, error) {
	if f == nil {
		return false, nil
	}
	entries, err := m.reg.Paths(loc)
	if err != nil {
		return false, err
	}
	file := m.probe.Canonical(f.Path())
	for _, e := range entries {
		root := m.probe.Canonical(e)
		if paths.ContainsPath(root, file) {
			return true, nil
		}
		if f.ArchivePath() != "" && m.probe.Canonical(f.ArchivePath()) == root {
			return true, nil
		}
	}
	return false, nil
}

// InferBinaryName returns the dotted binary name of f relative to the
// entry of loc that holds it
func (m *Manager) InferBinaryName(loc locations.Location, f *container.FileObject) (string, bool) {
	if f == nil {
		return "", false
	}
	if f.Origin() != container.OriginFile {
		if ok, err := m.Contains(loc, f); err != nil || !ok {
			return "", false
		}
		return f.BinaryName(), true
	}
	entries, err := m.reg.Paths(loc)
	if err != nil {
		return "", false
	}
	roots := make([]string, 0, len(entries))
	for _, e := range entries {
		roots = append(roots, m.probe.Canonical(e))
	}
	return container.InferBinaryName(roots, m.probe.Canonical(f.Path()))
}
