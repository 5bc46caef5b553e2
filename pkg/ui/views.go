package ui

import (
	"github.com/arthur-debert/pathfinder/pkg/container"
	"github.com/arthur-debert/pathfinder/pkg/diagnostics"
	"github.com/arthur-debert/pathfinder/pkg/locations"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// LocationView is one location and its resolved entries
type LocationView struct {
	Location string   `json:"location" yaml:"location"`
	Kind     string   `json:"kind" yaml:"kind"`
	Explicit bool     `json:"explicit" yaml:"explicit"`
	Entries  []string `json:"entries" yaml:"entries"`
}

// FileView describes a file object
type FileView struct {
	Name       string `json:"name" yaml:"name"`
	Kind       string `json:"kind" yaml:"kind"`
	BinaryName string `json:"binaryName,omitempty" yaml:"binaryName,omitempty"`
	Origin     string `json:"origin" yaml:"origin"`
	Path       string `json:"path" yaml:"path"`
	Archive    string `json:"archive,omitempty" yaml:"archive,omitempty"`
	Entry      string `json:"entry" yaml:"entry"`
}

// NewFileView builds the view of f
func NewFileView(f *container.FileObject) FileView {
	v := FileView{
		Name:    f.RelativeName().Path(),
		Kind:    f.Kind().String(),
		Origin:  f.Origin().String(),
		Path:    f.Path(),
		Archive: f.ArchivePath(),
		Entry:   f.UserPath(),
	}
	if k := f.Kind(); k == types.KindSource || k == types.KindClass {
		v.BinaryName = f.BinaryName()
	}
	return v
}

// FilesView is the result of a listing or lookup
type FilesView struct {
	Location string     `json:"location" yaml:"location"`
	Package  string     `json:"package" yaml:"package"`
	Files    []FileView `json:"files" yaml:"files"`
}

// NewFilesView builds the view of a listing
func NewFilesView(loc, pkg string, files []*container.FileObject) FilesView {
	v := FilesView{Location: loc, Package: pkg, Files: make([]FileView, 0, len(files))}
	for _, f := range files {
		v.Files = append(v.Files, NewFileView(f))
	}
	return v
}

// ModuleView is one module location
type ModuleView struct {
	Name     string   `json:"name" yaml:"name"`
	Location string   `json:"location" yaml:"location"`
	Explicit bool     `json:"explicit" yaml:"explicit"`
	Paths    []string `json:"paths" yaml:"paths"`
}

// ModulesView lists the modules of a module-oriented location, one group
// per path entry
type ModulesView struct {
	Location string         `json:"location" yaml:"location"`
	Groups   [][]ModuleView `json:"groups" yaml:"groups"`
}

// NewModulesView builds the view of grouped module locations
func NewModulesView(loc string, groups [][]*locations.ModuleLocation) ModulesView {
	v := ModulesView{Location: loc, Groups: make([][]ModuleView, 0, len(groups))}
	for _, g := range groups {
		group := make([]ModuleView, 0, len(g))
		for _, m := range g {
			group = append(group, ModuleView{
				Name:     m.Module(),
				Location: m.Name(),
				Explicit: m.Explicit(),
				Paths:    m.Paths(),
			})
		}
		v.Groups = append(v.Groups, group)
	}
	return v
}

// DiagnosticView is one reported diagnostic
type DiagnosticView struct {
	Severity string `json:"severity" yaml:"severity"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Key      string `json:"key" yaml:"key"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewDiagnosticViews builds views of ds
func NewDiagnosticViews(ds []diagnostics.Diagnostic) []DiagnosticView {
	out := make([]DiagnosticView, 0, len(ds))
	for _, d := range ds {
		v := DiagnosticView{
			Severity: d.Severity.String(),
			Category: string(d.Category),
			Key:      d.Key,
			Path:     d.Path,
		}
		if d.Err != nil {
			v.Error = d.Err.Error()
		}
		out = append(out, v)
	}
	return out
}
