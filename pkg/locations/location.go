package locations

import (
	"fmt"
	"strings"
)

// Location identifies the role a set of paths plays
type Location interface {
	Name() string
	IsOutput() bool
	IsModuleOriented() bool
}

// StandardLocation is a location named by a fixed string. Unknown names
// act as ad hoc locations.
type StandardLocation string

const (
	ClassOutput                   StandardLocation = "CLASS_OUTPUT"
	SourceOutput                  StandardLocation = "SOURCE_OUTPUT"
	NativeHeaderOutput            StandardLocation = "NATIVE_HEADER_OUTPUT"
	ClassPath                     StandardLocation = "CLASS_PATH"
	SourcePath                    StandardLocation = "SOURCE_PATH"
	AnnotationProcessorPath       StandardLocation = "ANNOTATION_PROCESSOR_PATH"
	AnnotationProcessorModulePath StandardLocation = "ANNOTATION_PROCESSOR_MODULE_PATH"
	PlatformClassPath             StandardLocation = "PLATFORM_CLASS_PATH"
	ModuleSourcePath              StandardLocation = "MODULE_SOURCE_PATH"
	UpgradeModulePath             StandardLocation = "UPGRADE_MODULE_PATH"
	SystemModules                 StandardLocation = "SYSTEM_MODULES"
	ModulePath                    StandardLocation = "MODULE_PATH"
	PatchModulePath               StandardLocation = "PATCH_MODULE_PATH"
)

// Standard lists the well-known locations in display order
var Standard = []StandardLocation{
	ClassOutput, SourceOutput, NativeHeaderOutput,
	ClassPath, SourcePath, AnnotationProcessorPath,
	PlatformClassPath,
	ModuleSourcePath, UpgradeModulePath, SystemModules, ModulePath,
	AnnotationProcessorModulePath, PatchModulePath,
}

// LocationFor returns the location with the given name. Names are matched
// case insensitively; anything unknown becomes an ad hoc location.
func LocationFor(name string) StandardLocation {
	up := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for _, l := range Standard {
		if string(l) == up {
			return l
		}
	}
	return StandardLocation(name)
}

func (l StandardLocation) Name() string { return string(l) }

func (l StandardLocation) String() string { return string(l) }

// IsOutput reports whether l names an output location
func (l StandardLocation) IsOutput() bool {
	return strings.HasSuffix(string(l), "_OUTPUT")
}

// IsModuleOriented reports whether l holds modules rather than packages
func (l StandardLocation) IsModuleOriented() bool {
	switch l {
	case ModuleSourcePath, UpgradeModulePath, SystemModules, ModulePath,
		AnnotationProcessorModulePath, PatchModulePath:
		return true
	}
	return false
}

// ModuleLocation is the location of a single module inside a
// module-oriented or output location
type ModuleLocation struct {
	parent Location
	module string
	paths  []string
	// explicit is set for modules pinned by a per-module setting
	explicit bool
	// entry is the index of the parent path entry the module came from,
	// -1 for explicit modules
	entry int
}

func newModuleLocation(parent Location, module string, paths []string, explicit bool, entry int) *ModuleLocation {
	return &ModuleLocation{parent: parent, module: module, paths: paths, explicit: explicit, entry: entry}
}

// Name renders as PARENT[module]
func (m *ModuleLocation) Name() string {
	return fmt.Sprintf("%s[%s]", m.parent.Name(), m.module)
}

func (m *ModuleLocation) String() string { return m.Name() }

// IsOutput is inherited from the parent
func (m *ModuleLocation) IsOutput() bool { return m.parent.IsOutput() }

// IsModuleOriented is always false; a module location holds packages
func (m *ModuleLocation) IsModuleOriented() bool { return false }

// Parent returns the enclosing location
func (m *ModuleLocation) Parent() Location { return m.parent }

// Module returns the module name
func (m *ModuleLocation) Module() string { return m.module }

// Paths returns a copy of the module's content roots
func (m *ModuleLocation) Paths() []string {
	out := make([]string, len(m.paths))
	copy(out, m.paths)
	return out
}

// Explicit reports whether the module was pinned by a per-module setting
func (m *ModuleLocation) Explicit() bool { return m.explicit }
