package locations

import (
	"github.com/arthur-debert/pathfinder/pkg/registry"
)

// Option is the canonical spelling of a path option
type Option string

const (
	OptClassPath           Option = "--class-path"
	OptSourcePath          Option = "--source-path"
	OptProcessorPath       Option = "--processor-path"
	OptModulePath          Option = "--module-path"
	OptUpgradeModulePath   Option = "--upgrade-module-path"
	OptProcessorModulePath Option = "--processor-module-path"
	OptModuleSourcePath    Option = "--module-source-path"
	OptSystem              Option = "--system"
	OptPatchModule         Option = "--patch-module"
	OptClassOutput         Option = "-d"
	OptSourceOutput        Option = "-s"
	OptHeaderOutput        Option = "-h"
	OptBootClassPath       Option = "--boot-class-path"
	OptBootPrepend         Option = "-Xbootclasspath/p:"
	OptBootAppend          Option = "-Xbootclasspath/a:"
	OptExtDirs             Option = "-extdirs"
	OptEndorsedDirs        Option = "-endorseddirs"
)

type optionSpec struct {
	canonical Option
	location  StandardLocation
}

var optionTable = registry.New[optionSpec]()

func init() {
	for _, o := range []struct {
		names     []string
		canonical Option
		location  StandardLocation
	}{
		{[]string{"--class-path", "-classpath", "-cp"}, OptClassPath, ClassPath},
		{[]string{"--source-path", "-sourcepath"}, OptSourcePath, SourcePath},
		{[]string{"--processor-path", "-processorpath"}, OptProcessorPath, AnnotationProcessorPath},
		{[]string{"--module-path", "-p"}, OptModulePath, ModulePath},
		{[]string{"--upgrade-module-path"}, OptUpgradeModulePath, UpgradeModulePath},
		{[]string{"--processor-module-path"}, OptProcessorModulePath, AnnotationProcessorModulePath},
		{[]string{"--module-source-path"}, OptModuleSourcePath, ModuleSourcePath},
		{[]string{"--system"}, OptSystem, SystemModules},
		{[]string{"--patch-module"}, OptPatchModule, PatchModulePath},
		{[]string{"-d"}, OptClassOutput, ClassOutput},
		{[]string{"-s"}, OptSourceOutput, SourceOutput},
		{[]string{"-h"}, OptHeaderOutput, NativeHeaderOutput},
		{[]string{"--boot-class-path", "-bootclasspath", "-Xbootclasspath:"}, OptBootClassPath, PlatformClassPath},
		{[]string{"-Xbootclasspath/p:"}, OptBootPrepend, PlatformClassPath},
		{[]string{"-Xbootclasspath/a:"}, OptBootAppend, PlatformClassPath},
		{[]string{"-extdirs", "-Djava.ext.dirs="}, OptExtDirs, PlatformClassPath},
		{[]string{"-endorseddirs", "-Djava.endorsed.dirs="}, OptEndorsedDirs, PlatformClassPath},
	} {
		for _, name := range o.names {
			registry.MustRegister(optionTable, name, optionSpec{canonical: o.canonical, location: o.location})
		}
	}
}

// LookupOption resolves any spelling of a path option, legacy aliases
// included, to its canonical form and the location it configures
func LookupOption(flag string) (Option, StandardLocation, bool) {
	spec, ok := optionTable.Lookup(flag)
	if !ok {
		return "", "", false
	}
	return spec.canonical, spec.location, true
}

// OptionNames lists every accepted option spelling
func OptionNames() []string {
	return optionTable.List()
}
