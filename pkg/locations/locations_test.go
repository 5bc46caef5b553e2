package locations_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pathfinder/pkg/archive"
	"github.com/arthur-debert/pathfinder/pkg/container"
	"github.com/arthur-debert/pathfinder/pkg/diagnostics"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/fscache"
	"github.com/arthur-debert/pathfinder/pkg/locations"
	"github.com/arthur-debert/pathfinder/pkg/manifest"
	"github.com/arthur-debert/pathfinder/pkg/pattern"
	"github.com/arthur-debert/pathfinder/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var classes = map[string]string{"p/A.class": "a"}

type fixture struct {
	env   *testutil.TestEnvironment
	diags *diagnostics.Collector
	reg   *locations.Registry
}

func newFixture(t *testing.T, tweak ...func(*locations.Settings)) *fixture {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	cache := container.NewCache(container.Options{
		Probe:  fscache.New(env.FS, true),
		Opener: archive.FSOpener{FS: env.FS},
	})
	settings := locations.DefaultSettings()
	settings.SystemHome = env.Path("jdk")
	for _, fn := range tweak {
		fn(&settings)
	}
	diags := diagnostics.NewCollector()
	return &fixture{
		env:   env,
		diags: diags,
		reg:   locations.New(&locations.Env{Cache: cache, Sink: diags, Settings: settings}),
	}
}

func list(elems ...string) string {
	out := ""
	for i, e := range elems {
		if i > 0 {
			out += string(os.PathListSeparator)
		}
		out += e
	}
	return out
}

func moduleNames(groups [][]*locations.ModuleLocation) [][]string {
	var out [][]string
	for _, g := range groups {
		var names []string
		for _, m := range g {
			names = append(names, m.Module())
		}
		out = append(out, names)
	}
	return out
}

func TestLocationNames(t *testing.T) {
	assert.Equal(t, locations.ClassPath, locations.LocationFor("class-path"))
	assert.Equal(t, locations.ModulePath, locations.LocationFor("module_path"))
	assert.Equal(t, locations.StandardLocation("MY_OUTPUT"), locations.LocationFor("MY_OUTPUT"))
	assert.True(t, locations.ClassOutput.IsOutput())
	assert.True(t, locations.StandardLocation("MY_OUTPUT").IsOutput())
	assert.True(t, locations.ModuleSourcePath.IsModuleOriented())
	assert.False(t, locations.ClassPath.IsModuleOriented())
}

func TestLookupOption(t *testing.T) {
	tests := []struct {
		flag string
		opt  locations.Option
		loc  locations.StandardLocation
	}{
		{"-cp", locations.OptClassPath, locations.ClassPath},
		{"-classpath", locations.OptClassPath, locations.ClassPath},
		{"-p", locations.OptModulePath, locations.ModulePath},
		{"-Xbootclasspath:", locations.OptBootClassPath, locations.PlatformClassPath},
		{"-bootclasspath", locations.OptBootClassPath, locations.PlatformClassPath},
		{"-Djava.ext.dirs=", locations.OptExtDirs, locations.PlatformClassPath},
		{"-Djava.endorsed.dirs=", locations.OptEndorsedDirs, locations.PlatformClassPath},
		{"-d", locations.OptClassOutput, locations.ClassOutput},
		{"--patch-module", locations.OptPatchModule, locations.PatchModulePath},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			opt, loc, ok := locations.LookupOption(tt.flag)
			require.True(t, ok)
			assert.Equal(t, tt.opt, opt)
			assert.Equal(t, tt.loc, loc)
		})
	}
	_, _, ok := locations.LookupOption("--verbose")
	assert.False(t, ok)
	assert.Contains(t, locations.OptionNames(), "-cp")
}

func TestClassPathDefaults(t *testing.T) {
	f := newFixture(t)
	paths, err := f.reg.Paths(locations.ClassPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, paths)
	assert.False(t, f.reg.IsExplicit(locations.ClassPath))

	f = newFixture(t, func(s *locations.Settings) { s.DefaultClassPath = "libs/a.jar" })
	f.env.WriteJar("libs/a.jar", classes)
	paths, err = f.reg.Paths(locations.ClassPath)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.FromSlash("libs/a.jar")}, paths)
}

func TestClassPathOption(t *testing.T) {
	f := newFixture(t)
	f.env.WriteJar("libs/a.jar", classes)
	f.env.WriteJar("libs/b.jar", classes)

	handled, err := f.reg.HandleOption("-cp", list("libs/a.jar", "libs/b.jar", "libs/a.jar"))
	require.NoError(t, err)
	assert.True(t, handled)

	paths, err := f.reg.Paths(locations.ClassPath)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.FromSlash("libs/a.jar"), filepath.FromSlash("libs/b.jar")}, paths)
	assert.True(t, f.reg.IsExplicit(locations.ClassPath))

	handled, err = f.reg.HandleOption("--verbose", "")
	assert.NoError(t, err)
	assert.False(t, handled)

	require.NoError(t, f.reg.SetPaths(locations.ClassPath, nil))
	paths, err = f.reg.Paths(locations.ClassPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, paths)
	assert.False(t, f.reg.IsExplicit(locations.ClassPath))
}

func TestProcessorPathFollowsClassPath(t *testing.T) {
	f := newFixture(t)
	f.env.Mkdir("a", "b", "proc")

	_, err := f.reg.HandleOption("--class-path", "a")
	require.NoError(t, err)
	paths, err := f.reg.Paths(locations.AnnotationProcessorPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, paths)

	before := f.reg.Epoch(locations.AnnotationProcessorPath)
	require.NoError(t, f.reg.SetPaths(locations.ClassPath, []string{"b"}))
	assert.Greater(t, f.reg.Epoch(locations.AnnotationProcessorPath), before)
	paths, err = f.reg.Paths(locations.AnnotationProcessorPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, paths)

	_, err = f.reg.HandleOption("-processorpath", "proc")
	require.NoError(t, err)
	require.NoError(t, f.reg.SetPaths(locations.ClassPath, []string{"a"}))
	paths, err = f.reg.Paths(locations.AnnotationProcessorPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"proc"}, paths)
}

func TestSourcePathUnset(t *testing.T) {
	f := newFixture(t)
	paths, err := f.reg.Paths(locations.SourcePath)
	require.NoError(t, err)
	assert.Nil(t, paths)
	assert.False(t, f.reg.HasLocation(locations.SourcePath))
	assert.False(t, f.reg.HasLocation(locations.StandardLocation("NOPE")))
}

func TestOutputLocation(t *testing.T) {
	f := newFixture(t)
	f.env.Mkdir("out", "other")

	err := f.reg.SetPaths(locations.ClassOutput, []string{"out", "other"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = f.reg.SetPaths(locations.ClassOutput, []string{"missing"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = f.reg.HandleOption("-d", "out")
	require.NoError(t, err)
	paths, err := f.reg.Paths(locations.ClassOutput)
	require.NoError(t, err)
	assert.Equal(t, []string{"out"}, paths)

	m, err := f.reg.LocationForModule(locations.ClassOutput, "mod.a")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "CLASS_OUTPUT[mod.a]", m.Name())
	assert.Equal(t, []string{filepath.Join("out", "mod.a")}, m.Paths())
	assert.True(t, m.IsOutput())

	again, err := f.reg.LocationForModule(locations.ClassOutput, "mod.a")
	require.NoError(t, err)
	assert.Same(t, m, again)

	require.NoError(t, f.reg.SetPathsForModule(locations.ClassOutput, "mod.a", []string{"other"}))
	assert.Equal(t, []string{"other"}, m.Paths())

	byPath, err := f.reg.LocationForModuleByPath(locations.ClassOutput, filepath.Join("other", "p", "A.class"))
	require.NoError(t, err)
	assert.Same(t, m, byPath)
}

func TestAdHocLocations(t *testing.T) {
	f := newFixture(t)
	f.env.Mkdir("gen", "extra")

	custom := locations.StandardLocation("GENERATED_OUTPUT")
	require.NoError(t, f.reg.SetPaths(custom, []string{"gen"}))
	assert.Equal(t, locations.KindOutput, f.reg.Kind(custom))

	extra := locations.StandardLocation("EXTRA_PATH")
	require.NoError(t, f.reg.SetPaths(extra, []string{"extra"}))
	assert.Equal(t, locations.KindSimple, f.reg.Kind(extra))
	assert.Contains(t, f.reg.Locations(), locations.Location(extra))
}

func TestBootAggregate(t *testing.T) {
	f := newFixture(t)
	f.env.WriteJar("jdk/lib/boot/rt.jar", classes)
	f.env.WriteJar("pre/p.jar", classes)
	f.env.WriteJar("endorsed/e.jar", classes)
	f.env.WriteJar("app/a.jar", classes)
	f.env.WriteJar("ext/x.jar", classes)
	f.env.WriteJar("alt/b.jar", classes)

	paths, err := f.reg.Paths(locations.PlatformClassPath)
	require.NoError(t, err)
	assert.Equal(t, []string{f.env.Path("jdk/lib/boot/rt.jar")}, paths)
	assert.True(t, f.reg.IsDefaultPlatformClassPath())

	for flag, value := range map[string]string{
		"-Xbootclasspath/p:":     "pre/p.jar",
		"-Djava.endorsed.dirs=": "endorsed",
		"-Xbootclasspath/a:":     "app/a.jar",
		"-extdirs":               "ext",
	} {
		_, err := f.reg.HandleOption(flag, value)
		require.NoError(t, err)
	}
	paths, err = f.reg.Paths(locations.PlatformClassPath)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.FromSlash("pre/p.jar"),
		filepath.FromSlash("endorsed/e.jar"),
		f.env.Path("jdk/lib/boot/rt.jar"),
		filepath.FromSlash("app/a.jar"),
		filepath.FromSlash("ext/x.jar"),
	}, paths)
	assert.False(t, f.reg.IsDefaultPlatformClassPath())

	_, err = f.reg.HandleOption("-Xbootclasspath:", "alt/b.jar")
	require.NoError(t, err)
	paths, err = f.reg.Paths(locations.PlatformClassPath)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.FromSlash("endorsed/e.jar"),
		filepath.FromSlash("alt/b.jar"),
		filepath.FromSlash("ext/x.jar"),
	}, paths, "the boot class path drops prepend and append fragments")

	require.NoError(t, f.reg.SetPaths(locations.PlatformClassPath, nil))
	assert.True(t, f.reg.IsDefaultPlatformClassPath())
}

func TestBootDefaultsToImage(t *testing.T) {
	f := newFixture(t)
	img := f.env.WriteImage("jdk", map[string]map[string]string{"java.base": {"java/lang/Object.class": "o"}})

	paths, err := f.reg.Paths(locations.PlatformClassPath)
	require.NoError(t, err)
	assert.Equal(t, []string{img}, paths)
	assert.Empty(t, f.diags.All())
}

func writeModulePathTree(env *testutil.TestEnvironment) {
	env.WriteExplodedModule("mods/alpha", "com.alpha", classes)
	env.WriteModuleJar("mods/beta.jar", "com.beta", classes)
	env.WriteJar("mods/auto.jar", classes, manifest.Attribute{Name: manifest.AttrAutomaticModuleName, Value: "com.auto"})
	env.WriteJar("mods/foo-bar-1.2.3.jar", classes)
	env.WriteModuleFile("mods/m.jmod", "com.packaged", classes)
	env.WriteFile("mods/bad.jar", []byte("garbage"))
	env.WriteJar("mods/x-1a.jar", classes)
	env.WriteFile("mods/README", []byte("docs"))
	env.Mkdir("mods/plain")
	env.WriteExplodedModule("more/beta", "com.beta", classes)
	env.WriteExplodedModule("single", "com.single", classes)
}

func TestModulePathDiscovery(t *testing.T) {
	f := newFixture(t)
	writeModulePathTree(f.env)

	_, err := f.reg.HandleOption("--module-path", list("mods", "more", "single"))
	require.NoError(t, err)

	groups, err := f.reg.ListLocationsForModules(locations.ModulePath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"com.alpha", "com.auto", "com.beta", "foo.bar", "com.packaged"},
		{"com.single"},
	}, moduleNames(groups))
	assert.Equal(t, []string{diagnostics.KeyCantReadFile, diagnostics.KeyCantDeriveModuleName}, f.diags.Keys())

	tests := []struct {
		module string
		root   string
	}{
		{"com.alpha", "mods/alpha"},
		{"com.beta", "mods/beta.jar"},
		{"com.auto", "mods/auto.jar"},
		{"foo.bar", "mods/foo-bar-1.2.3.jar"},
		{"com.packaged", "mods/m.jmod/classes"},
		{"com.single", "single"},
	}
	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			m, err := f.reg.LocationForModule(locations.ModulePath, tt.module)
			require.NoError(t, err)
			require.NotNil(t, m)
			assert.Equal(t, []string{filepath.FromSlash(tt.root)}, m.Paths())
			assert.Equal(t, "MODULE_PATH["+tt.module+"]", m.Name())
			name, ok := f.reg.InferModuleName(m)
			assert.True(t, ok)
			assert.Equal(t, tt.module, name)
		})
	}

	m, err := f.reg.LocationForModuleByPath(locations.ModulePath, "mods/alpha/p/A.class")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "com.alpha", m.Module())

	none, err := f.reg.LocationForModule(locations.ModulePath, "com.missing")
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestModulePathDropsAliasedEntries(t *testing.T) {
	f := newFixture(t)
	f.env.WriteExplodedModule("mods/alpha", "com.alpha", classes)
	alias := f.env.Symlink(f.env.Path("mods"), "linked")

	require.NoError(t, f.reg.SetPaths(locations.ModulePath, []string{"mods", alias, "./mods"}))
	entries, err := f.reg.Paths(locations.ModulePath)
	require.NoError(t, err)
	assert.Equal(t, []string{"mods"}, entries)

	groups, err := f.reg.ListLocationsForModules(locations.ModulePath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"com.alpha"}}, moduleNames(groups))
}

func TestModulePathRejectsPlainFiles(t *testing.T) {
	f := newFixture(t)
	f.env.WriteFile("notes.txt", []byte("x"))

	err := f.reg.SetPaths(locations.ModulePath, []string{"notes.txt"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Equal(t, "notes.txt", errors.PathOf(err))

	assert.NoError(t, f.reg.SetPaths(locations.ModulePath, []string{"not-there.txt"}))
}

func TestModuleOverrideAfterScan(t *testing.T) {
	f := newFixture(t)
	writeModulePathTree(f.env)
	f.env.WriteExplodedModule("patched/alpha", "com.alpha", classes)
	require.NoError(t, f.reg.SetPaths(locations.ModulePath, []string{"mods"}))

	scanned, err := f.reg.LocationForModule(locations.ModulePath, "com.alpha")
	require.NoError(t, err)
	require.NotNil(t, scanned)
	assert.False(t, scanned.Explicit())

	before := f.reg.Epoch(locations.ModulePath)
	require.NoError(t, f.reg.SetPathsForModule(locations.ModulePath, "com.alpha", []string{"patched/alpha"}))
	assert.Greater(t, f.reg.Epoch(locations.ModulePath), before)

	pinned, err := f.reg.LocationForModule(locations.ModulePath, "com.alpha")
	require.NoError(t, err)
	require.NotNil(t, pinned)
	assert.True(t, pinned.Explicit())
	assert.Equal(t, []string{filepath.FromSlash("patched/alpha")}, pinned.Paths())

	byPath, err := f.reg.LocationForModuleByPath(locations.ModulePath, "mods/alpha/p/A.class")
	require.NoError(t, err)
	assert.Nil(t, byPath, "the scanned root no longer maps to a module")

	groups, err := f.reg.ListLocationsForModules(locations.ModulePath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"com.alpha"},
		{"com.auto", "com.beta", "foo.bar", "com.packaged"},
	}, moduleNames(groups))

	require.NoError(t, f.reg.SetPaths(locations.ModulePath, []string{"mods", "more"}))
	again, err := f.reg.LocationForModule(locations.ModulePath, "com.alpha")
	require.NoError(t, err)
	assert.Same(t, pinned, again, "explicit modules survive a new module path")

	epoch := f.reg.Epoch(pinned)
	require.NoError(t, f.reg.SetPaths(pinned, []string{"mods/alpha"}))
	assert.Greater(t, f.reg.Epoch(pinned), epoch)
	paths, err := f.reg.Paths(pinned)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.FromSlash("mods/alpha")}, paths)
}

func writeSourceTree(env *testutil.TestEnvironment) {
	env.WriteTree("src", map[string]string{
		"mod.a/share/classes/module-info.java": "module mod.a {}",
		"mod.a/share/classes/a/A.java":         "class A {}",
		"mod.a/unix/classes/a/U.java":          "class U {}",
		"mod.b/share/classes/module-info.java": "module mod.b {}",
		"mod.c/share/classes/c/C.java":         "class C {}",
	})
}

func TestModuleSourcePathPattern(t *testing.T) {
	f := newFixture(t)
	writeSourceTree(f.env)

	_, err := f.reg.HandleOption("--module-source-path", "src/*/share/classes")
	require.NoError(t, err)

	groups, err := f.reg.ListLocationsForModules(locations.ModuleSourcePath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"mod.a", "mod.b"}}, moduleNames(groups))

	for _, name := range []string{"mod.a", "mod.b"} {
		m, err := f.reg.LocationForModule(locations.ModuleSourcePath, name)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, []string{filepath.Join("src", name, "share", "classes")}, m.Paths())
	}

	none, err := f.reg.LocationForModule(locations.ModuleSourcePath, "mod.c")
	require.NoError(t, err)
	assert.Nil(t, none, "directories without a module declaration are not modules")
}

func TestModuleSourcePathBracesAndRoots(t *testing.T) {
	f := newFixture(t)
	writeSourceTree(f.env)

	_, err := f.reg.HandleOption("--module-source-path", "src/*/{share,unix}/classes")
	require.NoError(t, err)

	m, err := f.reg.LocationForModule(locations.ModuleSourcePath, "mod.a")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, []string{
		filepath.FromSlash("src/mod.a/share/classes"),
		filepath.FromSlash("src/mod.a/unix/classes"),
	}, m.Paths())

	_, err = f.reg.HandleOption("--module-source-path", "src/{share")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))

	_, err = f.reg.HandleOption("--module-source-path", "a"+pattern.Delimiter+"b")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = f.reg.HandleOption("--module-source-path", "*/classes")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
}

func TestModuleSourcePathOverride(t *testing.T) {
	f := newFixture(t)
	writeSourceTree(f.env)
	f.env.WriteTree("alt/a", map[string]string{"module-info.java": "module mod.a {}"})

	_, err := f.reg.HandleOption("--module-source-path", "src/*/share/classes")
	require.NoError(t, err)
	scanned, err := f.reg.LocationForModule(locations.ModuleSourcePath, "mod.b")
	require.NoError(t, err)
	require.NotNil(t, scanned)

	_, err = f.reg.HandleOption("--module-source-path", "mod.a=alt/a"+pattern.Delimiter+"mod.z=alt/z")
	require.NoError(t, err)

	groups, err := f.reg.ListLocationsForModules(locations.ModuleSourcePath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"mod.a", "mod.z"}, {"mod.b"}}, moduleNames(groups))

	m, err := f.reg.LocationForModule(locations.ModuleSourcePath, "mod.a")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.FromSlash("alt/a")}, m.Paths())

	still, err := f.reg.LocationForModule(locations.ModuleSourcePath, "mod.b")
	require.NoError(t, err)
	assert.Same(t, scanned, still, "the pattern is kept when only assignments are given")
}

func TestSystemModules(t *testing.T) {
	f := newFixture(t)
	img := f.env.WriteImage("jdk", map[string]map[string]string{
		"java.base":    {"java/lang/Object.class": "o"},
		"java.logging": {"java/util/logging/Logger.class": "l"},
	})

	paths, err := f.reg.Paths(locations.SystemModules)
	require.NoError(t, err)
	assert.Equal(t, []string{img}, paths)
	assert.True(t, f.reg.IsDefaultSystemModules())

	groups, err := f.reg.ListLocationsForModules(locations.SystemModules)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"java.base", "java.logging"}}, moduleNames(groups))

	base, err := f.reg.LocationForModule(locations.SystemModules, "java.base")
	require.NoError(t, err)
	require.NotNil(t, base)
	assert.Equal(t, []string{filepath.Join(img, "java.base")}, base.Paths())

	_, err = f.reg.HandleOption("--system", f.env.Path("nowhere"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = f.reg.HandleOption("--system", locations.SystemNone)
	require.NoError(t, err)
	paths, err = f.reg.Paths(locations.SystemModules)
	require.NoError(t, err)
	assert.Nil(t, paths)
	assert.False(t, f.reg.IsDefaultSystemModules())
	groups, err = f.reg.ListLocationsForModules(locations.SystemModules)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestAlternateSystemHome(t *testing.T) {
	f := newFixture(t)
	f.env.WriteImage("jdk", map[string]map[string]string{"java.base": {"a/A.class": "a"}})
	alt := f.env.WriteImage("other-jdk", map[string]map[string]string{"java.other": {"b/B.class": "b"}})

	_, err := f.reg.HandleOption("--system", f.env.Path("other-jdk"))
	require.NoError(t, err)
	paths, err := f.reg.Paths(locations.SystemModules)
	require.NoError(t, err)
	assert.Equal(t, []string{alt}, paths)

	groups, err := f.reg.ListLocationsForModules(locations.SystemModules)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"java.other"}}, moduleNames(groups))
}

func TestPatchModule(t *testing.T) {
	f := newFixture(t)
	f.env.Mkdir("patches/base", "a", "b")

	value := "java.base=patches/base" + pattern.Delimiter + "oops" + pattern.Delimiter + "java.sql=" + list("a", "b")
	_, err := f.reg.HandleOption("--patch-module", value)
	require.NoError(t, err)
	assert.Equal(t, []string{diagnostics.KeyInvalidPatchArgument}, f.diags.Keys())

	m, err := f.reg.LocationForModule(locations.PatchModulePath, "java.sql")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, []string{"a", "b"}, m.Paths())

	groups, err := f.reg.ListLocationsForModules(locations.PatchModulePath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"java.base", "java.sql"}}, moduleNames(groups))

	paths, err := f.reg.Paths(locations.PatchModulePath)
	assert.NoError(t, err)
	assert.Nil(t, paths)

	err = f.reg.SetPaths(locations.PatchModulePath, []string{"x"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupported))

	_, err = f.reg.HandleOption("--patch-module", "m=a"+pattern.Delimiter+"m=b")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestModuleQueriesOnPlainLocations(t *testing.T) {
	f := newFixture(t)

	m, err := f.reg.LocationForModule(locations.ClassPath, "m")
	assert.NoError(t, err)
	assert.Nil(t, m)

	err = f.reg.SetPathsForModule(locations.ClassPath, "m", []string{"x"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupported))

	out, err := f.reg.LocationForModule(locations.ClassOutput, "m")
	assert.NoError(t, err)
	assert.Nil(t, out, "an unset output location has no module locations")

	f.env.Mkdir("o")
	require.NoError(t, f.reg.SetPaths(locations.ClassOutput, []string{"o"}))
	out, err = f.reg.LocationForModule(locations.ClassOutput, "m")
	require.NoError(t, err)
	_, err = f.reg.LocationForModule(out, "n")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupported))
}

func TestEpochs(t *testing.T) {
	f := newFixture(t)
	f.env.Mkdir("a")

	cp := f.reg.Epoch(locations.ClassPath)
	sp := f.reg.Epoch(locations.SourcePath)
	require.NoError(t, f.reg.SetPaths(locations.ClassPath, []string{"a"}))
	assert.Equal(t, cp+1, f.reg.Epoch(locations.ClassPath))
	assert.Equal(t, sp, f.reg.Epoch(locations.SourcePath))

	f.reg.Invalidate()
	assert.Equal(t, cp+2, f.reg.Epoch(locations.ClassPath))
	assert.Equal(t, sp+1, f.reg.Epoch(locations.SourcePath))
}
