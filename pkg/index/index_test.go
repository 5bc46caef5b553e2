package index_test

import (
	"testing"

	"github.com/arthur-debert/pathfinder/pkg/archive"
	"github.com/arthur-debert/pathfinder/pkg/container"
	"github.com/arthur-debert/pathfinder/pkg/diagnostics"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/fscache"
	"github.com/arthur-debert/pathfinder/pkg/index"
	"github.com/arthur-debert/pathfinder/pkg/locations"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
	"github.com/arthur-debert/pathfinder/pkg/testutil"
	"github.com/arthur-debert/pathfinder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	env   *testutil.TestEnvironment
	reg   *locations.Registry
	idx   *index.Index
	cache *container.Cache
}

func newFixture(t *testing.T) *fixture {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	cache := container.NewCache(container.Options{
		Probe:  fscache.New(env.FS, true),
		Opener: archive.FSOpener{FS: env.FS},
	})
	reg := locations.New(&locations.Env{
		Cache:    cache,
		Sink:     diagnostics.NewCollector(),
		Settings: locations.DefaultSettings(),
	})
	env.WriteJar("libs/first.jar", map[string]string{"com/example/A.class": "a"})
	env.WriteTree("classes", map[string]string{
		"com/example/B.java": "class B {}",
		"org/x/D.java":       "class D {}",
	})
	env.WriteJar("libs/second.jar", map[string]string{"org/x/C.class": "c"})
	return &fixture{env: env, reg: reg, idx: index.New(reg, cache), cache: cache}
}

func userPaths(entries []index.Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.UserPath)
	}
	return out
}

func TestLookupKeepsPathOrder(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetPaths(locations.ClassPath, []string{"libs/first.jar", "classes", "libs/second.jar"}))

	tests := []struct {
		pkg  string
		want []string
	}{
		{"com.example", []string{"libs/first.jar", "classes"}},
		{"org.x", []string{"classes", "libs/second.jar"}},
		{"net.none", []string{"classes"}},
	}
	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			entries, err := f.idx.Lookup(locations.ClassPath, relpath.ForPackage(tt.pkg))
			require.NoError(t, err)
			assert.Equal(t, tt.want, userPaths(entries))
		})
	}

	all, err := f.idx.All(locations.ClassPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"libs/first.jar", "classes", "libs/second.jar"}, userPaths(all))
	assert.Equal(t, []int{0, 1, 2}, []int{all[0].Position, all[1].Position, all[2].Position})
}

func TestIndexFollowsEpoch(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetPaths(locations.ClassPath, []string{"libs/first.jar"}))

	entries, err := f.idx.Lookup(locations.ClassPath, relpath.ForPackage("org.x"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, f.reg.SetPaths(locations.ClassPath, []string{"libs/second.jar"}))
	entries, err = f.idx.Lookup(locations.ClassPath, relpath.ForPackage("org.x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"libs/second.jar"}, userPaths(entries))

	first, err := f.idx.All(locations.ClassPath)
	require.NoError(t, err)
	require.NoError(t, f.reg.SetPaths(locations.ClassPath, []string{"libs/second.jar"}))
	again, err := f.idx.All(locations.ClassPath)
	require.NoError(t, err)
	assert.Same(t, first[0].Container, again[0].Container, "a rebuilt index reuses cached containers")
}

func TestSharedContainers(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetPaths(locations.ClassPath, []string{"libs/first.jar"}))
	require.NoError(t, f.reg.SetPaths(locations.SourcePath, []string{f.env.Path("libs/first.jar")}))

	cp, err := f.idx.All(locations.ClassPath)
	require.NoError(t, err)
	sp, err := f.idx.All(locations.SourcePath)
	require.NoError(t, err)
	assert.Same(t, cp[0].Container, sp[0].Container)
	assert.Equal(t, 2, f.idx.Len())

	f.idx.Invalidate(locations.SourcePath)
	assert.Equal(t, 1, f.idx.Len())
	f.idx.Clear()
	assert.Equal(t, 0, f.idx.Len())
}

func TestBrokenContainerIsConsultedEverywhere(t *testing.T) {
	f := newFixture(t)
	f.env.WriteFile("libs/broken.jar", []byte("not a zip"))

	// search paths drop unreadable archives; this source keeps them
	src := staticSource{paths: []string{"libs/first.jar", "libs/broken.jar"}}
	idx := index.New(src, f.cache)

	entries, err := idx.Lookup(locations.ClassPath, relpath.ForPackage("com.example"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	broken, ok := entries[1].Container.(*container.Broken)
	require.True(t, ok)
	assert.True(t, errors.IsErrorCode(broken.Err(), errors.ErrArchiveInvalid))

	_, err = broken.List("libs/broken.jar", relpath.ForPackage("com.example"), types.AllKinds, false)
	assert.Error(t, err)
}

func TestUnsetLocationIsEmpty(t *testing.T) {
	f := newFixture(t)
	entries, err := f.idx.Lookup(locations.SourcePath, relpath.ForPackage("com.example"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestModuleLocations(t *testing.T) {
	f := newFixture(t)
	f.env.WriteModuleJar("mods/util.jar", "com.util", map[string]string{"com/util/U.class": "u"})
	require.NoError(t, f.reg.SetPaths(locations.ModulePath, []string{"mods"}))

	m, err := f.reg.LocationForModule(locations.ModulePath, "com.util")
	require.NoError(t, err)
	require.NotNil(t, m)

	entries, err := f.idx.Lookup(m, relpath.ForPackage("com.util"))
	require.NoError(t, err)
	assert.Equal(t, []string{"mods/util.jar"}, userPaths(entries))
}

type staticSource struct {
	paths []string
}

func (s staticSource) Paths(locations.Location) ([]string, error) { return s.paths, nil }

func (s staticSource) Epoch(locations.Location) uint64 { return 0 }
