package image_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/arthur-debert/pathfinder/pkg/archive"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/image"
	"github.com/arthur-debert/pathfinder/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T) (*testutil.TestEnvironment, string) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	p := env.WriteImage("jdk", map[string]map[string]string{
		"java.base":    {"java/lang/Object.class": "o"},
		"java.logging": {"java/util/logging/Logger.class": "l"},
	})
	return env, p
}

func TestImageModules(t *testing.T) {
	env, p := writeImage(t)
	assert.Equal(t, image.PathFor(env.Path("jdk"), ""), p)

	img, err := image.Open(archive.FSOpener{FS: env.FS}, p)
	require.NoError(t, err)
	defer func() { _ = img.Close() }()

	assert.Equal(t, []string{"java.base", "java.logging"}, img.Modules())
	assert.True(t, img.HasModule("java.base"))
	assert.False(t, img.HasModule("java.desktop"))
	assert.Equal(t, filepath.Join(p, "java.base"), img.ModulePath("java.base"))
}

func TestOpenWithoutArchiveSupport(t *testing.T) {
	_, err := image.Open(nil, "/jdk/lib/modules")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoArchiveSupport))
}

func TestOpenInvalidImage(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	p := env.WriteFile("jdk/lib/modules", []byte("garbage"))

	_, err := image.Open(archive.FSOpener{FS: env.FS}, p)
	assert.True(t, errors.IsErrorCode(err, errors.ErrImageInvalid))
	assert.Equal(t, p, errors.PathOf(err))
}

func TestHandleOpensOnce(t *testing.T) {
	env, p := writeImage(t)
	h := image.NewHandle(archive.FSOpener{FS: env.FS}, p)

	assert.False(t, h.Opened())
	require.NoError(t, h.Close(), "closing an unopened handle is a no-op")

	var wg sync.WaitGroup
	images := make([]*image.Image, 8)
	for i := range images {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			img, err := h.Get()
			assert.NoError(t, err)
			images[i] = img
		}(i)
	}
	wg.Wait()

	for _, img := range images[1:] {
		assert.Same(t, images[0], img)
	}
	assert.True(t, h.Opened())

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
	assert.False(t, h.Opened())

	reopened, err := h.Get()
	require.NoError(t, err)
	assert.NotSame(t, images[0], reopened)
	assert.Equal(t, p, h.Path())
}
