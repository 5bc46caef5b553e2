package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	ID   int
	Name string
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		wantCode errors.ErrorCode
	}{
		{name: "valid", key: "java.base"},
		{name: "empty name", key: "", wantCode: errors.ErrInvalidInput},
		{name: "duplicate", key: "dup", wantCode: errors.ErrAlreadyExists},
	}

	reg := New[testItem]()
	require.NoError(t, reg.Register("dup", testItem{ID: 0}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Register(tt.key, testItem{ID: 1, Name: tt.key})
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
		})
	}
	assert.Equal(t, 2, reg.Count())
}

func TestPutReplaces(t *testing.T) {
	reg := New[testItem]()
	require.NoError(t, reg.Put("m", testItem{ID: 1}))
	require.NoError(t, reg.Put("m", testItem{ID: 2}))

	item, err := reg.Get("m")
	require.NoError(t, err)
	assert.Equal(t, 2, item.ID)
	assert.Equal(t, 1, reg.Count())

	assert.True(t, errors.IsErrorCode(reg.Put("", testItem{}), errors.ErrInvalidInput))
}

func TestGetLookupRemove(t *testing.T) {
	reg := New[testItem]()
	MustRegister(reg, "a", testItem{ID: 1, Name: "a"})

	item, ok := reg.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "a", item.Name)

	_, ok = reg.Lookup("b")
	assert.False(t, ok)

	_, err := reg.Get("b")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	require.NoError(t, reg.Remove("a"))
	assert.False(t, reg.Has("a"))
	assert.True(t, errors.IsErrorCode(reg.Remove("a"), errors.ErrNotFound))
}

func TestListSortedAndClear(t *testing.T) {
	reg := New[int]()
	for i, name := range []string{"mod.c", "mod.a", "mod.b"} {
		require.NoError(t, reg.Register(name, i))
	}
	assert.Equal(t, []string{"mod.a", "mod.b", "mod.c"}, reg.List())

	reg.Clear()
	assert.Equal(t, 0, reg.Count())
	assert.Empty(t, reg.List())
}

func TestMustRegisterPanicsOnClash(t *testing.T) {
	reg := New[int]()
	MustRegister(reg, "x", 1)
	assert.Panics(t, func() { MustRegister(reg, "x", 2) })
}

func TestConcurrentAccess(t *testing.T) {
	reg := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("item%d", i)
			_ = reg.Register(name, i)
			_ = reg.Has(name)
			_ = reg.List()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, reg.Count())
}
