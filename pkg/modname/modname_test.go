package modname_test

import (
	"testing"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/modname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAutomatic(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"foo-bar-1.2.3.jar", "foo.bar"},
		{"foo.jar", "foo"},
		{"commons-lang3-3.12.0.jar", "commons.lang3"},
		{"guava-31.1-jre.jar", "guava"},
		{"my__lib--core.jar", "my.lib.core"},
		{"-lib-.jar", "lib"},
		{"slf4j-api-2.jar", "slf4j.api"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, err := modname.DeriveAutomatic(tt.file)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveAutomaticFails(t *testing.T) {
	for _, file := range []string{"-1.0.jar", "---.jar", ".jar", "x-1a.jar"} {
		t.Run(file, func(t *testing.T) {
			_, err := modname.DeriveAutomatic(file)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrModuleNameInvalid))
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"java.base", true},
		{"mod.a", true},
		{"com.example_util", true},
		{"", false},
		{"a..b", false},
		{".a", false},
		{"a.class", false},
		{"a.1b", false},
		{"foo-bar", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, modname.IsValid(tt.name))
			if tt.want {
				assert.NoError(t, modname.Validate(tt.name))
			} else {
				assert.Error(t, modname.Validate(tt.name))
			}
		})
	}
}
