package manifest_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := "Manifest-Version: 1.0\r\n" +
		"class-path: b.jar\r\n" +
		"  c.jar\r\n" +
		"Automatic-Module-Name: com.example.util\r\n" +
		"\r\n" +
		"Name: com/example/\r\n" +
		"Class-Path: ignored.jar\r\n"

	m, err := manifest.Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"b.jar", "c.jar"}, m.ClassPath())
	assert.Equal(t, "com.example.util", m.AutomaticModuleName())
	assert.Equal(t, "1.0", m.Get("MANIFEST-VERSION"))
	assert.Empty(t, m.Get("Name"), "per-entry sections are not part of the main section")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"continuation first", " dangling\n"},
		{"missing colon", "Manifest-Version 1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manifest.Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveInvalid))
		})
	}
}

func TestMarshalWrapsLongLines(t *testing.T) {
	long := strings.Repeat("lib/dependency.jar ", 10)
	data := manifest.Marshal(manifest.Attribute{Name: manifest.AttrClassPath, Value: long})

	for _, line := range strings.Split(string(data), "\r\n") {
		assert.LessOrEqual(t, len(line), 72)
	}

	m, err := manifest.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, long, m.Get(manifest.AttrClassPath))
	assert.Len(t, m.ClassPath(), 10)
}

func TestNilManifest(t *testing.T) {
	var m *manifest.Manifest
	assert.Empty(t, m.ClassPath())
	assert.Empty(t, m.AutomaticModuleName())
}
