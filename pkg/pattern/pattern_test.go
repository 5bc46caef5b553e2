package pattern_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/pattern"
	"github.com/arthur-debert/pathfinder/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandBraces(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "no braces", input: "src/*/classes", want: []string{"src/*/classes"}},
		{name: "single group", input: "src/{a,b}/x", want: []string{"src/a/x", "src/b/x"}},
		{name: "two groups", input: "{a,b}/{c,d}", want: []string{"a/c", "a/d", "b/c", "b/d"}},
		{name: "nested", input: "x{a,{b,c}d}y", want: []string{"xay", "xbdy", "xcdy"}},
		{name: "empty alternative", input: "src/{,gen/}*", want: []string{"src/*", "src/gen/*"}},
		{name: "empty group", input: "a{}b", want: []string{"ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pattern.ExpandBraces(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandBracesMismatched(t *testing.T) {
	for _, input := range []string{"{a,b", "a}b", "{a}}", "{{a}", "x{a}y}"} {
		t.Run(input, func(t *testing.T) {
			_, err := pattern.ExpandBraces(input)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
		})
	}
}

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		seg     string
		want    pattern.Template
		wantErr bool
	}{
		{seg: "src", want: pattern.Template{Prefix: "src"}},
		{seg: "src/*", want: pattern.Template{Prefix: "src"}},
		{seg: "src/*/share/classes", want: pattern.Template{Prefix: "src", Suffix: filepath.FromSlash("share/classes")}},
		{seg: "src/*/", want: pattern.Template{Prefix: "src"}},
		{seg: "*/classes", wantErr: true},
		{seg: "src/mod*/classes", wantErr: true},
		{seg: "src/*mod/classes", wantErr: true},
		{seg: "src/*/x/*", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.seg, func(t *testing.T) {
			got, err := pattern.ParseTemplate(tt.seg)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	sep := string(os.PathListSeparator)
	got, err := pattern.Parse("src/{a,b}/*/classes" + sep + sep + "lib")
	require.NoError(t, err)
	assert.Equal(t, []pattern.Template{
		{Prefix: filepath.FromSlash("src/a"), Suffix: "classes"},
		{Prefix: filepath.FromSlash("src/b"), Suffix: "classes"},
		{Prefix: "lib"},
	}, got)

	_, err = pattern.Parse("ok" + sep + "src/{a")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
}

func TestCandidates(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("src", map[string]string{
		"mod.a/share/classes/module-info.java": "module mod.a {}",
		"mod.b/share/classes/module-info.java": "module mod.b {}",
		"mod.c/unix/classes/X.java":            "class X {}",
		"README":                               "not a module",
	})

	tmpl, err := pattern.ParseTemplate("src/*/share/classes")
	require.NoError(t, err)
	got, err := tmpl.Candidates(env.FS)
	require.NoError(t, err)
	assert.Equal(t, []pattern.Candidate{
		{Name: "mod.a", Path: filepath.FromSlash("src/mod.a/share/classes")},
		{Name: "mod.b", Path: filepath.FromSlash("src/mod.b/share/classes")},
	}, got)

	all, err := pattern.Template{Prefix: "src"}.Candidates(env.FS)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = pattern.Template{Prefix: "missing"}.Candidates(env.FS)
	assert.Equal(t, "missing", errors.PathOf(err))
}

func TestDecode(t *testing.T) {
	sep := string(os.PathListSeparator)
	v, err := pattern.Decode("src/*" + pattern.Delimiter + "m.one=a" + sep + "b" + pattern.Delimiter + "m.two=c")
	require.NoError(t, err)
	assert.Equal(t, "src/*", v.Pattern)
	assert.Equal(t, []pattern.Assignment{
		{Module: "m.one", Paths: []string{"a", "b"}},
		{Module: "m.two", Paths: []string{"c"}},
	}, v.Assignments)

	round, err := pattern.Decode(pattern.Encode(v))
	require.NoError(t, err)
	assert.Equal(t, v, round)

	_, err = pattern.Decode("a" + pattern.Delimiter + "b")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = pattern.Decode("m=a" + pattern.Delimiter + "m=b")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	v, err = pattern.Decode("1bad=x")
	require.NoError(t, err)
	assert.Equal(t, "1bad=x", v.Pattern, "not a module name, so not an assignment")
}
