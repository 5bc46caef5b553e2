package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/pathfinder/pkg/config"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/paths"
	"github.com/arthur-debert/pathfinder/pkg/searchpath"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// isolate points the config directory at an empty temp dir and clears the
// variables a developer machine may carry
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)
	t.Setenv(config.EnvClassPath, "")
	for _, kv := range os.Environ() {
		name := strings.SplitN(kv, "=", 2)[0]
		if strings.HasPrefix(name, config.EnvPrefix) && name != paths.EnvConfigDir {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, paths.ConfigFileName)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadUserFile(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		isolate(t)
		p := writeConfig(t, t.TempDir(), `
[listing]
order = "reverse"

[platform]
ext_dirs = ["lib/ext", "lib/more"]
`)
		cfg, err := config.Load(p)
		require.NoError(t, err)
		assert.Equal(t, types.OrderReverse, cfg.Listing.Order)
		assert.Equal(t, []string{"lib/ext", "lib/more"}, cfg.Platform.ExtDirs)
		assert.True(t, cfg.Archives.Enabled, "untouched keys keep their defaults")
	})

	t.Run("config directory", func(t *testing.T) {
		dir := isolate(t)
		writeConfig(t, dir, `
[system]
home = "/opt/jdk"
`)
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, "/opt/jdk", cfg.System.Home)
	})

	t.Run("missing explicit path", func(t *testing.T) {
		isolate(t)
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed file", func(t *testing.T) {
		isolate(t)
		p := writeConfig(t, t.TempDir(), "[listing\norder = ")
		_, err := config.Load(p)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestEnvironmentOverrides(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
[listing]
order = "reverse"
`)
	list := searchpath.Join([]string{"a.jar", "classes"})
	t.Setenv(config.EnvClassPath, list)
	t.Setenv("PATHFINDER_LISTING_ORDER", "none")
	t.Setenv("PATHFINDER_ARCHIVES_ENABLED", "false")
	t.Setenv("PATHFINDER_ARCHIVES_PATTERNS", "*.jar,*.war")
	t.Setenv("PATHFINDER_SEARCH_PATH_EMPTY_ELEMENT", "drop")
	t.Setenv("PATHFINDER_NOT_A_KEY", "ignored")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, types.OrderNone, cfg.Listing.Order, "environment beats the file")
	assert.False(t, cfg.Archives.Enabled)
	assert.Equal(t, []string{"*.jar", "*.war"}, cfg.Archives.Patterns)
	assert.Equal(t, config.EmptyDrop, cfg.SearchPath.EmptyElement)
	assert.Equal(t, list, cfg.Defaults.ClassPath)
}

func TestLoadWithOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PATHFINDER_LISTING_ORDER", "none")

	cfg, err := config.LoadWithOverrides("", map[string]interface{}{
		"listing.order":             "reverse",
		"filesystem.case_sensitive": "false",
	})
	require.NoError(t, err)
	assert.Equal(t, types.OrderReverse, cfg.Listing.Order)
	assert.False(t, cfg.Filesystem.CaseSensitive.Resolve())
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name     string
		override map[string]interface{}
	}{
		{"unknown order", map[string]interface{}{"listing.order": "size"}},
		{"unknown empty element", map[string]interface{}{"search_path.empty_element": "skip"}},
		{"unknown case mode", map[string]interface{}{"filesystem.case_sensitive": "sometimes"}},
		{"bad archive pattern", map[string]interface{}{"archives.patterns": []string{"["}}},
		{"empty image", map[string]interface{}{"system.image": ""}},
		{"empty descriptor", map[string]interface{}{"modules.descriptor": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := config.LoadWithOverrides("", tt.override)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
		})
	}
}

func TestCaseSensitivity(t *testing.T) {
	assert.True(t, config.CaseSensitive.Resolve())
	assert.False(t, config.CaseInsensitive.Resolve())
	// booleans in TOML arrive through weak decoding
	assert.True(t, config.CaseSensitivity("1").Resolve())
	assert.False(t, config.CaseSensitivity("0").Resolve())
}

func TestSettings(t *testing.T) {
	cfg := config.Default()
	cfg.Defaults.ClassPath = "libs"
	cfg.System.Home = "/opt/jdk"
	cfg.Platform.ExtDirs = []string{"lib/ext", "lib/more"}

	s := cfg.Settings("")
	assert.Equal(t, searchpath.CurrentDirectory, s.EmptyElement)
	assert.True(t, s.WarnMissing)
	assert.True(t, s.ExpandClassPath)
	assert.Equal(t, "libs", s.DefaultClassPath)
	assert.Equal(t, "/opt/jdk", s.SystemHome)
	assert.Equal(t, searchpath.Join([]string{"lib/ext", "lib/more"}), s.ExtDirs)
	assert.Empty(t, s.EndorsedDirs)
	assert.Equal(t, "module-info.toml", s.DescriptorName)
	assert.Equal(t, "module-info.java", s.SourceDescriptorName)

	assert.Equal(t, "/elsewhere", cfg.Settings("/elsewhere").SystemHome)

	cfg.SearchPath.EmptyElement = config.EmptyDrop
	assert.Empty(t, cfg.Settings("").EmptyElement)
}

func TestFileManagerOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Archives.Enabled = false
	cfg.Archives.Patterns = []string{"*.war"}
	cfg.Listing.Order = types.OrderReverse
	cfg.Filesystem.CaseSensitive = config.CaseInsensitive

	opts, err := cfg.FileManagerOptions("/opt/jdk")
	require.NoError(t, err)
	assert.True(t, opts.NoArchives)
	assert.False(t, opts.CaseSensitive)
	assert.Equal(t, types.OrderReverse, opts.Order)
	assert.Equal(t, "/opt/jdk", opts.Settings.SystemHome)
	require.NotNil(t, opts.Matcher)
	assert.True(t, opts.Matcher.IsArchive("app.war"))
	assert.False(t, opts.Matcher.IsArchive("app.jar"))
	assert.True(t, opts.Matcher.IsModuleFile("java.base.jmod"))

	cfg.Archives.ModulePatterns = []string{"[bad"}
	_, err = cfg.FileManagerOptions("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestGenerateConfigContent(t *testing.T) {
	content := config.GenerateConfigContent()
	assert.Contains(t, content, "[listing]")
	assert.Contains(t, content, `# order = "name"`)
	assert.NotContains(t, content, "\norder = ")

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), line)
	}
}

func TestGlobalConfig(t *testing.T) {
	config.Initialize(nil)
	assert.Equal(t, config.Default(), config.Get())

	cfg := config.Default()
	cfg.Listing.Order = types.OrderNone
	config.Initialize(cfg)
	assert.Same(t, cfg, config.Get())
	t.Cleanup(func() { config.Initialize(nil) })
}
