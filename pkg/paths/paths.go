package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/pathfinder/pkg/errors"
)

// Environment variable names
const (
	// EnvSystemHome names the platform home
	EnvSystemHome = "PATHFINDER_HOME"

	// EnvConfigDir overrides the XDG config directory for pathfinder
	EnvConfigDir = "PATHFINDER_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used below the XDG directories
	AppDirName = "pathfinder"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "pathfinder.toml"

	// LogFileName is the name of the log file
	LogFileName = "pathfinder.log"
)

// homeMarkers are the entries whose presence makes a directory look like
// a platform home
var homeMarkers = []string{
	filepath.Join("lib", "modules"),
	filepath.Join("lib", "boot"),
}

// Paths provides centralized path management for pathfinder
type Paths interface {
	SystemHome() string
	UsedFallback() bool
	ConfigDir() string
	ConfigFilePath() string
	StateDir() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
	IsInSystemHome(path string) (bool, error)
}

type paths struct {
	systemHome string
	// usedFallback is set when the home was derived from the executable
	usedFallback bool
	configDir    string
	stateDir     string
}

// New creates a Paths instance. An empty systemHome is discovered from
// the environment and the executable location.
func New(systemHome string) (Paths, error) {
	p := &paths{}

	if systemHome == "" {
		p.systemHome, p.usedFallback = findSystemHome()
	} else {
		p.systemHome = expandHome(systemHome)
	}
	if p.systemHome != "" {
		abs, err := filepath.Abs(p.systemHome)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for system home")
		}
		p.systemHome = abs
	}

	p.setupXDGDirs()
	return p, nil
}

func (p *paths) setupXDGDirs() {
	xdg.Reload()
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = expandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}
	p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
}

// findSystemHome returns the home named by PATHFINDER_HOME or, failing
// that, the platform home the running executable belongs to
func findSystemHome() (string, bool) {
	if home := os.Getenv(EnvSystemHome); home != "" {
		return expandHome(home), false
	}
	exe, err := os.Executable()
	if err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	candidate := filepath.Dir(filepath.Dir(exe))
	if LooksLikeHome(candidate) {
		return candidate, true
	}
	return "", false
}

// LooksLikeHome reports whether dir holds a module image or a boot
// directory
func LooksLikeHome(dir string) bool {
	for _, marker := range homeMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}
	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	// ~user is left alone
	return path
}

// ExpandHome expands a leading ~ in path
func ExpandHome(path string) string {
	return expandHome(path)
}

// SystemHome returns the platform home, empty when none was found
func (p *paths) SystemHome() string {
	return p.systemHome
}

// UsedFallback returns true if the home was derived from the executable
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigDir returns the configuration directory
func (p *paths) ConfigDir() string {
	return p.configDir
}

// ConfigFilePath returns the path of the user configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// StateDir returns the XDG state directory for pathfinder
func (p *paths) StateDir() string {
	return p.stateDir
}

// LogFilePath returns the path to the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}
	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path").WithPath(path)
	}
	return filepath.Clean(abs), nil
}

// IsInSystemHome checks if a path is within the system home
func (p *paths) IsInSystemHome(path string) (bool, error) {
	if p.systemHome == "" {
		return false, nil
	}
	normalized, err := p.NormalizePath(path)
	if err != nil {
		return false, err
	}
	return ContainsPath(p.systemHome, normalized), nil
}
