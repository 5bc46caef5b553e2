package config

import (
	"github.com/arthur-debert/pathfinder/pkg/archive"
	"github.com/arthur-debert/pathfinder/pkg/descriptor"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/fscache"
	"github.com/arthur-debert/pathfinder/pkg/image"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// Empty class path element policies
const (
	EmptyCurrent = "current"
	EmptyDrop    = "drop"
)

// CaseSensitivity selects how file names are compared
type CaseSensitivity string

const (
	CaseAuto        CaseSensitivity = "auto"
	CaseSensitive   CaseSensitivity = "true"
	CaseInsensitive CaseSensitivity = "false"
)

// Resolve turns the setting into a decision, probing the platform for auto
func (c CaseSensitivity) Resolve() bool {
	switch c {
	case CaseSensitive, "1":
		return true
	case CaseInsensitive, "0":
		return false
	}
	return fscache.DefaultCaseSensitive()
}

func (c CaseSensitivity) valid() bool {
	switch c {
	case CaseAuto, CaseSensitive, CaseInsensitive, "1", "0":
		return true
	}
	return false
}

// SearchPath controls how search path strings are turned into entries
type SearchPath struct {
	EmptyElement            string `koanf:"empty_element" json:"emptyElement" yaml:"emptyElement"`
	WarnMissing             bool   `koanf:"warn_missing" json:"warnMissing" yaml:"warnMissing"`
	ExpandManifestClassPath bool   `koanf:"expand_manifest_class_path" json:"expandManifestClassPath" yaml:"expandManifestClassPath"`
}

// Archives controls archive recognition
type Archives struct {
	Enabled        bool     `koanf:"enabled" json:"enabled" yaml:"enabled"`
	Patterns       []string `koanf:"patterns" json:"patterns" yaml:"patterns"`
	ModulePatterns []string `koanf:"module_patterns" json:"modulePatterns" yaml:"modulePatterns"`
}

// Listing controls the order of listed files
type Listing struct {
	Order types.Order `koanf:"order" json:"order" yaml:"order"`
}

// System locates the platform home and its module image
type System struct {
	Home  string `koanf:"home" json:"home" yaml:"home"`
	Image string `koanf:"image" json:"image" yaml:"image"`
}

// Modules names the descriptor files
type Modules struct {
	Descriptor       string `koanf:"descriptor" json:"descriptor" yaml:"descriptor"`
	SourceDescriptor string `koanf:"source_descriptor" json:"sourceDescriptor" yaml:"sourceDescriptor"`
}

// Filesystem holds filesystem behaviour
type Filesystem struct {
	CaseSensitive CaseSensitivity `koanf:"case_sensitive" json:"caseSensitive" yaml:"caseSensitive"`
}

// Platform holds the legacy platform class path directories, relative to
// the system home
type Platform struct {
	BootDir      string   `koanf:"boot_dir" json:"bootDir" yaml:"bootDir"`
	ExtDirs      []string `koanf:"ext_dirs" json:"extDirs" yaml:"extDirs"`
	EndorsedDirs []string `koanf:"endorsed_dirs" json:"endorsedDirs" yaml:"endorsedDirs"`
}

// Defaults holds fallback values for unset locations
type Defaults struct {
	ClassPath string `koanf:"class_path" json:"classPath" yaml:"classPath"`
}

// Config is the complete configuration
type Config struct {
	SearchPath SearchPath `koanf:"search_path" json:"searchPath" yaml:"searchPath"`
	Archives   Archives   `koanf:"archives" json:"archives" yaml:"archives"`
	Listing    Listing    `koanf:"listing" json:"listing" yaml:"listing"`
	System     System     `koanf:"system" json:"system" yaml:"system"`
	Modules    Modules    `koanf:"modules" json:"modules" yaml:"modules"`
	Filesystem Filesystem `koanf:"filesystem" json:"filesystem" yaml:"filesystem"`
	Platform   Platform   `koanf:"platform" json:"platform" yaml:"platform"`
	Defaults   Defaults   `koanf:"defaults" json:"defaults" yaml:"defaults"`
}

// Default returns the built-in configuration. It matches the embedded
// defaults file.
func Default() *Config {
	return &Config{
		SearchPath: SearchPath{
			EmptyElement:            EmptyCurrent,
			WarnMissing:             true,
			ExpandManifestClassPath: true,
		},
		Archives: Archives{
			Enabled:        true,
			Patterns:       append([]string(nil), archive.DefaultArchivePatterns...),
			ModulePatterns: append([]string(nil), archive.DefaultModulePatterns...),
		},
		Listing:    Listing{Order: types.OrderName},
		System:     System{Image: image.DefaultRelativePath},
		Modules:    Modules{Descriptor: descriptor.DefaultFileName, SourceDescriptor: descriptor.DefaultSourceFileName},
		Filesystem: Filesystem{CaseSensitive: CaseAuto},
		Platform:   Platform{BootDir: "lib/boot", ExtDirs: []string{}, EndorsedDirs: []string{}},
	}
}

// Validate checks values the decoder cannot
func (c *Config) Validate() error {
	switch c.SearchPath.EmptyElement {
	case EmptyCurrent, EmptyDrop:
	default:
		return errors.Newf(errors.ErrConfigValid, "search_path.empty_element must be %q or %q, got %q",
			EmptyCurrent, EmptyDrop, c.SearchPath.EmptyElement)
	}
	if !c.Listing.Order.Valid() {
		return errors.Newf(errors.ErrConfigValid, "unknown listing.order %q", c.Listing.Order)
	}
	if !c.Filesystem.CaseSensitive.valid() {
		return errors.Newf(errors.ErrConfigValid, "filesystem.case_sensitive must be auto, true or false, got %q",
			c.Filesystem.CaseSensitive)
	}
	if c.System.Image == "" {
		return errors.New(errors.ErrConfigValid, "system.image cannot be empty")
	}
	if c.Modules.Descriptor == "" || c.Modules.SourceDescriptor == "" {
		return errors.New(errors.ErrConfigValid, "module descriptor names cannot be empty")
	}
	if _, err := c.Matcher(); err != nil {
		return err
	}
	return nil
}

// Matcher builds the archive name matcher
func (c *Config) Matcher() (*archive.Matcher, error) {
	return archive.NewMatcher(c.Archives.Patterns, c.Archives.ModulePatterns)
}
