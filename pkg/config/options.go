package config

import (
	"github.com/arthur-debert/pathfinder/pkg/filemanager"
	"github.com/arthur-debert/pathfinder/pkg/locations"
	"github.com/arthur-debert/pathfinder/pkg/searchpath"
)

// Settings returns the location settings. systemHome replaces the
// configured home when not empty.
func (c *Config) Settings(systemHome string) locations.Settings {
	s := locations.DefaultSettings()
	switch c.SearchPath.EmptyElement {
	case EmptyDrop:
		s.EmptyElement = ""
	default:
		s.EmptyElement = searchpath.CurrentDirectory
	}
	s.WarnMissing = c.SearchPath.WarnMissing
	s.ExpandClassPath = c.SearchPath.ExpandManifestClassPath
	s.DefaultClassPath = c.Defaults.ClassPath

	s.SystemHome = c.System.Home
	if systemHome != "" {
		s.SystemHome = systemHome
	}
	s.ImagePath = c.System.Image
	s.BootDir = c.Platform.BootDir
	s.ExtDirs = searchpath.Join(c.Platform.ExtDirs)
	s.EndorsedDirs = searchpath.Join(c.Platform.EndorsedDirs)

	s.DescriptorName = c.Modules.Descriptor
	s.SourceDescriptorName = c.Modules.SourceDescriptor
	return s
}

// FileManagerOptions returns the options for a file manager on the OS
// filesystem
func (c *Config) FileManagerOptions(systemHome string) (filemanager.Options, error) {
	matcher, err := c.Matcher()
	if err != nil {
		return filemanager.Options{}, err
	}
	return filemanager.Options{
		CaseSensitive: c.Filesystem.CaseSensitive.Resolve(),
		NoArchives:    !c.Archives.Enabled,
		Order:         c.Listing.Order,
		Matcher:       matcher,
		Settings:      c.Settings(systemHome),
	}, nil
}
