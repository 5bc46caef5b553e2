// Package config loads pathfinder configuration.
//
// Sources are layered, later ones winning: the embedded defaults, the user
// file (pathfinder.toml in the XDG config directory, or an explicit path),
// the CLASSPATH environment variable, PATHFINDER_<SECTION>_<KEY> variables
// and finally programmatic overrides.
package config
