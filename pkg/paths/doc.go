// Package paths provides centralized path handling for pathfinder.
//
// It locates the system home (the platform installation holding the
// module image and the boot, ext and endorsed directories), the XDG
// directories used for configuration and logs, and offers the small
// normalisation and containment helpers the rest of the code shares.
//
// # Environment Variables
//
//   - PATHFINDER_HOME: the system home (default: derived from the executable)
//   - PATHFINDER_CONFIG_DIR: override the config directory (default: $XDG_CONFIG_HOME/pathfinder)
//
// # System Home Discovery
//
// When no home is given explicitly:
//
//  1. PATHFINDER_HOME, when set
//  2. the parent of the directory holding the executable, when it looks
//     like a platform home (it has lib/modules or lib/boot)
//  3. none; locations that depend on the home stay empty
//
// # Usage
//
//	p, err := paths.New("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	home := p.SystemHome()
//	inside := paths.ContainsPath("/opt/jdk", "/opt/jdk/lib/modules") // true
package paths
