// Package locations holds the state of every named location: the class
// path, the module path, output directories, the system module image and
// the per-module overrides. Each location is served by one handler
// variant; options are routed to handlers through a static table.
//
// Module-oriented locations own a module table that maps module names to
// module locations, and paths back to the module that contains them. The
// table is built by scanning the location's entries on first use and is
// mutated in place by explicit per-module settings.
//
// Every mutation bumps a per-location epoch. Readers that cache data
// derived from a location compare epochs instead of being told to flush.
package locations
