// Package filemanager is the front end of the resolution engine. A
// Manager owns the location registry, the container cache and the
// directory index, and answers the questions a compiler driver asks
// while it runs: which entries back a location, what files does a
// package hold, where does a named file come from and where should an
// output file go.
//
// A Manager is meant to be configured once and then queried. Mutating
// the same location from two goroutines at once is not supported.
package filemanager
