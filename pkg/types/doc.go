// Package types defines the small value types and interfaces shared by the
// resolution engine: the filesystem abstraction every component probes
// through, file kinds and kind sets used to filter listings, and the
// listing order policy.
package types
