// Package testutil builds fixtures for resolution tests.
//
// Key components:
//   - TestEnvironment: a root directory on an in-memory or isolated real
//     filesystem, with writers for trees, class archives, modular archives,
//     packaged module files and module images
//   - MemoryFS: in-memory filesystem with symlinks, error injection and
//     access counters
//   - BuildZip / Descriptor: raw archive and module descriptor encoders
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated when the code under test goes through the OS, such as
//     the command line
//   - All test data should be defined inline, not in external files
package testutil
