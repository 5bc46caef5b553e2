// Package registry provides a generic, thread-safe registry keyed by
// name. The module table indexes its module locations with it and the
// option table registers its handlers with it.
package registry
