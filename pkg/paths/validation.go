package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pathfinder/pkg/errors"
)

// ValidatePath rejects paths no filesystem can hold
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}
	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}
	// common filesystem limit
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}
	return nil
}

// RelativePath returns the relative path from base to target.
// Returns an error if the paths cannot be made relative.
func RelativePath(base, target string) (string, error) {
	base = cleanPath(base)
	target = cleanPath(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess,
			"cannot determine relative path from %s to %s", base, target)
	}
	return rel, nil
}

// ContainsPath checks if child is parent or lies below it.
// Both paths are normalized before comparison.
func ContainsPath(parent, child string) bool {
	rel, err := filepath.Rel(cleanPath(parent), cleanPath(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// IsStrictlyWithin checks if child lies below parent and is not parent
// itself
func IsStrictlyWithin(parent, child string) bool {
	return ContainsPath(parent, child) && cleanPath(parent) != cleanPath(child)
}

func cleanPath(path string) string {
	return filepath.Clean(expandHome(path))
}
