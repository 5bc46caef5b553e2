// Package modname validates module names and derives automatic module
// names from archive file names.
package modname

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
)

var (
	versionSuffix = regexp.MustCompile(`-(\d+(\.|$))`)
	nonAlnum      = regexp.MustCompile(`[^A-Za-z0-9]`)
	repeatedDots  = regexp.MustCompile(`\.{2,}`)
)

var keywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true, "_": true,
}

// IsValid reports whether name is a dot separated sequence of identifiers,
// none of them a reserved word.
func IsValid(name string) bool {
	if name == "" {
		return false
	}
	for _, seg := range strings.Split(name, ".") {
		if !relpath.IsIdentifier(seg) || keywords[seg] {
			return false
		}
	}
	return true
}

// Validate returns an error naming the problem when name is not valid
func Validate(name string) error {
	if !IsValid(name) {
		return errors.Newf(errors.ErrModuleNameInvalid, "invalid module name %q", name)
	}
	return nil
}

// DeriveAutomatic computes the module name of an archive that declares
// none. "foo-bar-1.2.3.jar" becomes "foo.bar".
func DeriveAutomatic(fileName string) (string, error) {
	name := strings.TrimSuffix(fileName, ".jar")

	if loc := versionSuffix.FindStringIndex(name); loc != nil {
		name = name[:loc[0]]
	}

	name = nonAlnum.ReplaceAllString(name, ".")
	name = repeatedDots.ReplaceAllString(name, ".")
	name = strings.Trim(name, ".")

	if name == "" {
		return "", errors.Newf(errors.ErrModuleNameInvalid, "cannot derive a module name from %q", fileName).
			WithDetail("file", fileName)
	}
	if !IsValid(name) {
		return "", errors.Newf(errors.ErrModuleNameInvalid, "derived module name %q is not valid", name).
			WithDetail("file", fileName)
	}
	return name, nil
}
