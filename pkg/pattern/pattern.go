// Package pattern parses module source path values. A value lists path
// templates separated by the path list delimiter. A template either names
// a directory of modules, or holds one "*" segment standing for the module
// directory, as in src/*/share/classes. Brace groups such as
// src/{linux,share}/* expand before wildcards are looked at.
package pattern

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/modname"
	"github.com/arthur-debert/pathfinder/pkg/types"
)

// Wildcard marks the module directory in a template
const Wildcard = "*"

// Delimiter joins several option values carried by one setting
const Delimiter = "\x00"

// Template is one expanded path template. The module directories are the
// sub-directories of Prefix; Suffix, when set, is appended to each.
type Template struct {
	Prefix string
	Suffix string
}

func (t Template) String() string {
	if t.Suffix == "" {
		return filepath.Join(t.Prefix, Wildcard)
	}
	return filepath.Join(t.Prefix, Wildcard, t.Suffix)
}

// Candidate is a possible module found by expanding a template
type Candidate struct {
	Name string
	Path string
}

// ExpandBraces expands every brace group of s, left to right, keeping the
// order in which alternatives are written. Groups may nest.
func ExpandBraces(s string) ([]string, error) {
	var out []string
	stack := []string{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		open, end, alts, err := firstGroup(cur)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid pattern %q", s)
		}
		if open < 0 {
			out = append(out, cur)
			continue
		}
		prefix, suffix := cur[:open], cur[end+1:]
		for i := len(alts) - 1; i >= 0; i-- {
			stack = append(stack, prefix+alts[i]+suffix)
		}
	}
	return out, nil
}

// firstGroup locates the first top level brace group of s and splits its
// body on top level commas. open is -1 when s has no group. Braces after
// the group are checked when the expanded suffix is visited.
func firstGroup(s string) (open, end int, alts []string, err error) {
	open = -1
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
			if depth == 1 {
				open = i
				start = i + 1
			}
		case ',':
			if depth == 1 {
				alts = append(alts, s[start:i])
				start = i + 1
			}
		case '}':
			if depth == 0 {
				return 0, 0, nil, errors.New(errors.ErrPatternInvalid, "mismatched braces")
			}
			depth--
			if depth == 0 {
				return open, i, append(alts, s[start:i]), nil
			}
		}
	}
	if depth > 0 {
		return 0, 0, nil, errors.New(errors.ErrPatternInvalid, "mismatched braces")
	}
	return -1, 0, nil, nil
}

// ParseTemplate validates one brace-free template. A template without a
// wildcard names a directory whose sub-directories are modules.
func ParseTemplate(seg string) (Template, error) {
	mark := strings.Index(seg, Wildcard)
	if mark < 0 {
		return Template{Prefix: filepath.Clean(seg)}, nil
	}
	if mark == 0 || !isSeparator(seg[mark-1]) {
		return Template{}, errors.Newf(errors.ErrPatternInvalid, "illegal use of %s in %s", Wildcard, seg)
	}
	t := Template{Prefix: filepath.Clean(seg[:mark-1])}
	end := mark + 1
	if end == len(seg) {
		return t, nil
	}
	if !isSeparator(seg[end]) || strings.Contains(seg[end:], Wildcard) {
		return Template{}, errors.Newf(errors.ErrPatternInvalid, "illegal use of %s in %s", Wildcard, seg)
	}
	if suffix := strings.Trim(seg[end+1:], `/\`); suffix != "" {
		t.Suffix = filepath.Clean(suffix)
	}
	return t, nil
}

func isSeparator(c byte) bool {
	return c == '/' || c == filepath.Separator
}

// Parse expands and validates a whole pattern value. Nothing touches the
// filesystem, so syntax errors surface before any directory is read.
func Parse(value string) ([]Template, error) {
	var out []Template
	for _, elem := range strings.Split(value, string(os.PathListSeparator)) {
		if elem == "" {
			continue
		}
		expanded, err := ExpandBraces(elem)
		if err != nil {
			return nil, err
		}
		for _, seg := range expanded {
			t, err := ParseTemplate(seg)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}
	return out, nil
}

// Candidates lists the sub-directories of the template prefix, in name
// order, with the suffix applied. Candidates whose path is not a directory
// are left out.
func (t Template) Candidates(fs types.FS) ([]Candidate, error) {
	entries, err := fs.ReadDir(t.Prefix)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot list module source directory").WithPath(t.Prefix)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []Candidate
	for _, name := range names {
		p := filepath.Join(t.Prefix, name)
		if t.Suffix != "" {
			p = filepath.Join(p, t.Suffix)
		}
		if info, err := fs.Stat(p); err != nil || !info.IsDir() {
			continue
		}
		out = append(out, Candidate{Name: name, Path: p})
	}
	return out, nil
}

// Assignment is a module specific value of the form name=pathlist
type Assignment struct {
	Module string
	Paths  []string
}

// SplitAssignment decodes name=pathlist. ok is false when the text is not
// an assignment to a valid module name.
func SplitAssignment(text string) (Assignment, bool) {
	eq := strings.Index(text, "=")
	if eq <= 0 || !modname.IsValid(text[:eq]) {
		return Assignment{}, false
	}
	a := Assignment{Module: text[:eq]}
	for _, p := range strings.Split(text[eq+1:], string(os.PathListSeparator)) {
		if p != "" {
			a.Paths = append(a.Paths, p)
		}
	}
	return a, true
}

// Value is a decoded module source path setting: at most one pattern and
// any number of module specific assignments.
type Value struct {
	Pattern     string
	Assignments []Assignment
}

// Decode splits a setting on Delimiter into its pattern and assignments.
// Repeating a pattern, or a module, is an invalid input error.
func Decode(setting string) (Value, error) {
	var v Value
	seen := map[string]bool{}
	havePattern := false
	for _, part := range strings.Split(setting, Delimiter) {
		if part == "" {
			continue
		}
		if a, ok := SplitAssignment(part); ok {
			if seen[a.Module] {
				return Value{}, errors.Newf(errors.ErrInvalidInput, "repeated module source path for module %s", a.Module)
			}
			seen[a.Module] = true
			v.Assignments = append(v.Assignments, a)
			continue
		}
		if havePattern {
			return Value{}, errors.New(errors.ErrInvalidInput, "more than one module source path pattern")
		}
		havePattern = true
		v.Pattern = part
	}
	return v, nil
}

// Encode joins a value back into a single setting
func Encode(v Value) string {
	var parts []string
	if v.Pattern != "" {
		parts = append(parts, v.Pattern)
	}
	for _, a := range v.Assignments {
		parts = append(parts, a.Module+"="+strings.Join(a.Paths, string(os.PathListSeparator)))
	}
	return strings.Join(parts, Delimiter)
}
