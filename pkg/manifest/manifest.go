// Package manifest reads the main section of an archive manifest.
package manifest

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/arthur-debert/pathfinder/pkg/errors"
)

// Path is the location of the manifest inside an archive
const Path = "META-INF/MANIFEST.MF"

// Attribute names used during resolution
const (
	AttrClassPath           = "Class-Path"
	AttrAutomaticModuleName = "Automatic-Module-Name"
	AttrManifestVersion     = "Manifest-Version"
)

const maxLineLength = 72

// Manifest holds the main attributes. Names are case insensitive.
type Manifest struct {
	main map[string]string
}

// Attribute is one name/value pair
type Attribute struct {
	Name  string
	Value string
}

// Parse reads the main section of a manifest. Continuation lines start
// with a single space; the section ends at the first blank line.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{main: make(map[string]string)}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	var current string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") {
			if current == "" {
				return nil, errors.Newf(errors.ErrArchiveInvalid, "manifest line %d: continuation without attribute", lineNo)
			}
			m.main[current] += line[1:]
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || name == "" {
			return nil, errors.Newf(errors.ErrArchiveInvalid, "manifest line %d: missing ':'", lineNo)
		}
		current = strings.ToLower(name)
		m.main[current] = strings.TrimPrefix(value, " ")
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrArchiveInvalid, "cannot read manifest")
	}
	return m, nil
}

// Get returns the value of a main attribute, empty when absent
func (m *Manifest) Get(name string) string {
	if m == nil {
		return ""
	}
	return m.main[strings.ToLower(name)]
}

// ClassPath returns the whitespace separated Class-Path tokens
func (m *Manifest) ClassPath() []string {
	return strings.Fields(m.Get(AttrClassPath))
}

// AutomaticModuleName returns the declared automatic module name
func (m *Manifest) AutomaticModuleName() string {
	return strings.TrimSpace(m.Get(AttrAutomaticModuleName))
}

// Marshal renders attributes as a manifest main section, wrapping long
// lines the way archive tools do.
func Marshal(attrs ...Attribute) []byte {
	var buf bytes.Buffer
	writeLine(&buf, AttrManifestVersion+": 1.0")
	for _, a := range attrs {
		if strings.EqualFold(a.Name, AttrManifestVersion) {
			continue
		}
		writeLine(&buf, a.Name+": "+a.Value)
	}
	buf.WriteString("\r\n")
	return buf.Bytes()
}

func writeLine(buf *bytes.Buffer, line string) {
	limit := maxLineLength
	for len(line) > limit {
		buf.WriteString(line[:limit])
		buf.WriteString("\r\n ")
		line = line[limit:]
		limit = maxLineLength - 1
	}
	buf.WriteString(line)
	buf.WriteString("\r\n")
}
