// Package diagnostics carries non-fatal path and module problems from the
// resolution engine to whoever drives it. Resolution never aborts on a bad
// path element; it reports here and carries on.
package diagnostics

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/pathfinder/pkg/logging"
)

// Severity of a diagnostic
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Category groups warnings the way a compiler's lint switches would
type Category string

const (
	CategoryPath    Category = "path"
	CategoryOptions Category = "options"
	CategoryModule  Category = "module"
)

// Stable diagnostic keys
const (
	KeyPathElementNotFound    = "path.element.not.found"
	KeyUnexpectedArchiveFile  = "unexpected.archive.file"
	KeyUnexpectedFile         = "unexpected.file"
	KeyNoArchiveSupport       = "no.archive.support"
	KeyErrorReadingFile       = "error.reading.file"
	KeyDirElementNotFound     = "dir.path.element.not.found"
	KeyDirElementNotDirectory = "dir.path.element.not.directory"
	KeyBadModuleDescriptor    = "bad.module.descriptor"
	KeyCantDeriveModuleName   = "cant.derive.module.name"
	KeyCantReadFile           = "cant.read.file"
	KeyInvalidPath            = "invalid.path"
	KeyInvalidPatchArgument   = "invalid.patch.argument"
)

// Diagnostic is one reported problem
type Diagnostic struct {
	Severity Severity
	Category Category
	Key      string
	Path     string
	Err      error
}

// String renders the diagnostic for humans
func (d Diagnostic) String() string {
	msg := d.Key
	if d.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, d.Path)
	}
	if d.Err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, d.Err)
	}
	if d.Category != "" {
		return fmt.Sprintf("%s [%s] %s", d.Severity, d.Category, msg)
	}
	return fmt.Sprintf("%s %s", d.Severity, msg)
}

// Sink receives diagnostics
type Sink interface {
	Report(d Diagnostic)
}

// Warn reports a warning for path in the given category
func Warn(s Sink, category Category, key, path string) {
	if s == nil {
		return
	}
	s.Report(Diagnostic{Severity: SeverityWarning, Category: category, Key: key, Path: path})
}

// WarnErr is Warn with the error that caused the warning
func WarnErr(s Sink, category Category, key, path string, err error) {
	if s == nil {
		return
	}
	s.Report(Diagnostic{Severity: SeverityWarning, Category: category, Key: key, Path: path, Err: err})
}

// Error reports an error tied to path
func Error(s Sink, key, path string, err error) {
	if s == nil {
		return
	}
	s.Report(Diagnostic{Severity: SeverityError, Key: key, Path: path, Err: err})
}

// LogSink forwards diagnostics to the structured logger
type LogSink struct{}

// Report implements Sink
func (LogSink) Report(d Diagnostic) {
	logger := logging.GetLogger("diagnostics")
	ev := logger.Warn()
	if d.Severity == SeverityError {
		ev = logger.Error()
	}
	ev.Str("key", d.Key).
		Str("category", string(d.Category)).
		Str("path", d.Path).
		Err(d.Err).
		Msg("Resolution diagnostic")
}

// Collector records every diagnostic it receives
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Report implements Sink
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// All returns a copy of the collected diagnostics in report order
func (c *Collector) All() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Keys returns the keys of the collected diagnostics in report order
func (c *Collector) Keys() []string {
	all := c.All()
	keys := make([]string, len(all))
	for i, d := range all {
		keys[i] = d.Key
	}
	return keys
}

// Errors counts diagnostics with error severity
func (c *Collector) Errors() int {
	n := 0
	for _, d := range c.All() {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Reset drops everything collected so far
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Multi fans a diagnostic out to several sinks
type Multi []Sink

// Report implements Sink
func (m Multi) Report(d Diagnostic) {
	for _, s := range m {
		if s != nil {
			s.Report(d)
		}
	}
}
