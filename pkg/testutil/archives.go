package testutil

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/pathfinder/pkg/descriptor"
	"github.com/klauspost/compress/zip"
)

// DescriptorFileName is the descriptor name fixtures are written with
const DescriptorFileName = descriptor.DefaultFileName

// Descriptor renders a minimal descriptor for name
func Descriptor(t *testing.T, name string) string {
	t.Helper()
	data, err := descriptor.Marshal(&descriptor.Descriptor{Name: name})
	if err != nil {
		t.Fatalf("Failed to encode descriptor for %s: %v", name, err)
	}
	return string(data)
}

// BuildZip encodes entries as a zip archive. Names ending in "/" become
// directory entries; entries are written in sorted order.
func BuildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		if strings.HasSuffix(name, "/") {
			if _, err := zw.Create(name); err != nil {
				t.Fatalf("Failed to add directory %s: %v", name, err)
			}
			continue
		}
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
		if _, err := w.Write([]byte(entries[name])); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish archive: %v", err)
	}
	return buf.Bytes()
}
