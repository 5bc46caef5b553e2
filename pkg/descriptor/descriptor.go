// Package descriptor reads compiled module descriptors.
//
// A descriptor is a small TOML document stored at the root of an exploded
// module or archive (and under classes/ in a packaged module file):
//
//	name     = "com.example.app"
//	version  = "1.4.0"
//	requires = ["java.base", "com.example.util"]
//	exports  = ["com.example.app.api"]
package descriptor

import (
	"bytes"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/modname"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the descriptor name used when none is configured
const DefaultFileName = "module-info.toml"

// DefaultSourceFileName marks a module root on the module source path
const DefaultSourceFileName = "module-info.java"

// Descriptor is a decoded module descriptor
type Descriptor struct {
	Name     string   `toml:"name"`
	Version  string   `toml:"version,omitempty"`
	Requires []string `toml:"requires,omitempty"`
	Exports  []string `toml:"exports,omitempty"`
}

// Parse decodes and validates a descriptor
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(err, errors.ErrDescriptorInvalid, "cannot decode module descriptor")
	}
	if d.Name == "" {
		return nil, errors.New(errors.ErrDescriptorInvalid, "module descriptor has no name")
	}
	if err := modname.Validate(d.Name); err != nil {
		return nil, errors.Wrap(err, errors.ErrDescriptorInvalid, "module descriptor names an invalid module")
	}
	return &d, nil
}

// Marshal encodes d
func Marshal(d *Descriptor) ([]byte, error) {
	data, err := toml.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode module descriptor")
	}
	return data, nil
}
