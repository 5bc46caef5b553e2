package ui

import (
	"io"

	"gopkg.in/yaml.v3"
)

// yamlRenderer writes one YAML document per result
type yamlRenderer struct {
	w io.Writer
}

func newYAMLRenderer(w io.Writer) *yamlRenderer {
	return &yamlRenderer{w: w}
}

func (r *yamlRenderer) encode(v interface{}) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (r *yamlRenderer) RenderLocations(views []LocationView) error {
	return r.encode(views)
}

func (r *yamlRenderer) RenderFiles(view FilesView) error {
	return r.encode(view)
}

func (r *yamlRenderer) RenderModules(view ModulesView) error {
	return r.encode(view)
}

func (r *yamlRenderer) RenderError(err error) error {
	return r.encode(map[string]string{"error": err.Error()})
}
