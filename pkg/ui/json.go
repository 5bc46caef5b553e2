package ui

import (
	"encoding/json"
	"io"
)

// jsonRenderer provides JSON output for machine consumption
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(w io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

func (r *jsonRenderer) RenderLocations(views []LocationView) error {
	return r.encoder.Encode(views)
}

func (r *jsonRenderer) RenderFiles(view FilesView) error {
	return r.encoder.Encode(view)
}

func (r *jsonRenderer) RenderModules(view ModulesView) error {
	return r.encoder.Encode(view)
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}
