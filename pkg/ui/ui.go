// Package ui renders command results as styled text, plain text, JSON,
// YAML or XML.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/pathfinder/pkg/errors"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	RenderLocations(views []LocationView) error
	RenderFiles(view FilesView) error
	RenderModules(view ModulesView) error
	RenderError(err error) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return newTextRenderer(output, true)
	case FormatText:
		return newTextRenderer(output, false)
	case FormatJSON:
		return newJSONRenderer(output), nil
	case FormatYAML:
		return newYAMLRenderer(output), nil
	case FormatXML:
		return newXMLRenderer(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
