package ui

import (
	_ "embed"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/pathfinder/pkg/errors"
)

//go:embed styles.yaml
var stylesYAML []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

// StylesConfig represents the complete styles configuration
type StylesConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Styles maps semantic names to lipgloss styles bound to one output
type Styles struct {
	registry map[string]lipgloss.Style
	plain    bool
}

// LoadStyles builds styles for w from the embedded definitions. plain
// styles render text unchanged.
func LoadStyles(w io.Writer, plain bool) (*Styles, error) {
	var cfg StylesConfig
	if err := yaml.Unmarshal(stylesYAML, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	renderer := lipgloss.NewRenderer(w)
	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	s := &Styles{registry: make(map[string]lipgloss.Style, len(cfg.Styles)), plain: plain}
	for name, def := range cfg.Styles {
		s.registry[name] = buildStyle(renderer, colors, def)
	}
	return s, nil
}

func buildStyle(r *lipgloss.Renderer, colors map[string]lipgloss.AdaptiveColor, def StyleDef) lipgloss.Style {
	style := r.NewStyle()
	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}
	if def.PaddingLeft > 0 || def.PaddingRight > 0 {
		style = style.Padding(0, def.PaddingRight, 0, def.PaddingLeft)
	}
	return style
}

// Get returns the named style, an empty style when unknown
func (s *Styles) Get(name string) lipgloss.Style {
	if style, ok := s.registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Render applies the named style to text
func (s *Styles) Render(name, text string) string {
	if s.plain {
		return text
	}
	return s.Get(name).Render(text)
}
