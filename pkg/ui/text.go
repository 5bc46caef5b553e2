package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// textRenderer writes human readable output, styled for terminals
type textRenderer struct {
	w      io.Writer
	styles *Styles
	styled bool
}

func newTextRenderer(w io.Writer, styled bool) (*textRenderer, error) {
	styles, err := LoadStyles(w, !styled)
	if err != nil {
		return nil, err
	}
	return &textRenderer{w: w, styles: styles, styled: styled}, nil
}

func (r *textRenderer) RenderLocations(views []LocationView) error {
	for _, v := range views {
		heading := r.styles.Render("Heading", v.Location)
		detail := v.Kind
		if v.Explicit {
			detail += ", " + r.styles.Render("Explicit", "explicit")
		}
		if _, err := fmt.Fprintf(r.w, "%s (%s)\n", heading, detail); err != nil {
			return err
		}
		if len(v.Entries) == 0 {
			if _, err := fmt.Fprintf(r.w, "  %s\n", r.styles.Render("Muted", "(unset)")); err != nil {
				return err
			}
			continue
		}
		for _, e := range v.Entries {
			if _, err := fmt.Fprintf(r.w, "  %s\n", r.styles.Render("Entry", e)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *textRenderer) RenderFiles(view FilesView) error {
	pkg := view.Package
	if pkg == "" {
		pkg = "(unnamed package)"
	}
	if _, err := fmt.Fprintf(r.w, "%s %s: %d file(s)\n",
		r.styles.Render("Heading", view.Location), pkg, len(view.Files)); err != nil {
		return err
	}
	for _, f := range view.Files {
		from := f.Entry
		if f.Origin != "file" {
			from = f.Origin + " " + from
		}
		if _, err := fmt.Fprintf(r.w, "  %s  %s\n", f.Name, r.styles.Render("Muted", from)); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) RenderModules(view ModulesView) error {
	if _, err := fmt.Fprintln(r.w, r.styles.Render("Heading", view.Location)); err != nil {
		return err
	}
	if len(view.Groups) == 0 {
		_, err := fmt.Fprintf(r.w, "  %s\n", r.styles.Render("Muted", "(no modules)"))
		return err
	}

	data := pterm.TableData{{"Group", "Module", "Paths", "Explicit"}}
	for i, g := range view.Groups {
		for _, m := range g {
			explicit := ""
			if m.Explicit {
				explicit = "yes"
			}
			data = append(data, []string{strconv.Itoa(i), m.Name, strings.Join(m.Paths, ", "), explicit})
		}
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(data)
	if !r.styled {
		table = table.WithStyle(pterm.NewStyle()).WithHeaderStyle(pterm.NewStyle()).WithSeparatorStyle(pterm.NewStyle())
	}
	out, err := table.Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.w, out)
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "%s %v\n", r.styles.Render("Error", "Error:"), err)
	return werr
}

// RenderDiagnostics writes a summary of views followed by one line per
// diagnostic. Nothing is written when views is empty.
func RenderDiagnostics(w io.Writer, styled bool, views []DiagnosticView) error {
	if len(views) == 0 {
		return nil
	}
	styles, err := LoadStyles(w, !styled)
	if err != nil {
		return err
	}

	warnings, errs := 0, 0
	for _, v := range views {
		if v.Severity == "error" {
			errs++
		} else {
			warnings++
		}
	}
	if _, err := fmt.Fprintf(w, "%d warning(s), %d error(s)\n", warnings, errs); err != nil {
		return err
	}

	for _, v := range views {
		label := styles.Render("Warning", v.Severity)
		if v.Severity == "error" {
			label = styles.Render("Error", v.Severity)
		}
		line := label
		if v.Category != "" {
			line += " [" + v.Category + "]"
		}
		line += " " + v.Key
		if v.Path != "" {
			line += ": " + v.Path
		}
		if v.Error != "" {
			line += " " + styles.Render("Muted", "("+v.Error+")")
		}
		if _, err := fmt.Fprintln(w, "  "+line); err != nil {
			return err
		}
	}
	return nil
}
