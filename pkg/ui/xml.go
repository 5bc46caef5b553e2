package ui

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
)

// xmlRenderer writes each result as an indented XML document
type xmlRenderer struct {
	w io.Writer
}

func newXMLRenderer(w io.Writer) *xmlRenderer {
	return &xmlRenderer{w: w}
}

func (r *xmlRenderer) write(doc *etree.Document) error {
	doc.Indent(2)
	_, err := doc.WriteTo(r.w)
	return err
}

func newDocument(root string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc, doc.CreateElement(root)
}

func (r *xmlRenderer) RenderLocations(views []LocationView) error {
	doc, root := newDocument("locations")
	for _, v := range views {
		el := root.CreateElement("location")
		el.CreateAttr("name", v.Location)
		el.CreateAttr("kind", v.Kind)
		el.CreateAttr("explicit", strconv.FormatBool(v.Explicit))
		for _, e := range v.Entries {
			el.CreateElement("entry").SetText(e)
		}
	}
	return r.write(doc)
}

func (r *xmlRenderer) RenderFiles(view FilesView) error {
	doc, root := newDocument("files")
	root.CreateAttr("location", view.Location)
	root.CreateAttr("package", view.Package)
	for _, f := range view.Files {
		el := root.CreateElement("file")
		el.CreateAttr("name", f.Name)
		el.CreateAttr("kind", f.Kind)
		el.CreateAttr("origin", f.Origin)
		if f.BinaryName != "" {
			el.CreateAttr("binary-name", f.BinaryName)
		}
		el.CreateElement("path").SetText(f.Path)
		if f.Archive != "" {
			el.CreateElement("archive").SetText(f.Archive)
		}
		el.CreateElement("entry").SetText(f.Entry)
	}
	return r.write(doc)
}

func (r *xmlRenderer) RenderModules(view ModulesView) error {
	doc, root := newDocument("modules")
	root.CreateAttr("location", view.Location)
	for i, g := range view.Groups {
		group := root.CreateElement("group")
		group.CreateAttr("index", strconv.Itoa(i))
		for _, m := range g {
			el := group.CreateElement("module")
			el.CreateAttr("name", m.Name)
			el.CreateAttr("location", m.Location)
			el.CreateAttr("explicit", strconv.FormatBool(m.Explicit))
			for _, p := range m.Paths {
				el.CreateElement("path").SetText(p)
			}
		}
	}
	return r.write(doc)
}

func (r *xmlRenderer) RenderError(err error) error {
	doc, root := newDocument("error")
	root.SetText(err.Error())
	return r.write(doc)
}
