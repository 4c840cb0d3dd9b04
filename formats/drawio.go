// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/lecrapouille/tpne-core"
)

// mxFile, mxGraphModel, mxRoot and mxCell model the small subset of
// draw.io's mxGraph XML schema spec.md §4.7 calls for: one <mxCell> per
// node or arc, geometry copied from (x, y), style strings selecting
// ellipse (place) or rectangle (transition).
type mxFile struct {
	XMLName xml.Name     `xml:"mxfile"`
	Model   mxGraphModel `xml:"diagram>mxGraphModel"`
}

type mxGraphModel struct {
	Root mxRoot `xml:"root"`
}

type mxRoot struct {
	Cells []mxCell `xml:"mxCell"`
}

type mxCell struct {
	ID       string      `xml:"id,attr"`
	Value    string      `xml:"value,attr,omitempty"`
	Style    string      `xml:"style,attr,omitempty"`
	Vertex   string      `xml:"vertex,attr,omitempty"`
	Edge     string      `xml:"edge,attr,omitempty"`
	Parent   string      `xml:"parent,attr,omitempty"`
	Source   string      `xml:"source,attr,omitempty"`
	Target   string      `xml:"target,attr,omitempty"`
	Geometry *mxGeometry `xml:"mxGeometry,omitempty"`
}

type mxGeometry struct {
	X        float32 `xml:"x,attr"`
	Y        float32 `xml:"y,attr"`
	Width    float32 `xml:"width,attr"`
	Height   float32 `xml:"height,attr"`
	Relative string  `xml:"relative,attr,omitempty"`
	As       string  `xml:"as,attr"`
}

const nodeSize = 30

// ExportDrawio writes net as a draw.io mxGraphModel document (spec.md
// §4.7): one mxCell per place/transition (ellipse/rectangle style,
// geometry from x,y) and one per arc.
func ExportDrawio(net *tpne.Net, w io.Writer) error {
	root := mxRoot{Cells: []mxCell{
		{ID: "0"},
		{ID: "1", Parent: "0"},
	}}

	for _, p := range net.Places() {
		root.Cells = append(root.Cells, mxCell{
			ID: p.Key(), Value: p.Caption, Vertex: "1", Parent: "1",
			Style:    "ellipse;whiteSpace=wrap;html=1;",
			Geometry: &mxGeometry{X: p.X, Y: p.Y, Width: nodeSize, Height: nodeSize, As: "geometry"},
		})
	}
	for i := range net.Transitions() {
		t := &net.Transitions()[i]
		root.Cells = append(root.Cells, mxCell{
			ID: t.Key(), Value: t.Caption, Vertex: "1", Parent: "1",
			Style:    "rectangle;whiteSpace=wrap;html=1;",
			Geometry: &mxGeometry{X: t.X, Y: t.Y, Width: nodeSize, Height: nodeSize, As: "geometry"},
		})
	}
	for i, a := range net.Arcs() {
		root.Cells = append(root.Cells, mxCell{
			ID: fmt.Sprintf("arc-%d", i), Edge: "1", Parent: "1",
			Source:   a.From.Key(),
			Target:   a.To.Key(),
			Geometry: &mxGeometry{Relative: "1", As: "geometry"},
		})
	}

	doc := mxFile{Model: mxGraphModel{Root: root}}
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	return nil
}
