// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

/*
Package pnml marshals and unmarshals the ISO 15909 XML subset spec.md
§4.7 names for PNML: places/transitions/arcs with id attributes and
inscription children, all on a single page. Generalized from
dalzilio-nets' internal/pnml submodule (write-only there); this package
adds the matching read side so formats/pnml.go can both import and
export (spec.md's PNML row is "I+E", unlike the teacher's write-only
pnmlwrite.go).
*/
package pnml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// DOCTYPE is the XML prolog written before every PNML document.
const DOCTYPE = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

const nsURI = "http://www.pnml.org/version-2009/grammar/pnml"

// PT is the root element of a P/T net PNML document. Node positions are
// carried in each place's and transition's <graphics><position> child.
type PT struct {
	XMLName xml.Name `xml:"http://www.pnml.org/version-2009/grammar/pnml pnml"`
	Net     Net      `xml:"net"`
}

// Net is one PNML net, with every place/transition/arc declared on a
// single page (dalzilio-nets' simplification, kept here).
type Net struct {
	Type string `xml:"type,attr"`
	ID   string `xml:"id,attr"`
	Name string `xml:"name>text"`
	Page Page   `xml:"page"`
}

// Page groups the places, transitions and arcs of a net.
type Page struct {
	ID          string       `xml:"id,attr"`
	Places      []Place      `xml:"place"`
	Transitions []Transition `xml:"transition"`
	Arcs        []Arc        `xml:"arc"`
}

// Place is one PNML <place>.
type Place struct {
	ID      string `xml:"id,attr"`
	Name    string `xml:"name>text"`
	Initial int    `xml:"initialMarking>text"`
	X       float32
	Y       float32
}

// Transition is one PNML <transition>. X and Y are round-tripped through a
// <graphics><position> child, as for Place. Angle is neither written nor
// read, so it does not survive PNML export/import.
type Transition struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"name>text"`
	X     float32
	Y     float32
	Angle float32
}

// Arc is one PNML <arc>, with an optional inscription carrying the
// Transition->Place duration.
type Arc struct {
	ID       string
	Source   string `xml:"source,attr"`
	Target   string `xml:"target,attr"`
	HasDur   bool
	Duration float32
}

// MarshalXML renders a Place as `<place id="..."><name><text>...</text>
// </name>[<initialMarking>...</initialMarking>]<graphics><position x=".."
// y=".."/></graphics></place>`.
func (v Place) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "id"}, Value: v.ID}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeNamed(e, "name", "text", v.Name); err != nil {
		return err
	}
	if v.Initial != 0 {
		if err := encodeNamed(e, "initialMarking", "text", fmt.Sprintf("%d", v.Initial)); err != nil {
			return err
		}
	}
	if err := encodePosition(e, v.X, v.Y); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalXML renders a Transition analogously to Place.
func (v Transition) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "id"}, Value: v.ID}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeNamed(e, "name", "text", v.Name); err != nil {
		return err
	}
	if err := encodePosition(e, v.X, v.Y); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalXML renders an Arc, with an <inscription><text>d</text>
// </inscription> child when HasDur is set.
func (v Arc) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "id"}, Value: v.ID},
		{Name: xml.Name{Local: "source"}, Value: v.Source},
		{Name: xml.Name{Local: "target"}, Value: v.Target},
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if v.HasDur {
		if err := encodeNamed(e, "inscription", "text", fmt.Sprintf("%g", v.Duration)); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func encodeNamed(e *xml.Encoder, outer, inner, text string) error {
	if err := e.EncodeToken(xml.StartElement{Name: xml.Name{Local: outer}}); err != nil {
		return err
	}
	if err := e.EncodeElement(text, xml.StartElement{Name: xml.Name{Local: inner}}); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: xml.Name{Local: outer}})
}

func encodePosition(e *xml.Encoder, x, y float32) error {
	start := xml.StartElement{Name: xml.Name{Local: "graphics"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	pos := xml.StartElement{
		Name: xml.Name{Local: "position"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "x"}, Value: fmt.Sprintf("%g", x)},
			{Name: xml.Name{Local: "y"}, Value: fmt.Sprintf("%g", y)},
		},
	}
	if err := e.EncodeToken(pos); err != nil {
		return err
	}
	if err := e.EncodeToken(xml.EndElement{Name: pos.Name}); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Write serializes a net as PNML onto w.
func Write(w io.Writer, name string, places []Place, transitions []Transition, arcs []Arc) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	doc := PT{Net: Net{
		Type: nsURI + "/ptnet",
		ID:   name,
		Name: name,
		Page: Page{ID: "page", Places: places, Transitions: transitions, Arcs: arcs},
	}}
	if _, err := w.Write([]byte(DOCTYPE)); err != nil {
		return err
	}
	return enc.Encode(doc)
}

// rawPlace, rawTransition and rawArc are the read-side mirrors of
// Place/Transition/Arc: plain struct tags suffice for Unmarshal (only
// Marshal needs the custom MarshalXML above, since the position and
// inscription children are optional and order-sensitive only on write).
type rawPlace struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name>text"`
	Initial  *int   `xml:"initialMarking>text"`
	Position struct {
		X float32 `xml:"x,attr"`
		Y float32 `xml:"y,attr"`
	} `xml:"graphics>position"`
}

type rawTransition struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name>text"`
	Position struct {
		X float32 `xml:"x,attr"`
		Y float32 `xml:"y,attr"`
	} `xml:"graphics>position"`
}

type rawArc struct {
	ID          string   `xml:"id,attr"`
	Source      string   `xml:"source,attr"`
	Target      string   `xml:"target,attr"`
	Inscription *float32 `xml:"inscription>text"`
}

type rawPage struct {
	Places      []rawPlace      `xml:"place"`
	Transitions []rawTransition `xml:"transition"`
	Arcs        []rawArc        `xml:"arc"`
}

type rawNet struct {
	Name string  `xml:"name>text"`
	Page rawPage `xml:"page"`
}

type rawPT struct {
	XMLName xml.Name `xml:"pnml"`
	Net     rawNet   `xml:"net"`
}

// ParsedNet is the decoded shape Read returns: plain data, no XML
// marshaling concerns, for formats/pnml.go to translate into a *tpne.Net.
type ParsedNet struct {
	Name        string
	Places      []ParsedPlace
	Transitions []ParsedTransition
	Arcs        []ParsedArc
}

type ParsedPlace struct {
	ID      string
	Name    string
	Initial int
	X, Y    float32
}

type ParsedTransition struct {
	ID   string
	Name string
	X, Y float32
}

type ParsedArc struct {
	ID, Source, Target string
	Duration           *float32
}

// Read parses a PNML document from r.
func Read(r io.Reader) (*ParsedNet, error) {
	var doc rawPT
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("pnml: %w", err)
	}
	out := &ParsedNet{Name: doc.Net.Name}
	for _, p := range doc.Net.Page.Places {
		initial := 0
		if p.Initial != nil {
			initial = *p.Initial
		}
		out.Places = append(out.Places, ParsedPlace{ID: p.ID, Name: p.Name, Initial: initial, X: p.Position.X, Y: p.Position.Y})
	}
	for _, t := range doc.Net.Page.Transitions {
		out.Transitions = append(out.Transitions, ParsedTransition{ID: t.ID, Name: t.Name, X: t.Position.X, Y: t.Position.Y})
	}
	for _, a := range doc.Net.Page.Arcs {
		out.Arcs = append(out.Arcs, ParsedArc{ID: a.ID, Source: a.Source, Target: a.Target, Duration: a.Inscription})
	}
	return out, nil
}
