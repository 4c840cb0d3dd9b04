// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/lecrapouille/tpne-core"
)

// jsonDocument is the top-level JSON shape: a "nets" array, so that a
// single file can hold several nets (spec.md §4.7's "multi-net files").
type jsonDocument struct {
	Nets []netRecord `json:"nets"`
}

// ExportJSON writes nets as the canonical JSON representation (spec.md
// §6: "The JSON schema is the canonical representation").
func ExportJSON(nets []*tpne.Net, w io.Writer) error {
	doc := jsonDocument{Nets: make([]netRecord, len(nets))}
	for i, net := range nets {
		doc.Nets[i] = toNetRecord(net)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	return nil
}

func toNetRecord(net *tpne.Net) netRecord {
	rec := netRecord{Name: net.Name, Type: net.Type.String()}
	for _, p := range net.Places() {
		rec.Places = append(rec.Places, placeRecord{ID: p.ID, Caption: p.Caption, X: p.X, Y: p.Y, Tokens: p.Tokens})
	}
	for _, t := range net.Transitions() {
		rec.Transitions = append(rec.Transitions, transitionRecord{ID: t.ID, Caption: t.Caption, X: t.X, Y: t.Y, Angle: t.Angle})
	}
	for _, a := range net.Arcs() {
		ar := arcRecord{From: a.From.Key(), To: a.To.Key()}
		if a.HasDuration() {
			d := a.Duration
			ar.Duration = &d
		}
		rec.Arcs = append(rec.Arcs, ar)
	}
	return rec
}

// ImportJSON reads the canonical JSON representation, returning every net
// in the document's "nets" array. Validation failures discard the
// in-progress net and abort the whole document, matching spec.md §4.7.
func ImportJSON(r io.Reader, opts ImportOptions) ([]*tpne.Net, error) {
	var doc jsonDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	nets := make([]*tpne.Net, 0, len(doc.Nets))
	for _, rec := range doc.Nets {
		net, err := fromNetRecord(rec, opts)
		if err != nil {
			return nil, err
		}
		nets = append(nets, net)
	}
	return nets, nil
}

func fromNetRecord(rec netRecord, opts ImportOptions) (*tpne.Net, error) {
	if opts.Strict {
		if err := validateRecord(rec); err != nil {
			return nil, err
		}
	}
	net := tpne.New(rec.Name, tpne.ParseNetType(rec.Type))

	places := append([]placeRecord(nil), rec.Places...)
	sort.Slice(places, func(i, j int) bool { return places[i].ID < places[j].ID })
	for i, p := range places {
		if p.ID != i {
			return nil, fmt.Errorf("formats: %w: place id %d is not dense", tpne.ErrInvalidInput, p.ID)
		}
		if _, err := net.AddPlace(-1, p.Caption, p.X, p.Y, p.Tokens); err != nil {
			return nil, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
		}
	}

	transitions := append([]transitionRecord(nil), rec.Transitions...)
	sort.Slice(transitions, func(i, j int) bool { return transitions[i].ID < transitions[j].ID })
	for i, t := range transitions {
		if t.ID != i {
			return nil, fmt.Errorf("formats: %w: transition id %d is not dense", tpne.ErrInvalidInput, t.ID)
		}
		if _, err := net.AddTransition(-1, t.Caption, t.X, t.Y, t.Angle); err != nil {
			return nil, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
		}
	}

	for _, a := range rec.Arcs {
		if err := validateArc(a); err != nil {
			return nil, err
		}
		from, ok := net.FindNode(a.From)
		if !ok {
			return nil, fmt.Errorf("formats: %w: arc references %q", tpne.ErrUnknownNode, a.From)
		}
		to, ok := net.FindNode(a.To)
		if !ok {
			return nil, fmt.Errorf("formats: %w: arc references %q", tpne.ErrUnknownNode, a.To)
		}
		duration := tpne.NoDuration()
		if a.Duration != nil {
			duration = *a.Duration
		}
		if _, err := net.AddArc(from, to, duration); err != nil {
			return nil, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
		}
	}
	return net, nil
}
