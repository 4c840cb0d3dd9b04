// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"fmt"
	"io"

	"github.com/lecrapouille/tpne-core"
	"github.com/lecrapouille/tpne-core/formats/pnml"
)

// ExportPNML writes net as a PNML document (spec.md §4.7: "ISO 15909 XML
// subset"). Place/Transition PNML ids are the net's own P<id>/T<id> keys,
// which are already unique across both kinds.
func ExportPNML(net *tpne.Net, w io.Writer) error {
	places := make([]pnml.Place, len(net.Places()))
	for i, p := range net.Places() {
		places[i] = pnml.Place{ID: p.Key(), Name: p.Caption, Initial: int(p.Tokens), X: p.X, Y: p.Y}
	}
	transitions := make([]pnml.Transition, len(net.Transitions()))
	for i := range net.Transitions() {
		t := &net.Transitions()[i]
		transitions[i] = pnml.Transition{ID: t.Key(), Name: t.Caption, X: t.X, Y: t.Y}
	}
	arcs := make([]pnml.Arc, len(net.Arcs()))
	for i, a := range net.Arcs() {
		arcs[i] = pnml.Arc{ID: fmt.Sprintf("arc%d", i), Source: a.From.Key(), Target: a.To.Key()}
		if a.HasDuration() {
			arcs[i].HasDur = true
			arcs[i].Duration = a.Duration
		}
	}
	if err := pnml.Write(w, net.Name, places, transitions, arcs); err != nil {
		return fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	return nil
}

// ImportPNML reads a PNML document into a fresh *tpne.Net.
func ImportPNML(r io.Reader, opts ImportOptions) (*tpne.Net, error) {
	parsed, err := pnml.Read(r)
	if err != nil {
		return nil, fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}

	net := tpne.New(parsed.Name, tpne.Petri)
	ids := map[string]tpne.NodeRef{}
	for _, p := range parsed.Places {
		place, err := net.AddPlace(-1, p.Name, p.X, p.Y, uint64(p.Initial))
		if err != nil {
			return nil, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
		}
		ids[p.ID] = place.Ref()
	}
	for _, t := range parsed.Transitions {
		trans, err := net.AddTransition(-1, t.Name, t.X, t.Y, 0)
		if err != nil {
			return nil, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
		}
		ids[t.ID] = trans.Ref()
	}
	for _, a := range parsed.Arcs {
		from, ok := ids[a.Source]
		if !ok {
			return nil, fmt.Errorf("formats: %w: arc references %q", tpne.ErrUnknownNode, a.Source)
		}
		to, ok := ids[a.Target]
		if !ok {
			return nil, fmt.Errorf("formats: %w: arc references %q", tpne.ErrUnknownNode, a.Target)
		}
		duration := tpne.NoDuration()
		if a.Duration != nil {
			duration = *a.Duration
		}
		if _, err := net.AddArc(from, to, duration); err != nil {
			return nil, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
		}
	}
	if len(parsed.Transitions) > 0 && hasAnyDuration(net) {
		net.Type = tpne.TimedPetri
	}
	return net, nil
}

func hasAnyDuration(net *tpne.Net) bool {
	for _, a := range net.Arcs() {
		if a.HasDuration() && a.Duration > 0 {
			return true
		}
	}
	return false
}
