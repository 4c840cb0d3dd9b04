// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/lecrapouille/tpne-core"
)

// symfonyDocument mirrors the Symfony workflow component's configuration
// tree (spec.md §4.7: `framework.workflows.<name>.{places, transitions,
// initial_marking}`). We build this struct tree and marshal it with
// yaml.v3 rather than emitting hand-rolled YAML text the way the
// original's ExportSymfony.hpp does — the idiomatic Go rendering of the
// same export, and the reason this package depends on yaml.v3 (see
// SPEC_FULL.md §2).
type symfonyDocument struct {
	Framework symfonyFramework `yaml:"framework"`
}

type symfonyFramework struct {
	Workflows map[string]symfonyWorkflow `yaml:"workflows"`
}

type symfonyWorkflow struct {
	Places         []string            `yaml:"places"`
	Transitions    []symfonyTransition `yaml:"transitions"`
	InitialMarking []string            `yaml:"initial_marking"`
}

type symfonyTransition struct {
	Name string   `yaml:"name"`
	From []string `yaml:"from"`
	To   []string `yaml:"to"`
}

// ExportSymfony writes net as a Symfony workflow YAML fragment. Transition
// captions become the workflow transition names; places with a positive
// initial token count are listed under initial_marking.
func ExportSymfony(net *tpne.Net, w io.Writer) error {
	wf := symfonyWorkflow{}
	for _, p := range net.Places() {
		name := placeName(p)
		wf.Places = append(wf.Places, name)
		if p.Tokens > 0 {
			wf.InitialMarking = append(wf.InitialMarking, name)
		}
	}
	for i := range net.Transitions() {
		t := &net.Transitions()[i]
		tr := symfonyTransition{Name: transitionName(t)}
		for _, idx := range t.ArcsIn() {
			a := net.Arcs()[idx]
			tr.From = append(tr.From, placeNameByRef(net, a.From))
		}
		for _, idx := range t.ArcsOut() {
			a := net.Arcs()[idx]
			tr.To = append(tr.To, placeNameByRef(net, a.To))
		}
		wf.Transitions = append(wf.Transitions, tr)
	}

	doc := symfonyDocument{Framework: symfonyFramework{
		Workflows: map[string]symfonyWorkflow{net.Name: wf},
	}}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	return enc.Close()
}

func placeName(p tpne.Place) string {
	if p.Caption != "" {
		return p.Caption
	}
	return p.Key()
}

func placeNameByRef(net *tpne.Net, ref tpne.NodeRef) string {
	if ref.Kind != tpne.PlaceKind {
		return ref.Key()
	}
	return placeName(*net.Place(ref.ID))
}

func transitionName(t *tpne.Transition) string {
	if t.Caption != "" {
		return t.Caption
	}
	return t.Key()
}
