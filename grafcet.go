// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import (
	"fmt"

	"github.com/lecrapouille/tpne-core/bexpr"
)

// stepGrafcet implements the four fixed phases of a GRAFCET tick (spec.md
// §4.5): (1) run the actions of currently active steps, (2) sample inputs,
// (3) compute every transition's fireability against the marking as it
// stood before this tick, (4) commit: deactivate input steps and activate
// output steps of every transition that fired. Reading a step's state
// during (1)-(3) always observes the value from before (4) commits —
// receptivities are Open Question (c): level-triggered, not edge-triggered.
func (s *Simulator) stepGrafcet() Diagnostics {
	var diag Diagnostics
	net := s.Net

	if s.Actions != nil {
		s.Actions(activeSteps(net))
	}

	if s.SampleInputs != nil {
		if s.InputCtx == nil {
			s.InputCtx = bexpr.Context{}
		}
		for name, v := range s.SampleInputs() {
			s.InputCtx[name] = v
		}
	}
	if s.InputCtx == nil {
		s.InputCtx = bexpr.Context{}
	}

	fire := make([]bool, len(net.transitions))
	for j := range net.transitions {
		t := &net.transitions[j]
		if !stepsActive(net, t) {
			continue
		}
		expr, err := bexpr.Parse(t.Caption)
		if err != nil {
			diag.Messages = append(diag.Messages, fmt.Sprintf("%s: %v", t.Key(), err))
			s.logger().Warn("grafcet receptivity parse error", "transition", t.Key(), "error", err)
			continue
		}
		ok, err := expr.Eval(s.InputCtx)
		if err != nil {
			diag.Messages = append(diag.Messages, fmt.Sprintf("%s: %v", t.Key(), err))
			s.logger().Warn("grafcet receptivity eval error", "transition", t.Key(), "error", err)
			continue
		}
		fire[j] = ok
	}

	for j := range net.transitions {
		if !fire[j] {
			continue
		}
		s.commitGrafcetFire(j, &diag)
	}
	return diag
}

// stepsActive reports whether every input place of t (its predecessor
// steps) is active.
func stepsActive(net *Net, t *Transition) bool {
	for _, idx := range t.arcsIn {
		a := net.arcs[idx]
		if !net.places[a.From.ID].Active() {
			return false
		}
	}
	return true
}

func activeSteps(net *Net) []NodeRef {
	var active []NodeRef
	for i := range net.places {
		if net.places[i].Active() {
			active = append(active, net.places[i].Ref())
		}
	}
	return active
}

// commitGrafcetFire deactivates t's input steps and activates its output
// steps, normalizing every touched place to 0/1 tokens (the GRAFCET
// convention).
func (s *Simulator) commitGrafcetFire(j int, diag *Diagnostics) {
	net := s.Net
	t := &net.transitions[j]
	delta := map[int]int64{}
	for _, idx := range t.arcsIn {
		a := net.arcs[idx]
		before := net.places[a.From.ID].Tokens
		net.places[a.From.ID].Tokens = 0
		delta[a.From.ID] -= int64(before)
	}
	for _, idx := range t.arcsOut {
		a := net.arcs[idx]
		before := net.places[a.To.ID].Tokens
		net.places[a.To.ID].Tokens = 1
		delta[a.To.ID] += 1 - int64(before)
	}
	diag.Fired = append(diag.Fired, t.Ref())
	net.emit(Mutation{Kind: MutFire, TokenDelta: delta, FiredID: j})
}
