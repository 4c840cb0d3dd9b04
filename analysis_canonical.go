// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import "fmt"

// Canonicalize rewrites a copy of net so that Max-Plus tools can be applied
// uniformly (spec.md §4.6): every place ends up with at most one token, and
// no place adjacent to a system input or output transition carries a
// token. It never mutates net.
//
// Multi-token places are split into a chain of one-token places linked by
// fresh zero-duration transitions; a boundary place's token is pushed one
// hop inward by inserting one such pair on its inner side: after the place
// when it follows an input transition, before it when it precedes an
// output transition. Open Question (b): this is the literal reading of spec.md
// §4.6's "chain-split with zero-duration transitions"; nets whose boundary
// place is simultaneously adjacent to an input and an output transition
// (e.g. a single-place net between two boundary transitions) are only
// pushed on one side per pass — callers needing the stricter form should
// call Canonicalize twice.
func Canonicalize(net *Net) *Net {
	c := net.Clone()
	splitMultiTokenPlaces(c)
	pushBoundaryTokensInward(c)
	return c
}

func splitMultiTokenPlaces(net *Net) {
	n := len(net.places)
	for pid := 0; pid < n; pid++ {
		tokens := net.places[pid].Tokens
		if tokens <= 1 {
			continue
		}
		origOut := append([]int(nil), net.places[pid].arcsOut...)
		caption := net.places[pid].Caption
		x, y := net.places[pid].X, net.places[pid].Y
		net.places[pid].Tokens = 1

		last := NodeRef{Kind: PlaceKind, ID: pid}
		for i := uint64(1); i < tokens; i++ {
			t, _ := net.AddTransition(-1, fmt.Sprintf("%s.split%d", caption, i), x, y, 0)
			net.AddArc(last, t.Ref(), 0)
			p, _ := net.AddPlace(-1, fmt.Sprintf("%s.tok%d", caption, i), x, y, 1)
			net.AddArc(t.Ref(), p.Ref(), 0)
			last = p.Ref()
		}
		for _, idx := range origOut {
			net.arcs[idx].From = last
		}
		net.reindex()
	}
}

func pushBoundaryTokensInward(net *Net) {
	n := len(net.places)
	for pid := 0; pid < n; pid++ {
		p := &net.places[pid]
		if p.Tokens != 1 || len(p.arcsIn) != 1 || len(p.arcsOut) != 1 {
			continue
		}
		inArc := net.arcs[p.arcsIn[0]]
		outArc := net.arcs[p.arcsOut[0]]
		pred := net.Transition(inArc.From.ID)
		succ := net.Transition(outArc.To.ID)
		boundary := NodeRef{Kind: PlaceKind, ID: pid}
		switch {
		case pred != nil && pred.IsInput():
			insertDownstream(net, boundary, outArc)
		case succ != nil && succ.IsOutput():
			insertUpstream(net, boundary, inArc)
		}
	}
}

// insertDownstream replaces the arc boundary->S with boundary->newT->newP->S,
// moving boundary's token onto the fresh place newP.
func insertDownstream(net *Net, boundary NodeRef, arc Arc) {
	idx := findArc(net, arc)
	if idx < 0 {
		return
	}
	caption := net.places[boundary.ID].Caption
	x, y := net.places[boundary.ID].X, net.places[boundary.ID].Y
	net.places[boundary.ID].Tokens = 0

	t, _ := net.AddTransition(-1, caption+".pass", x, y, 0)
	p, _ := net.AddPlace(-1, caption+".inner", x, y, 1)
	net.arcs[idx].From = p.Ref()
	net.AddArc(boundary, t.Ref(), 0)
	net.AddArc(t.Ref(), p.Ref(), 0)
	net.reindex()
}

// insertUpstream replaces the arc Pred->boundary with Pred->newP->newT->boundary,
// preserving Pred->boundary's original duration on the Pred->newP leg and
// moving boundary's token onto the fresh place newP.
func insertUpstream(net *Net, boundary NodeRef, arc Arc) {
	idx := findArc(net, arc)
	if idx < 0 {
		return
	}
	caption := net.places[boundary.ID].Caption
	x, y := net.places[boundary.ID].X, net.places[boundary.ID].Y
	net.places[boundary.ID].Tokens = 0

	t, _ := net.AddTransition(-1, caption+".pass", x, y, 0)
	p, _ := net.AddPlace(-1, caption+".inner", x, y, 1)
	net.arcs[idx].To = p.Ref()
	net.AddArc(p.Ref(), t.Ref(), 0)
	net.AddArc(t.Ref(), boundary, 0)
	net.reindex()
}

func findArc(net *Net, target Arc) int {
	for i, a := range net.arcs {
		if a == target {
			return i
		}
	}
	return -1
}
