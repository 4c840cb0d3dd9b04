// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import "github.com/lecrapouille/tpne-core/howard"

// CriticalCycle feeds the transition graph of an event graph (weights =
// durations, delays = tokens, as in Semi-Howard) into package howard and
// returns the arcs making up the cycle with the maximum mean duration: the
// system's bottleneck loop (spec.md §4.6).
func CriticalCycle(net *Net) ([]Arc, howard.Result, error) {
	N, T, err := AdjacencyMatrices(net)
	if err != nil {
		return nil, howard.Result{}, err
	}

	entries := T.NonZero()
	g := howard.Graph{NumVertices: len(net.transitions)}
	delay := make([]float64, 0, len(entries))
	for _, e := range entries {
		g.From = append(g.From, e.Row)
		g.To = append(g.To, e.Col)
		g.Weight = append(g.Weight, e.Value)
		delay = append(delay, N.Get(e.Row, e.Col))
	}

	res, err := howard.SemiHoward(g, delay, -1)
	if err != nil {
		return nil, howard.Result{}, err
	}
	if len(res.Chi) == 0 {
		return nil, res, nil
	}

	best := 0
	for v := 1; v < len(res.Chi); v++ {
		if res.Chi[v] > res.Chi[best] {
			best = v
		}
	}

	var walk []int
	seen := make(map[int]bool)
	v := best
	for !seen[v] {
		seen[v] = true
		walk = append(walk, v)
		v = res.Policy[v]
	}
	start := indexOfVertex(walk, v)
	cycle := walk[start:]

	var arcs []Arc
	for i, u := range cycle {
		w := cycle[(i+1)%len(cycle)]
		arcs = append(arcs, arcsBetweenTransitions(net, u, w)...)
	}
	return arcs, res, nil
}

// arcsBetweenTransitions returns the two real arcs (u->place, place->w)
// collapsed into the adjacency-matrix edge u->w.
func arcsBetweenTransitions(net *Net, u, w int) []Arc {
	var out []Arc
	for _, outIdx := range net.transitions[u].arcsOut {
		a := net.arcs[outIdx]
		p := net.Place(a.To.ID)
		if p == nil {
			continue
		}
		for _, inIdx := range p.arcsOut {
			b := net.arcs[inIdx]
			if b.To.ID == w {
				out = append(out, a, b)
			}
		}
	}
	return out
}

func indexOfVertex(path []int, v int) int {
	for i, p := range path {
		if p == v {
			return i
		}
	}
	return -1
}
