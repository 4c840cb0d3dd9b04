// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import "github.com/lecrapouille/tpne-core/maxplus"

// AdjacencyMatrices collapses every place of a canonical event graph, along
// with its single incoming and outgoing arc, into one directed edge between
// transitions (spec.md §4.6). N[i][j] is the token count and T[i][j] the
// duration of the edge from transition i to transition j; when several
// places collapse onto the same (i, j) pair, both matrices keep the
// tropical sum (max) of the contending values.
func AdjacencyMatrices(net *Net) (N, T *maxplus.Matrix, err error) {
	if ok, offending := IsEventGraph(net); !ok {
		return nil, nil, &EventGraphError{Offending: offending}
	}
	nt := len(net.transitions)
	N = maxplus.New(nt, nt)
	T = maxplus.New(nt, nt)
	for _, p := range net.places {
		in := net.arcs[p.arcsIn[0]]
		out := net.arcs[p.arcsOut[0]]
		i, j := in.From.ID, out.To.ID
		N.Accumulate(i, j, float64(p.Tokens))
		T.Accumulate(i, j, float64(in.Duration))
	}
	return N, T, nil
}
