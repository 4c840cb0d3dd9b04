// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

// IsEventGraph reports whether every place of net has exactly one incoming
// and one outgoing arc (spec.md §4.6). When it does not, the second return
// value lists every arc incident to an offending place, so a caller (the
// out-of-scope editor) can highlight them.
func IsEventGraph(net *Net) (bool, []Arc) {
	var offending []Arc
	for _, p := range net.places {
		if len(p.arcsIn) == 1 && len(p.arcsOut) == 1 {
			continue
		}
		for _, idx := range p.arcsIn {
			offending = append(offending, net.arcs[idx])
		}
		for _, idx := range p.arcsOut {
			offending = append(offending, net.arcs[idx])
		}
	}
	return len(offending) == 0, offending
}
