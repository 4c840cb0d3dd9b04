// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import "math"

// Arc connects two nodes of opposite kinds (the bipartite invariant).
// Duration is only meaningful on arcs whose source is a Transition
// (Transition->Place arcs); on a Place->Transition arc it is conventionally
// NaN and must be ignored.
type Arc struct {
	From, To NodeRef
	Duration float32
}

// NoDuration is the conventional Place->Transition arc duration: NaN,
// meaning "ignore this field".
func NoDuration() float32 { return float32(math.NaN()) }

// HasDuration reports whether a carries a meaningful duration, i.e. its
// source is a Transition.
func (a Arc) HasDuration() bool { return a.From.Kind == TransitionKind }
