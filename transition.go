// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

// Transition is a node that fires, consuming tokens from its input places
// and producing tokens in its output places.
type Transition struct {
	nodeBase
	Angle float32 // display hint, not used by the core

	// Index is a scratch field used by the analyses in this module to
	// number a transition among the inputs, states or outputs of its net
	// (see IsInput/IsState/IsOutput). It is not persisted by any format
	// and callers must not rely on its value outside of a single analysis
	// call.
	Index int

	// TimeInterval optionally restricts when t may fire, following the
	// Tina firing-window semantics: nil means the trivial window [0, inf[.
	// This is a supplemented feature (spec.md's distillation only carries
	// a scalar arc Duration); it is consulted by the Simulator for
	// TimedPetri and TimedEventGraph nets.
	TimeInterval *TimeInterval
}

// Ref returns the stable (kind, id) reference to t.
func (t *Transition) Ref() NodeRef { return NodeRef{Kind: TransitionKind, ID: t.ID} }

// Key returns the derived textual key "T<id>".
func (t *Transition) Key() string { return t.Ref().Key() }

// ArcsIn returns the indices, into the owning Net's Arcs slice, of the
// arcs whose destination is t.
func (t *Transition) ArcsIn() []int { return t.arcsIn }

// ArcsOut returns the indices, into the owning Net's Arcs slice, of the
// arcs whose source is t.
func (t *Transition) ArcsOut() []int { return t.arcsOut }

// IsInput reports whether t has no incoming arc: a system input, or source
// transition.
func (t *Transition) IsInput() bool { return len(t.arcsIn) == 0 }

// IsOutput reports whether t has no outgoing arc: a system output, or sink
// transition.
func (t *Transition) IsOutput() bool { return len(t.arcsOut) == 0 }

// IsState reports whether t has at least one incoming and one outgoing
// arc.
func (t *Transition) IsState() bool { return len(t.arcsIn) > 0 && len(t.arcsOut) > 0 }

// Enabled reports whether every input place of t, in net, holds at least
// one token: the plain Petri enabling predicate, ignoring any
// TimeInterval firing window. Exported so read-only consumers outside the
// Simulator — the Graphviz exporter's "green if enabled" rule (spec.md
// §4.7) — can query it without constructing a Simulator.
func (t *Transition) Enabled(net *Net) bool {
	for _, idx := range t.arcsIn {
		a := net.arcs[idx]
		if net.places[a.From.ID].Tokens == 0 {
			return false
		}
	}
	return true
}
