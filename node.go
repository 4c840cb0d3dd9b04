// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import "fmt"

// Kind distinguishes the two node kinds of a net. It is the tag of the
// Node = Place | Transition tagged union described in the design notes:
// rather than an inheritance hierarchy, nodes are referenced by a
// (Kind, ID) pair (NodeRef) and dereferenced through Net.Place/Net.Transition.
type Kind uint8

const (
	PlaceKind Kind = iota
	TransitionKind
)

func (k Kind) String() string {
	switch k {
	case PlaceKind:
		return "place"
	case TransitionKind:
		return "transition"
	default:
		return "unknown"
	}
}

// NodeRef identifies a node by kind and id, never by pointer. Arcs store
// NodeRefs rather than live references so that Node and Arc do not form a
// reference cycle and so that the in-memory representation matches the
// on-disk one (spec design note: "do not store live references inside Arc").
type NodeRef struct {
	Kind Kind
	ID   int
}

// Key returns the derived textual key of a node reference: "P<id>" for
// places, "T<id>" for transitions.
func (r NodeRef) Key() string {
	switch r.Kind {
	case PlaceKind:
		return fmt.Sprintf("P%d", r.ID)
	default:
		return fmt.Sprintf("T%d", r.ID)
	}
}

// nodeBase holds the fields common to Place and Transition: stable id,
// caption, 2D position and the derived arc-adjacency indices. The indices
// store positions into Net.arcs and are rebuilt by Net.reindex after every
// structural mutation; they are never hand-maintained incrementally because
// RemoveNode can renumber arcs in bulk.
type nodeBase struct {
	ID      int
	Caption string
	X, Y    float32

	arcsIn  []int
	arcsOut []int
}
