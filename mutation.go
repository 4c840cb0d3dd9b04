// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import "fmt"

// MutationKind tags the variants of Mutation.
type MutationKind int

const (
	MutAddPlace MutationKind = iota
	MutAddTransition
	MutAddArc
	MutRemoveNode
	MutFire
)

// Mutation is a record of one applied change to a Net, carrying enough
// information to revert it. The core never keeps a history of mutations
// itself — that is the explicit job of the (out-of-scope) undo/redo stack
// — it only emits a Mutation after each successful change, through the
// callback registered with Net.SetMutationSink. The contract between the
// core and that external collaborator is exactly "apply/revert opaque
// mutations" (spec.md §1); Mutation.Revert is the "revert" half.
type Mutation struct {
	Kind MutationKind

	// Ref identifies the node an AddPlace/AddTransition/RemoveNode
	// mutation concerns.
	Ref NodeRef

	// Place/Transition snapshot the node as it existed right after an
	// Add, or right before a Remove.
	Place      *Place
	Transition *Transition

	// RemovedArcs lists the arcs a RemoveNode mutation deleted as a
	// side effect.
	RemovedArcs []Arc

	// Arc snapshots an AddArc mutation.
	Arc *Arc

	// TokenDelta records the per-place token change applied by firing a
	// transition (MutFire): net.places[id].Tokens += TokenDelta[id].
	TokenDelta map[int]int64
	FiredID    int
}

// Revert undoes m on net. It assumes net is in the state that
// immediately followed the application of m; reverting out of order is
// undefined, same as any other undo stack.
func (m Mutation) Revert(net *Net) error {
	switch m.Kind {
	case MutAddPlace:
		return net.RemoveNode(m.Ref)
	case MutAddTransition:
		return net.RemoveNode(m.Ref)
	case MutAddArc:
		return net.removeArc(*m.Arc)
	case MutRemoveNode:
		return m.revertRemoveNode(net)
	case MutFire:
		return m.revertFire(net)
	default:
		return fmt.Errorf("tpne: unknown mutation kind %d", m.Kind)
	}
}

func (m Mutation) revertRemoveNode(net *Net) error {
	switch m.Ref.Kind {
	case PlaceKind:
		if _, err := net.AddPlace(m.Ref.ID, m.Place.Caption, m.Place.X, m.Place.Y, m.Place.Tokens); err != nil {
			return err
		}
	default:
		t := m.Transition
		if _, err := net.AddTransition(m.Ref.ID, t.Caption, t.X, t.Y, t.Angle); err != nil {
			return err
		}
	}
	for _, a := range m.RemovedArcs {
		if _, err := net.AddArc(a.From, a.To, a.Duration); err != nil {
			return err
		}
	}
	return nil
}

func (m Mutation) revertFire(net *Net) error {
	for id, delta := range m.TokenDelta {
		p := net.Place(id)
		if p == nil {
			continue
		}
		p.Tokens = uint64(int64(p.Tokens) - delta)
	}
	return nil
}

// removeArc deletes the first arc matching target's endpoints, used to
// revert an AddArc mutation without renumbering any node.
func (net *Net) removeArc(target Arc) error {
	for i, a := range net.arcs {
		if a.From == target.From && a.To == target.To {
			net.arcs = append(net.arcs[:i], net.arcs[i+1:]...)
			net.reindex()
			return nil
		}
	}
	return &ArcError{Err: ErrUnknownEndpoint, From: target.From, To: target.To}
}
