// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import (
	"fmt"

	"github.com/lecrapouille/tpne-core/maxplus"
)

// LinearSystem extracts the implicit Max-Plus linear dynamic system of an
// event graph (spec.md §4.6):
//
//	X(n) = D ⊗ X(n) ⊕ A ⊗ X(n−1) ⊕ B ⊗ U(n)
//	Y(n) = C ⊗ X(n)
//
// Transitions are partitioned into Inputs, States and Outputs by
// Transition.IsInput/IsState/IsOutput and numbered from 1 within their
// class (recorded, for inspection, on Transition.Index); D holds
// state→state edges with zero tokens, A state→state edges with exactly one
// token, B input→state edges, C state→output edges. A place with more than
// one token is rejected: the caller must Canonicalize first.
func LinearSystem(net *Net) (D, A, B, C *maxplus.Matrix, err error) {
	if ok, offending := IsEventGraph(net); !ok {
		return nil, nil, nil, nil, &EventGraphError{Offending: offending}
	}

	inputs, states, outputs := classifyTransitions(net)
	assignClassIndex(net, inputs)
	assignClassIndex(net, states)
	assignClassIndex(net, outputs)

	D = maxplus.New(len(states), len(states))
	A = maxplus.New(len(states), len(states))
	B = maxplus.New(len(states), len(inputs))
	C = maxplus.New(len(outputs), len(states))

	inputSet := toSet(inputs)
	stateSet := toSet(states)
	outputSet := toSet(outputs)

	for _, p := range net.places {
		if p.Tokens > 1 {
			return nil, nil, nil, nil, fmt.Errorf("tpne: %w: place %s has %d tokens, call Canonicalize first", ErrInvalidInput, p.Key(), p.Tokens)
		}
		in := net.arcs[p.arcsIn[0]]
		out := net.arcs[p.arcsOut[0]]
		src, dst := in.From.ID, out.To.ID
		duration := float64(in.Duration)

		switch {
		case stateSet[src] && stateSet[dst] && p.Tokens == 0:
			D.Accumulate(net.transitions[dst].Index-1, net.transitions[src].Index-1, duration)
		case stateSet[src] && stateSet[dst] && p.Tokens == 1:
			A.Accumulate(net.transitions[dst].Index-1, net.transitions[src].Index-1, duration)
		case inputSet[src] && stateSet[dst]:
			B.Accumulate(net.transitions[dst].Index-1, net.transitions[src].Index-1, duration)
		case stateSet[src] && outputSet[dst]:
			C.Accumulate(net.transitions[dst].Index-1, net.transitions[src].Index-1, duration)
		}
	}
	return D, A, B, C, nil
}

// classifyTransitions partitions transition ids into Inputs/States/Outputs.
// A transition with neither incoming nor outgoing arcs satisfies both
// IsInput and IsOutput; it is classed as an input, since it contributes no
// dynamics either way.
func classifyTransitions(net *Net) (inputs, states, outputs []int) {
	for i, t := range net.transitions {
		switch {
		case t.IsState():
			states = append(states, i)
		case t.IsOutput() && !t.IsInput():
			outputs = append(outputs, i)
		default:
			inputs = append(inputs, i)
		}
	}
	return
}

func assignClassIndex(net *Net, ids []int) {
	for k, id := range ids {
		net.transitions[id].Index = k + 1
	}
}

func toSet(ids []int) map[int]bool {
	s := make(map[int]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}
