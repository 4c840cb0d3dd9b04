// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import "fmt"

// setAdd/setUnion/setIncluded/setMember operate on sorted []int used as
// sets, the representation Priorities uses. Ported from the teacher's
// Tina-priority set helpers (nets.go), generalized from transition-name
// strings to transition ids.

func setAdd(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return s
		}
		if x > v {
			out := append([]int(nil), s[:i]...)
			out = append(out, v)
			return append(out, s[i:]...)
		}
	}
	return append(s, v)
}

func setUnion(a, b []int) []int {
	for _, v := range b {
		a = setAdd(a, v)
	}
	return a
}

func setIncluded(a, b []int) bool {
	for _, v := range a {
		if setMember(b, v) < 0 {
			return false
		}
	}
	return true
}

func setMember(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// ClosePriorities computes the transitive closure of net.Priorities in
// place. Priorities[i] must list the ids of transitions with strictly
// lower priority than transition i; after closure, Priorities[i] lists
// every transition with lower priority, direct or inherited. An error is
// returned if the relation has a cycle.
//
// Supplemented feature ported from Tina's "pr" declarations (see
// SPEC_FULL.md §5); the Simulator consults the closed relation to refine
// its deterministic conflict-resolution tie-break.
func (net *Net) ClosePriorities() error {
	if len(net.Priorities) == 0 {
		return nil
	}
	if len(net.Priorities) != len(net.transitions) {
		return fmt.Errorf("tpne: priorities has %d rows, net has %d transitions", len(net.Priorities), len(net.transitions))
	}

	done := []int{}
	work := []int{}
	for k, v := range net.Priorities {
		if len(v) == 0 {
			done = setAdd(done, k)
		} else {
			work = setAdd(work, k)
		}
	}
	if len(done) == len(net.transitions) {
		return nil
	}
	if len(done) == 0 {
		return fmt.Errorf("tpne: no minimal element in priority relation")
	}
	for {
		if len(work) == 0 {
			return nil
		}
		workn := []int{}
		donen := append([]int(nil), done...)
		for _, t := range work {
			if setIncluded(net.Priorities[t], done) {
				for _, v := range net.Priorities[t] {
					net.Priorities[t] = setUnion(net.Priorities[t], net.Priorities[v])
				}
				donen = setAdd(donen, t)
			} else {
				workn = setAdd(workn, t)
			}
		}
		if len(workn) == len(work) {
			for _, t := range work {
				if setMember(net.Priorities[t], t) >= 0 {
					return fmt.Errorf("tpne: cyclic priority relation at transition %s", net.transitions[t].Key())
				}
			}
			return fmt.Errorf("tpne: cyclic priority relation")
		}
		work = workn
		done = donen
	}
}

// lowerPriority reports whether transition b has strictly lower priority
// than transition a, according to the closed Priorities relation. It
// returns false whenever no priority relation is declared.
func (net *Net) lowerPriority(a, b int) bool {
	if net.Priorities == nil || a >= len(net.Priorities) {
		return false
	}
	return setMember(net.Priorities[a], b) >= 0
}
