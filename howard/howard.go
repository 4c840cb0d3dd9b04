// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

/*
Package howard implements Howard's policy-iteration algorithm for
computing, on a weighted directed graph with at least one outgoing arc per
vertex, the mean cycle-time vector χ, the bias vector v, and an optimal
positional policy π (spec.md §4.2). SemiHoward is the timed variant that
additionally takes a per-arc delay and computes the ratio mean (sum of
weights over sum of delays) on cycles instead of the plain cycle mean.

The C ABI this package replaces is original_source/src/Net/Howard.h: the
flat (IJ, A[, T]) input arrays map directly onto Graph.{From,To,Weight[,
delay]}, and the OUTPUT variables CHI/V/POLICY/NITERATIONS/NCOMPONENTS map
onto Result.
*/
package howard

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when some vertex has no outgoing arc, unless
// verbose is -1, which skips that check.
var ErrInvalidInput = errors.New("howard: vertex has no outgoing arc")

// maxIterations bounds policy iteration so that pathological floating
// point inputs (e.g. NaN weights, which the spec allows to propagate)
// cannot loop forever; real inputs converge in a handful of iterations.
const maxIterations = 10000

// Graph is a weighted digraph given as a flat arc list, mirroring
// Howard.h's IJ/A input: arc k goes From[k] -> To[k] with weight Weight[k].
// Every vertex must have at least one outgoing arc (checked unless verbose
// is -1; see Howard).
type Graph struct {
	NumVertices int
	From, To    []int
	Weight      []float64
}

// Result is the output of Howard/SemiHoward.
type Result struct {
	Chi        []float64 // mean cycle time per vertex
	V          []float64 // bias per vertex
	Policy     []int     // Policy[u] is the chosen successor vertex of u
	Iterations int
	Components int // number of connected components of the final policy graph
}

// Howard computes the plain mean cycle-time vector of g. verbose follows
// Howard.h: every value other than -1 (0 is the default) validates that
// every vertex has an outgoing arc, returning ErrInvalidInput naming the
// first one that doesn't; -1 suppresses that validation.
func Howard(g Graph, verbose int) (Result, error) {
	delay := make([]float64, len(g.Weight))
	for i := range delay {
		delay[i] = 1
	}
	return run(g, delay, verbose)
}

// SemiHoward computes the ratio-mean cycle-time vector of g given a
// per-arc delay vector T: on a cycle c, χ(c) = Σ weight / Σ delay.
func SemiHoward(g Graph, delay []float64, verbose int) (Result, error) {
	if len(delay) != len(g.Weight) {
		return Result{}, fmt.Errorf("howard: delay has %d entries, graph has %d arcs", len(delay), len(g.Weight))
	}
	return run(g, delay, verbose)
}

func run(g Graph, delay []float64, verbose int) (Result, error) {
	n := g.NumVertices
	out := buildAdjacency(g)

	if verbose != -1 {
		for v := 0; v < n; v++ {
			if len(out[v]) == 0 {
				return Result{}, fmt.Errorf("%w: vertex %d", ErrInvalidInput, v)
			}
		}
	}

	policyArc := make([]int, n)
	for v := 0; v < n; v++ {
		if len(out[v]) > 0 {
			policyArc[v] = out[v][0]
		} else {
			policyArc[v] = -1
		}
	}

	var res evalResult
	iterations := 0
	for {
		iterations++
		res = evaluate(g, delay, policyArc)
		improved := false
		for u := 0; u < n; u++ {
			if len(out[u]) == 0 {
				continue
			}
			// A larger χ wins first; on equal χ, a smaller bias wins, since
			// evaluate's v carries χ·T − A with a positive sign.
			bestArc := policyArc[u]
			bestChi, bestVal := res.chi[u], res.v[u]
			for _, arc := range out[u] {
				w := g.To[arc]
				candVal := arcContribution(g, delay, arc, res.chi[w]) + res.v[w]
				if res.chi[w] > bestChi || (res.chi[w] == bestChi && candVal < bestVal) {
					bestArc, bestChi, bestVal = arc, res.chi[w], candVal
				}
			}
			if bestArc != policyArc[u] {
				policyArc[u] = bestArc
				improved = true
			}
		}
		if !improved || iterations >= maxIterations {
			break
		}
	}

	policy := make([]int, n)
	for v := 0; v < n; v++ {
		if policyArc[v] >= 0 {
			policy[v] = g.To[policyArc[v]]
		} else {
			policy[v] = v
		}
	}

	return Result{
		Chi:        res.chi,
		V:          res.v,
		Policy:     policy,
		Iterations: iterations,
		Components: res.components,
	}, nil
}

func buildAdjacency(g Graph) [][]int {
	out := make([][]int, g.NumVertices)
	for arc, from := range g.From {
		out[from] = append(out[from], arc)
	}
	return out
}

type evalResult struct {
	chi        []float64
	v          []float64
	components int
}

// evaluate solves, per rho-shaped component of the functional graph
// defined by policyArc, the cycle mean χ and the bias v such that
// v(u) = χ·T(u,π(u)) − A(u,π(u)) + v(π(u)) (spec.md §4.2).
func evaluate(g Graph, delay []float64, policyArc []int) evalResult {
	n := g.NumVertices
	chi := make([]float64, n)
	v := make([]float64, n)
	const (
		unvisited = 0
		onPath    = 1
		done      = 2
	)
	color := make([]int8, n)
	compOf := make([]int, n)
	for i := range compOf {
		compOf[i] = -1
	}
	components := 0

	next := func(u int) int {
		if policyArc[u] < 0 {
			return u
		}
		return g.To[policyArc[u]]
	}

	for start := 0; start < n; start++ {
		if color[start] != unvisited {
			continue
		}
		var path []int
		u := start
		for color[u] == unvisited {
			color[u] = onPath
			path = append(path, u)
			u = next(u)
		}

		if color[u] == onPath {
			// u closes a fresh cycle within path.
			k := indexOf(path, u)
			cycle := path[k:]
			tail := path[:k]

			sumW, sumT := 0.0, 0.0
			for _, c := range cycle {
				if policyArc[c] >= 0 {
					sumW += g.Weight[policyArc[c]]
					sumT += delay[policyArc[c]]
				}
			}
			mean := sumW / sumT
			comp := components
			components++

			v[cycle[0]] = 0
			for i := len(cycle) - 1; i >= 1; i-- {
				c := cycle[i]
				nx := next(c)
				v[c] = arcContribution(g, delay, policyArc[c], mean) + v[nx]
			}
			for _, c := range cycle {
				chi[c] = mean
				compOf[c] = comp
			}
			closeTail(g, delay, policyArc, tail, next, mean, v, chi, compOf, comp)
		} else {
			// u is already finalized; attach path to its component.
			comp := compOf[u]
			mean := chi[u]
			closeTail(g, delay, policyArc, path, next, mean, v, chi, compOf, comp)
		}
		for _, p := range path {
			color[p] = done
		}
	}
	return evalResult{chi: chi, v: v, components: components}
}

func closeTail(g Graph, delay []float64, policyArc []int, tail []int, next func(int) int, mean float64, v, chi []float64, compOf []int, comp int) {
	for i := len(tail) - 1; i >= 0; i-- {
		u := tail[i]
		nx := next(u)
		v[u] = arcContribution(g, delay, policyArc[u], mean) + v[nx]
		chi[u] = mean
		compOf[u] = comp
	}
}

func arcContribution(g Graph, delay []float64, arc int, chi float64) float64 {
	if arc < 0 {
		return 0
	}
	return chi*delay[arc] - g.Weight[arc]
}

func indexOf(path []int, v int) int {
	for i, p := range path {
		if p == v {
			return i
		}
	}
	return -1
}
