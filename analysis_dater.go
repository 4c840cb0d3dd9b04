// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import (
	"fmt"
	"strings"

	"github.com/lecrapouille/tpne-core/maxplus"
)

// DaterForm renders the tropical dater equations of an event graph: the
// date of the n-th firing of each state and output transition, as a
// function of the D/A/B/C matrices extracted by LinearSystem (spec.md
// §4.6). One equation per line, 1-based transition numbering within each
// class (matching Transition.Index after LinearSystem runs).
func DaterForm(net *Net) string {
	D, A, B, C, err := LinearSystem(net)
	if err != nil {
		return fmt.Sprintf("# dater form unavailable: %v", err)
	}
	var b strings.Builder
	ns, ni, no := D.Rows, B.Cols, C.Rows

	for i := 0; i < ns; i++ {
		var terms []string
		for j := 0; j < ns; j++ {
			if v := D.Get(i, j); v != maxplus.Zero {
				terms = append(terms, fmt.Sprintf("%s + x%d(n)", formatScalar(v), j+1))
			}
		}
		for j := 0; j < ns; j++ {
			if v := A.Get(i, j); v != maxplus.Zero {
				terms = append(terms, fmt.Sprintf("%s + x%d(n-1)", formatScalar(v), j+1))
			}
		}
		for k := 0; k < ni; k++ {
			if v := B.Get(i, k); v != maxplus.Zero {
				terms = append(terms, fmt.Sprintf("%s + u%d(n)", formatScalar(v), k+1))
			}
		}
		fmt.Fprintf(&b, "x%d(n) = %s\n", i+1, renderMax(terms))
	}
	for i := 0; i < no; i++ {
		var terms []string
		for j := 0; j < ns; j++ {
			if v := C.Get(i, j); v != maxplus.Zero {
				terms = append(terms, fmt.Sprintf("%s + x%d(n)", formatScalar(v), j+1))
			}
		}
		fmt.Fprintf(&b, "y%d(n) = %s\n", i+1, renderMax(terms))
	}
	return b.String()
}

// CounterForm renders the counter equations dual to DaterForm: the number
// of firings of each transition that have occurred by date t. It is the
// min-plus dual of the dater system — max becomes min, + becomes −, and an
// A-matrix (one-token) edge additionally offsets the count by one firing,
// since a token delays the dependent transition by exactly one firing of
// its source.
func CounterForm(net *Net) string {
	D, A, B, C, err := LinearSystem(net)
	if err != nil {
		return fmt.Sprintf("# counter form unavailable: %v", err)
	}
	var b strings.Builder
	ns, ni, no := D.Rows, B.Cols, C.Rows

	for i := 0; i < ns; i++ {
		var terms []string
		for j := 0; j < ns; j++ {
			if v := D.Get(i, j); v != maxplus.Zero {
				terms = append(terms, fmt.Sprintf("z%d(t-%s)", j+1, formatScalar(v)))
			}
		}
		for j := 0; j < ns; j++ {
			if v := A.Get(i, j); v != maxplus.Zero {
				terms = append(terms, fmt.Sprintf("z%d(t-%s)-1", j+1, formatScalar(v)))
			}
		}
		for k := 0; k < ni; k++ {
			if v := B.Get(i, k); v != maxplus.Zero {
				terms = append(terms, fmt.Sprintf("v%d(t-%s)", k+1, formatScalar(v)))
			}
		}
		fmt.Fprintf(&b, "z%d(t) = %s\n", i+1, renderMin(terms))
	}
	for i := 0; i < no; i++ {
		var terms []string
		for j := 0; j < ns; j++ {
			if v := C.Get(i, j); v != maxplus.Zero {
				terms = append(terms, fmt.Sprintf("z%d(t-%s)", j+1, formatScalar(v)))
			}
		}
		fmt.Fprintf(&b, "w%d(t) = %s\n", i+1, renderMin(terms))
	}
	return b.String()
}

func renderMax(terms []string) string {
	if len(terms) == 0 {
		return "-Inf"
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return "max(" + strings.Join(terms, ", ") + ")"
}

func renderMin(terms []string) string {
	if len(terms) == 0 {
		return "+Inf"
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return "min(" + strings.Join(terms, ", ") + ")"
}

func formatScalar(v float64) string {
	return fmt.Sprintf("%g", v)
}
