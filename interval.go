// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import (
	"bytes"
	"fmt"
	"strconv"
)

// Bkind is the type of possible time constraints bounds
type Bkind uint8

// Bkind is an enumeration describing the three different types of (time)
// interval bounds. BINFTY, as a right bound, is used for infinite intervals. As
// a left bound, it marks a bound that was never set and imposes no lower
// constraint (see String, Contains and Trivial).
const (
	BINFTY Bkind = iota // ..,w[
	BCLOSE              // [a,..
	BOPEN               // ]a,..
)

// Bound is the type of bounds in a time interval.
type Bound struct {
	Bkind
	Value int
}

func (b Bound) String() string {
	switch b.Bkind {
	case BINFTY:
		return "w"
	case BCLOSE:
		return fmt.Sprintf("=%d", b.Value)
	default:
		return fmt.Sprintf("x%d", b.Value)
	}
}

// PrintLowerBound returns a textual representation of b used as a lower
// bound constraint, such as "4 ≤" or "5 <". We return the string "∞" if b
// is infinite (which should not happen in practice).
func (b Bound) PrintLowerBound() string {
	switch b.Bkind {
	case BINFTY:
		return "∞"
	case BCLOSE:
		return fmt.Sprintf("%d ≤", b.Value)
	default:
		return fmt.Sprintf("%d <", b.Value)
	}
}

// PrintUpperBound is the dual of PrintLowerBound and returns a
// representation of b used as an upper bound constraint, such as "< 4" or
// "≤ 5". We return the string "< ∞" if b is infinite.
func (b Bound) PrintUpperBound() string {
	switch b.Bkind {
	case BINFTY:
		return "< ∞"
	case BCLOSE:
		return fmt.Sprintf("≤ %d", b.Value)
	default:
		return fmt.Sprintf("< %d", b.Value)
	}
}

// TimeInterval is the type of time intervals.
type TimeInterval struct {
	Left, Right Bound
}

func (i *TimeInterval) String() string {
	if i.Left.Bkind == BINFTY {
		// it means interval was never set
		return "[0,w["
	}
	var buf bytes.Buffer
	if i.Left.Bkind == BCLOSE {
		buf.WriteRune('[')
	} else {
		buf.WriteRune(']')
	}
	buf.WriteString(strconv.Itoa(int(i.Left.Value)))
	buf.WriteRune(',')
	if i.Right.Bkind == BINFTY {
		buf.WriteString("w[")
	} else {
		buf.WriteString(strconv.Itoa(int(i.Right.Value)))
		if i.Right.Bkind == BCLOSE {
			buf.WriteRune(']')

		} else {
			buf.WriteRune('[')
		}
	}
	return buf.String()
}

// Contains reports whether the discrete tick count v lies inside i. A
// BINFTY left bound imposes no lower constraint (matches the zero-value,
// uninitialized interval); BINFTY on the right imposes no upper one.
func (i *TimeInterval) Contains(v int) bool {
	switch i.Left.Bkind {
	case BCLOSE:
		if v < i.Left.Value {
			return false
		}
	case BOPEN:
		if v <= i.Left.Value {
			return false
		}
	}
	switch i.Right.Bkind {
	case BCLOSE:
		if v > i.Right.Value {
			return false
		}
	case BOPEN:
		if v >= i.Right.Value {
			return false
		}
	}
	return true
}

// Window renders the firing-window constraint of i in the inequality
// notation Tina diagnostics use, e.g. "4 ≤ t ≤ 5", built from
// PrintLowerBound/PrintUpperBound. Exporters that annotate a timed
// transition's label use this instead of String's compact bracket form,
// which is meant for the net's own textual serialization.
func (i *TimeInterval) Window() string {
	return i.Left.PrintLowerBound() + " t " + i.Right.PrintUpperBound()
}

/*****************************************************************************/

// Trivial is true if the time interval i is of the form [0, w[ or if the
// interval is un-initialized (meaning the left part of the interval is of kind
// BINFTY)
func (i *TimeInterval) Trivial() bool {
	if i.Left.Bkind == BINFTY {
		return true
	}
	if i.Right.Bkind != BINFTY {
		return false
	}
	if i.Left.Bkind != BCLOSE {
		return false
	}
	if i.Left.Value != 0 {
		return false
	}
	return true
}
