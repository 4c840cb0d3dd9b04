// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"fmt"
	"io"

	"github.com/lecrapouille/tpne-core"
)

// ExportGraphviz writes net as a Graphviz dot digraph (spec.md §4.7):
// places as circles labeled with a bullet per token, transitions as
// boxes, green when enabled in the net's current marking, arcs labeled
// with their duration when they originate from a transition.
func ExportGraphviz(net *tpne.Net, w io.Writer) error {
	write := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, format, args...)
		if err != nil {
			return fmt.Errorf("formats: %w: %s", ErrIoError, err)
		}
		return nil
	}

	if err := write("digraph %q {\n", net.Name); err != nil {
		return err
	}

	for _, p := range net.Places() {
		label := p.Caption
		for i := uint64(0); i < p.Tokens; i++ {
			label += "•"
		}
		if err := write("  %s [shape=circle, label=%q];\n", p.Key(), label); err != nil {
			return err
		}
	}
	for i := range net.Transitions() {
		t := &net.Transitions()[i]
		color := ""
		if t.Enabled(net) {
			color = ", style=filled, fillcolor=green"
		}
		label := t.Caption
		if t.TimeInterval != nil && !t.TimeInterval.Trivial() {
			label += "\\n" + t.TimeInterval.Window()
		}
		if err := write("  %s [shape=box, label=%q%s];\n", t.Key(), label, color); err != nil {
			return err
		}
	}
	for _, a := range net.Arcs() {
		label := ""
		if a.HasDuration() {
			label = fmt.Sprintf(" [label=%q]", formatFloat(a.Duration))
		}
		if err := write("  %s -> %s%s;\n", a.From.Key(), a.To.Key(), label); err != nil {
			return err
		}
	}
	return write("}\n")
}

func formatFloat(v float32) string {
	return fmt.Sprintf("%g", v)
}
