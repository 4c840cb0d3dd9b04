// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"fmt"
	"io"

	"github.com/lecrapouille/tpne-core"
)

// ExportLatex writes net as a LaTeX/TikZ picture (spec.md §4.7):
// `\node[place, tokens=k]` / `\node[transition]` with the y-axis flipped
// (TikZ's origin is bottom-left, the net model's is top-left) and arcs
// carrying a midway duration label. Angles are not representable in
// plain TikZ node placement and are dropped, one of the lossy format
// conversions spec.md §6 calls out explicitly ("LaTeX omits angles").
func ExportLatex(net *tpne.Net, w io.Writer) error {
	write := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, format, args...)
		if err != nil {
			return fmt.Errorf("formats: %w: %s", ErrIoError, err)
		}
		return nil
	}

	_, _, _, maxY := net.Bounds()

	if err := write("\\begin{tikzpicture}\n"); err != nil {
		return err
	}
	for _, p := range net.Places() {
		if err := write("  \\node[place, tokens=%d] (%s) at (%g, %g) {%s};\n",
			p.Tokens, p.Key(), p.X, maxY-p.Y, p.Caption); err != nil {
			return err
		}
	}
	for i := range net.Transitions() {
		t := &net.Transitions()[i]
		if err := write("  \\node[transition] (%s) at (%g, %g) {%s};\n",
			t.Key(), t.X, maxY-t.Y, t.Caption); err != nil {
			return err
		}
	}
	for _, a := range net.Arcs() {
		label := ""
		if a.HasDuration() {
			label = fmt.Sprintf(" node[midway, above] {%g}", a.Duration)
		}
		if err := write("  \\draw[->] (%s) --%s (%s);\n", a.From.Key(), label, a.To.Key()); err != nil {
			return err
		}
	}
	return write("\\end{tikzpicture}\n")
}
