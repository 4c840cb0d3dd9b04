// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"fmt"
	"io"

	"github.com/lecrapouille/tpne-core"
	"github.com/lecrapouille/tpne-core/maxplus"
)

// ExportJulia writes net's Max-Plus adjacency and implicit linear-system
// matrices as a Julia/MaxPlus.jl script (spec.md §4.7): one `sparse(I, J,
// V, m, n)` call per matrix (N, T, and, when net is canonicalizable, D, A,
// B, C) preceded by a comment block naming which transitions are inputs,
// states or outputs. net must be an event graph (tpne.IsEventGraph);
// Julia export has no meaningful rendering otherwise.
func ExportJulia(net *tpne.Net, w io.Writer) error {
	write := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, format, args...)
		if err != nil {
			return fmt.Errorf("formats: %w: %s", ErrIoError, err)
		}
		return nil
	}

	N, T, err := tpne.AdjacencyMatrices(net)
	if err != nil {
		return fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
	}
	n := len(net.Transitions())

	if err := write("# Generated from net %q\n", net.Name); err != nil {
		return err
	}
	if err := writeSparseAssign(write, "N", N, n, n); err != nil {
		return err
	}
	if err := writeSparseAssign(write, "T", T, n, n); err != nil {
		return err
	}

	canon := tpne.Canonicalize(net)
	D, A, B, C, err := tpne.LinearSystem(canon)
	if err != nil {
		// A net that isn't reducible to a canonical single-token form
		// (e.g. it still has places with more than one arc in or out
		// after canonicalization) skips the implicit-system section; N
		// and T above remain valid and are all that's emitted.
		return nil
	}
	if err := write("\n# inputs/states/outputs classification\n"); err != nil {
		return err
	}
	if err := writeClassificationComment(write, canon); err != nil {
		return err
	}
	if err := writeSparseAssign(write, "D", D, D.Rows, D.Cols); err != nil {
		return err
	}
	if err := writeSparseAssign(write, "A", A, A.Rows, A.Cols); err != nil {
		return err
	}
	if err := writeSparseAssign(write, "B", B, B.Rows, B.Cols); err != nil {
		return err
	}
	return writeSparseAssign(write, "C", C, C.Rows, C.Cols)
}

func writeSparseAssign(write func(string, ...any) error, name string, m *maxplus.Matrix, rows, cols int) error {
	return write("%s = sparse(%s, %d, %d)\n", name, m.String(), rows, cols)
}

func writeClassificationComment(write func(string, ...any) error, net *tpne.Net) error {
	for i := range net.Transitions() {
		t := &net.Transitions()[i]
		role := "state"
		switch {
		case t.IsInput():
			role = "input"
		case t.IsOutput():
			role = "output"
		}
		if err := write("# %s: %s\n", t.Key(), role); err != nil {
			return err
		}
	}
	return nil
}
