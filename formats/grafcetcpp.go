// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"fmt"
	"io"
	"strings"

	"github.com/lecrapouille/tpne-core"
	"github.com/lecrapouille/tpne-core/bexpr"
)

// ExportGrafcetCpp writes net as the deterministic C++ code template
// spec.md §4.7 describes: fixed-size `X`/`T` arrays, `reset/step/
// setTransitions/setSteps/doActions` methods, and one stub per step
// (`P<i>()`, the action body) and per transition (`T<i>()`, the
// receptivity, rendered in C infix via bexpr.Expr.Infix(bexpr.LangC)).
// net.Type must be tpne.Grafcet; other types have no action/receptivity
// split to render.
func ExportGrafcetCpp(net *tpne.Net, w io.Writer) error {
	if net.Type != tpne.Grafcet {
		return fmt.Errorf("formats: %w: Grafcet C++ export requires a GRAFCET net", tpne.ErrInvalidInput)
	}
	write := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, format, args...)
		if err != nil {
			return fmt.Errorf("formats: %w: %s", ErrIoError, err)
		}
		return nil
	}

	places := net.Places()
	transitions := net.Transitions()

	if err := write("// Generated from net %q. Do not edit by hand.\n", net.Name); err != nil {
		return err
	}
	if err := write("class %s {\npublic:\n    bool X[%d];\n    bool T[%d];\n\n", safeIdent(net.Name), len(places), len(transitions)); err != nil {
		return err
	}
	if err := write("    void reset() {\n        for (auto &x : X) x = false;\n        X[0] = true;\n    }\n\n"); err != nil {
		return err
	}
	if err := write("    void step() {\n        doActions();\n        setTransitions();\n        setSteps();\n    }\n\n"); err != nil {
		return err
	}

	if err := write("    void setSteps() {\n"); err != nil {
		return err
	}
	for i := range places {
		if err := write("        X[%d] = %s(X[%d]);\n", i, stepFunc(i), i); err != nil {
			return err
		}
	}
	if err := write("    }\n\n"); err != nil {
		return err
	}

	if err := write("    void setTransitions() {\n"); err != nil {
		return err
	}
	for i := range transitions {
		if err := write("        T[%d] = %s();\n", i, transFunc(i)); err != nil {
			return err
		}
	}
	if err := write("    }\n\n"); err != nil {
		return err
	}

	if err := write("    void doActions() {\n        for (int i = 0; i < %d; ++i) if (X[i]) %s(i);\n    }\n\n", len(places), "runAction"); err != nil {
		return err
	}

	for i, p := range places {
		if err := write("    bool %s(bool active) { return active; } // step %s: %q\n", stepFunc(i), p.Key(), p.Caption); err != nil {
			return err
		}
	}
	for i, t := range transitions {
		expr, err := bexpr.Parse(t.Caption)
		infix := "true"
		if err == nil {
			infix = expr.Infix(bexpr.LangC)
		}
		if err := write("    bool %s() { return %s; } // transition %s\n", transFunc(i), infix, t.Key()); err != nil {
			return err
		}
	}

	return write("};\n")
}

func stepFunc(i int) string  { return fmt.Sprintf("P%d", i) }
func transFunc(i int) string { return fmt.Sprintf("T%d", i) }

func safeIdent(name string) string {
	r := strings.Map(func(c rune) rune {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			return c
		}
		return '_'
	}, name)
	if r == "" {
		return "Grafcet"
	}
	return r
}
