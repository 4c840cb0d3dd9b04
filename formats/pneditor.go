// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/lecrapouille/tpne-core"
)

// PNEditorFiles groups the four sibling writers PN-editor's binary format
// is split across (spec.md §4.7): `.pns` structural counts and arc id
// lists, `.pnl` node coordinates, `.pnkp` place captions, `.pnk`
// transition captions. All four must be supplied; ExportPNEditor writes
// to each independently and stops at the first failure.
type PNEditorFiles struct {
	PNS, PNL, PNKP, PNK io.Writer
}

// kindTag is the PN-editor on-disk node-kind discriminant: 0 for places,
// 1 for transitions. Not specified verbatim by spec.md's one-line
// description of `.pns`; chosen to mirror NodeRef.Kind's own
// place-before-transition ordering (node.go).
const (
	kindTagPlace      int32 = 0
	kindTagTransition int32 = 1
)

// ExportPNEditor writes net across the four PN-editor sibling files,
// little-endian throughout (spec.md §6: "Binary endianness in the
// PN-editor format is little-endian throughout").
func ExportPNEditor(net *tpne.Net, files PNEditorFiles) error {
	if err := writePNS(net, files.PNS); err != nil {
		return err
	}
	if err := writePNL(net, files.PNL); err != nil {
		return err
	}
	if err := writeCaptions(files.PNKP, net.Places(), func(p tpne.Place) string { return p.Caption }); err != nil {
		return err
	}
	return writeCaptions(files.PNK, net.Transitions(), func(t tpne.Transition) string { return t.Caption })
}

// writePNS writes the node counts followed by, for each arc, its
// (fromKind, fromID, toKind, toID) quadruple and duration — the "counts
// and id lists" spec.md names; the trailing per-arc duration is this
// exporter's own documented extension, since PN-editor has no other file
// to carry it in.
func writePNS(net *tpne.Net, w io.Writer) error {
	header := []int32{int32(len(net.Places())), int32(len(net.Transitions())), int32(len(net.Arcs()))}
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("formats: %w: %s", ErrIoError, err)
		}
	}
	for _, a := range net.Arcs() {
		fields := []int32{kindTag(a.From.Kind), int32(a.From.ID), kindTag(a.To.Kind), int32(a.To.ID)}
		for _, v := range fields {
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return fmt.Errorf("formats: %w: %s", ErrIoError, err)
			}
		}
		duration := a.Duration
		if math.IsNaN(float64(duration)) {
			duration = 0
		}
		if err := binary.Write(w, binary.LittleEndian, duration); err != nil {
			return fmt.Errorf("formats: %w: %s", ErrIoError, err)
		}
	}
	return nil
}

func kindTag(k tpne.Kind) int32 {
	if k == tpne.TransitionKind {
		return kindTagTransition
	}
	return kindTagPlace
}

// writePNL writes float32 (x, y) pairs for every transition, then every
// place, matching spec.md's "coordinates for transitions then places".
func writePNL(net *tpne.Net, w io.Writer) error {
	for i := range net.Transitions() {
		t := &net.Transitions()[i]
		if err := writeCoord(w, t.X, t.Y); err != nil {
			return err
		}
	}
	for i := range net.Places() {
		p := &net.Places()[i]
		if err := writeCoord(w, p.X, p.Y); err != nil {
			return err
		}
	}
	return nil
}

func writeCoord(w io.Writer, x, y float32) error {
	if err := binary.Write(w, binary.LittleEndian, x); err != nil {
		return fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	if err := binary.Write(w, binary.LittleEndian, y); err != nil {
		return fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	return nil
}

func writeCaptions[T any](w io.Writer, xs []T, caption func(T) string) error {
	buf := bufio.NewWriter(w)
	for _, x := range xs {
		if _, err := fmt.Fprintln(buf, caption(x)); err != nil {
			return fmt.Errorf("formats: %w: %s", ErrIoError, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	return nil
}
