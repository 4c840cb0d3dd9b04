// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"fmt"
	"math"

	"github.com/lecrapouille/tpne-core"
)

// ImportFlowshop builds a timed event graph from a dense processing-time
// matrix, following original_source/src/Net/Imports/ImportFlowshop.cpp's
// two-phase construction (spec.md §4.7, §8 scenario 6): first the
// per-(machine, piece) processing-time places, chained in increasing
// column order and skipping -Inf ("machine does not process piece")
// entries, then one input place per machine row and one per piece
// column.
//
// Unlike the original — whose arc-insertion loop connects two places
// directly, a shape this package's bipartite Arc invariant forbids, and
// whose machine/piece input places are added without any arc at all (a
// acknowledged rough edge, "// FIXME id" in the original) — every place
// here is reachable: a zero-duration transition sits between each
// consecutive pair of processing places, carrying the real duration on
// its outgoing arc, and machine/piece inputs feed the first processing
// place of their row/column through their own transition.
func ImportFlowshop(matrix [][]float64, opts ImportOptions) (*tpne.Net, error) {
	if len(matrix) == 0 {
		return nil, fmt.Errorf("formats: %w: flowshop matrix has no rows", tpne.ErrInvalidInput)
	}
	machines := len(matrix)
	pieces := len(matrix[0])
	for _, row := range matrix {
		if len(row) != pieces {
			return nil, fmt.Errorf("formats: %w: flowshop matrix rows have inconsistent lengths", tpne.ErrInvalidInput)
		}
	}

	net := tpne.New("flowshop", tpne.TimedEventGraph)
	processing := make([][]tpne.NodeRef, machines)
	present := make([][]bool, machines)

	for m := 0; m < machines; m++ {
		processing[m] = make([]tpne.NodeRef, pieces)
		present[m] = make([]bool, pieces)
		for p := 0; p < pieces; p++ {
			if math.IsInf(matrix[m][p], -1) {
				continue
			}
			caption := fmt.Sprintf("m%dp%d", m, p)
			place, err := net.AddPlace(-1, caption, float32(2+p)*100, float32(m)*100, 0)
			if err != nil {
				return nil, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
			}
			processing[m][p] = place.Ref()
			present[m][p] = true
		}
	}

	for m := 0; m < machines; m++ {
		for p := 0; p < pieces-1; p++ {
			if !present[m][p] {
				continue
			}
			next := p + 1
			for next < pieces && !present[m][next] {
				next++
			}
			if next >= pieces {
				continue
			}
			if err := chainPlaces(net, processing[m][p], processing[m][next], float32(matrix[m][p])); err != nil {
				return nil, err
			}
		}
	}

	for m := 0; m < machines; m++ {
		firstP := firstPresent(present[m])
		if firstP < 0 {
			continue
		}
		machinePlace, err := net.AddPlace(-1, fmt.Sprintf("Machine %d", m), 0, float32(m)*100, 1)
		if err != nil {
			return nil, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
		}
		if err := chainPlaces(net, machinePlace.Ref(), processing[m][firstP], 0); err != nil {
			return nil, err
		}
	}

	for p := 0; p < pieces; p++ {
		m := firstPresentColumn(present, p)
		if m < 0 {
			continue
		}
		piecePlace, err := net.AddPlace(-1, fmt.Sprintf("Piece %d", p), float32(2+p)*100, float32(machines)*100+50, 1)
		if err != nil {
			return nil, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
		}
		if err := chainPlaces(net, piecePlace.Ref(), processing[m][p], 0); err != nil {
			return nil, err
		}
	}

	return net, nil
}

// chainPlaces inserts a zero-duration transition between two places, with
// duration carried by the transition's outgoing arc — the bipartite
// equivalent of the original's place-to-place arc.
func chainPlaces(net *tpne.Net, from, to tpne.NodeRef, duration float32) error {
	t, err := net.AddTransition(-1, "", 0, 0, 0)
	if err != nil {
		return fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
	}
	if _, err := net.AddArc(from, t.Ref(), 0); err != nil {
		return fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
	}
	if _, err := net.AddArc(t.Ref(), to, duration); err != nil {
		return fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
	}
	return nil
}

func firstPresent(row []bool) int {
	for i, ok := range row {
		if ok {
			return i
		}
	}
	return -1
}

func firstPresentColumn(present [][]bool, col int) int {
	for m := range present {
		if present[m][col] {
			return m
		}
	}
	return -1
}
