// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lecrapouille/tpne-core"
	"github.com/lecrapouille/tpne-core/formats"
)

func TestJSONRoundTripIsIdentityUpToFieldOrdering(t *testing.T) {
	const doc = `{"nets":[{"name":"t","type":"Timed Petri net","places":[{"id":0,"caption":"P0","x":1,"y":2,"tokens":1}],"transitions":[{"id":0,"caption":"T0","x":3,"y":4,"angle":0}],"arcs":[{"from":"P0","to":"T0"},{"from":"T0","to":"P0","duration":2.5}]}]}`

	nets, err := formats.ImportJSON(strings.NewReader(doc), formats.ImportOptions{})
	require.NoError(t, err)
	require.Len(t, nets, 1)
	net := nets[0]
	require.Equal(t, "t", net.Name)
	require.Equal(t, tpne.TimedPetri, net.Type)
	require.Equal(t, uint64(1), net.Place(0).Tokens)
	require.True(t, math.IsNaN(float64(net.Arcs()[0].Duration)))
	require.Equal(t, float32(2.5), net.Arcs()[1].Duration)

	var buf bytes.Buffer
	require.NoError(t, formats.ExportJSON(nets, &buf))

	roundTripped, err := formats.ImportJSON(&buf, formats.ImportOptions{})
	require.NoError(t, err)
	require.Len(t, roundTripped, 1)
	require.Equal(t, net.Name, roundTripped[0].Name)
	require.Equal(t, net.Type, roundTripped[0].Type)
	require.Len(t, roundTripped[0].Arcs(), 2)
	require.True(t, math.IsNaN(float64(roundTripped[0].Arcs()[0].Duration)))
	require.Equal(t, float32(2.5), roundTripped[0].Arcs()[1].Duration)
}

func TestImportJSONRejectsUnknownArcEndpoint(t *testing.T) {
	const doc = `{"nets":[{"name":"t","type":"Petri net","places":[{"id":0,"caption":"P0","x":0,"y":0,"tokens":0}],"transitions":[],"arcs":[{"from":"P0","to":"T9"}]}]}`
	_, err := formats.ImportJSON(strings.NewReader(doc), formats.ImportOptions{})
	require.Error(t, err)
}

func TestExportGraphvizProducesADigraph(t *testing.T) {
	net := tpne.New("g", tpne.Petri)
	_, err := net.AddPlace(-1, "P0", 0, 0, 1)
	require.NoError(t, err)
	_, err = net.AddTransition(-1, "T0", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formats.ExportGraphviz(net, &buf))
	out := buf.String()
	require.Contains(t, out, "digraph")
	require.Contains(t, out, "fillcolor=green")
}

func TestExportGraphvizAnnotatesFiringWindow(t *testing.T) {
	net := tpne.New("g", tpne.TimedPetri)
	_, err := net.AddPlace(-1, "P0", 0, 0, 1)
	require.NoError(t, err)
	_, err = net.AddTransition(-1, "T0", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, 0)
	require.NoError(t, err)
	net.Transitions()[0].TimeInterval = &tpne.TimeInterval{
		Left:  tpne.Bound{Bkind: tpne.BCLOSE, Value: 4},
		Right: tpne.Bound{Bkind: tpne.BCLOSE, Value: 5},
	}

	var buf bytes.Buffer
	require.NoError(t, formats.ExportGraphviz(net, &buf))
	require.Contains(t, buf.String(), "4 ≤ t ≤ 5")
}

func TestExportPNEditorWritesToAllFourSinks(t *testing.T) {
	net := tpne.New("pe", tpne.Petri)
	_, err := net.AddPlace(-1, "P0", 1, 2, 1)
	require.NoError(t, err)
	_, err = net.AddTransition(-1, "T0", 3, 4, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, 0)
	require.NoError(t, err)

	var pns, pnl, pnkp, pnk bytes.Buffer
	err = formats.ExportPNEditor(net, formats.PNEditorFiles{PNS: &pns, PNL: &pnl, PNKP: &pnkp, PNK: &pnk})
	require.NoError(t, err)
	require.NotEmpty(t, pns.Bytes())
	require.NotEmpty(t, pnl.Bytes())
	require.Equal(t, "P0\n", pnkp.String())
	require.Equal(t, "T0\n", pnk.String())
}

func TestExportImportPNMLRoundTripsStructure(t *testing.T) {
	net := tpne.New("n", tpne.TimedPetri)
	_, err := net.AddPlace(-1, "P0", 1, 2, 1)
	require.NoError(t, err)
	_, err = net.AddTransition(-1, "T0", 3, 4, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, 2.5)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formats.ExportPNML(net, &buf))

	imported, err := formats.ImportPNML(&buf, formats.ImportOptions{})
	require.NoError(t, err)
	require.Len(t, imported.Places(), 1)
	require.Len(t, imported.Transitions(), 1)
	require.Len(t, imported.Arcs(), 2)
	require.Equal(t, uint64(1), imported.Place(0).Tokens)
}

func TestExportImportTEGRoundTrips(t *testing.T) {
	net := tpne.New("teg", tpne.TimedEventGraph)
	_, err := net.AddTransition(-1, "t0", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddTransition(-1, "t1", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddPlace(-1, "p0", 0, 0, 1)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, 8)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 1}, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formats.ExportTEG(net, &buf))
	require.Contains(t, buf.String(), "tokens=1 duration=8")

	imported, err := formats.ImportTEG(&buf, formats.ImportOptions{})
	require.NoError(t, err)
	require.Len(t, imported.Places(), 1)
	require.Len(t, imported.Transitions(), 2)
}

func TestImportFlowshopBuildsMachineAndPiecePlaces(t *testing.T) {
	matrix := [][]float64{
		{1, 2, 3},
		{4, math.Inf(-1), 6},
	}
	net, err := formats.ImportFlowshop(matrix, formats.ImportOptions{})
	require.NoError(t, err)
	// 5 finite processing places + 2 machine input places + 3 piece input places.
	require.Len(t, net.Places(), 10)
}

func TestImportFlowshopRejectsRaggedMatrix(t *testing.T) {
	_, err := formats.ImportFlowshop([][]float64{{1, 2}, {3}}, formats.ImportOptions{})
	require.Error(t, err)
}

func TestExportJuliaEmitsSparseCalls(t *testing.T) {
	net := tpne.New("j", tpne.TimedEventGraph)
	_, err := net.AddTransition(-1, "t0", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddTransition(-1, "t1", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddPlace(-1, "p0", 0, 0, 1)
	require.NoError(t, err)
	_, err = net.AddPlace(-1, "p1", 0, 0, 1)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, 8)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 1}, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.TransitionKind, ID: 1}, tpne.NodeRef{Kind: tpne.PlaceKind, ID: 1}, 8)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 1}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formats.ExportJulia(net, &buf))
	out := buf.String()
	require.Contains(t, out, "N = sparse(")
	require.Contains(t, out, "T = sparse(")
}

func TestExportSymfonyListsPlacesAndTransitions(t *testing.T) {
	net := tpne.New("wf", tpne.Petri)
	_, err := net.AddPlace(-1, "start", 0, 0, 1)
	require.NoError(t, err)
	_, err = net.AddPlace(-1, "end", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddTransition(-1, "go", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, tpne.NodeRef{Kind: tpne.PlaceKind, ID: 1}, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formats.ExportSymfony(net, &buf))
	out := buf.String()
	require.Contains(t, out, "start")
	require.Contains(t, out, "initial_marking")
}

func TestExportGrafcetCppRejectsNonGrafcetNet(t *testing.T) {
	net := tpne.New("p", tpne.Petri)
	var buf bytes.Buffer
	err := formats.ExportGrafcetCpp(net, &buf)
	require.Error(t, err)
}

func TestExportCodesysRejectsNonGrafcetNet(t *testing.T) {
	net := tpne.New("p", tpne.Petri)
	var buf bytes.Buffer
	err := formats.ExportCodesys(net, &buf)
	require.Error(t, err)
}
