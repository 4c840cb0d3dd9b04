// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lecrapouille/tpne-core"
)

func twoPlaceNet(t *testing.T) *tpne.Net {
	t.Helper()
	net := tpne.New("two-place", tpne.Petri)
	_, err := net.AddPlace(-1, "p0", 0, 0, 1)
	require.NoError(t, err)
	_, err = net.AddPlace(-1, "p1", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddTransition(-1, "t0", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, tpne.NodeRef{Kind: tpne.PlaceKind, ID: 1}, 5)
	require.NoError(t, err)
	return net
}

func TestAddArcRejectsUnknownEndpoint(t *testing.T) {
	net := tpne.New("n", tpne.Petri)
	_, err := net.AddPlace(-1, "p0", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, 0)
	require.Error(t, err)
	require.True(t, errors.Is(err, tpne.ErrUnknownEndpoint))
}

func TestAddArcRejectsSameKindEndpoints(t *testing.T) {
	net := tpne.New("n", tpne.Petri)
	_, err := net.AddPlace(-1, "p0", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddPlace(-1, "p1", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.PlaceKind, ID: 1}, 0)
	require.Error(t, err)
	require.True(t, errors.Is(err, tpne.ErrSameKindEndpoints))
}

func TestAddArcRejectsDuplicate(t *testing.T) {
	net := twoPlaceNet(t)
	_, err := net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, 0)
	require.Error(t, err)
	require.True(t, errors.Is(err, tpne.ErrDuplicateArc))
}

func TestPlaceToTransitionArcDurationIsForcedToNaN(t *testing.T) {
	net := twoPlaceNet(t)
	arc := net.Arcs()[0]
	require.False(t, arc.HasDuration())
	require.True(t, arc.Duration != arc.Duration) // NaN
}

func TestRemoveNodeRenumbersSameKindSiblings(t *testing.T) {
	net := twoPlaceNet(t)
	require.NoError(t, net.RemoveNode(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}))
	require.Equal(t, 1, len(net.Places()))
	require.Equal(t, 0, net.Places()[0].ID)
	require.Equal(t, "p1", net.Places()[0].Caption)
	for _, a := range net.Arcs() {
		require.NotEqual(t, tpne.NodeRef{Kind: tpne.PlaceKind, ID: 1}, a.From)
		require.NotEqual(t, tpne.NodeRef{Kind: tpne.PlaceKind, ID: 1}, a.To)
	}
}

func TestRemoveNodeDropsIncidentArcs(t *testing.T) {
	net := twoPlaceNet(t)
	require.NoError(t, net.RemoveNode(tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}))
	require.Empty(t, net.Arcs())
}

func TestFindNode(t *testing.T) {
	net := twoPlaceNet(t)
	ref, ok := net.FindNode("P1")
	require.True(t, ok)
	require.Equal(t, tpne.NodeRef{Kind: tpne.PlaceKind, ID: 1}, ref)

	_, ok = net.FindNode("P9")
	require.False(t, ok)
}

func TestMutationSinkObservesAddPlace(t *testing.T) {
	net := tpne.New("n", tpne.Petri)
	var seen []tpne.MutationKind
	net.SetMutationSink(func(m tpne.Mutation) { seen = append(seen, m.Kind) })
	_, err := net.AddPlace(-1, "p0", 0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []tpne.MutationKind{tpne.MutAddPlace}, seen)
}

func TestMutationRevertsAddPlace(t *testing.T) {
	net := tpne.New("n", tpne.Petri)
	var last tpne.Mutation
	net.SetMutationSink(func(m tpne.Mutation) { last = m })
	_, err := net.AddPlace(-1, "p0", 0, 0, 0)
	require.NoError(t, err)
	require.NoError(t, last.Revert(net))
	require.True(t, net.IsEmpty())
}

func TestResetNormalizesGrafcetTokensOnly(t *testing.T) {
	net := tpne.New("g", tpne.Grafcet)
	_, err := net.AddPlace(-1, "p0", 0, 0, 3)
	require.NoError(t, err)
	net.Reset()
	require.Equal(t, uint64(1), net.Places()[0].Tokens)

	petri := tpne.New("p", tpne.Petri)
	_, err = petri.AddPlace(-1, "p0", 0, 0, 3)
	require.NoError(t, err)
	petri.Reset()
	require.Equal(t, uint64(3), petri.Places()[0].Tokens)
}

func TestValidateRequiresEventGraphShape(t *testing.T) {
	net := tpne.New("teg", tpne.TimedEventGraph)
	_, err := net.AddPlace(-1, "p0", 0, 0, 1)
	require.NoError(t, err)
	_, err = net.AddTransition(-1, "t0", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, 0)
	require.NoError(t, err)

	err = net.Validate()
	require.Error(t, err)
	var ege *tpne.EventGraphError
	require.True(t, errors.As(err, &ege))
}

func TestBounds(t *testing.T) {
	net := tpne.New("n", tpne.Petri)
	_, err := net.AddPlace(-1, "p0", -2, 3, 0)
	require.NoError(t, err)
	_, err = net.AddPlace(-1, "p1", 5, -1, 0)
	require.NoError(t, err)
	minX, minY, maxX, maxY := net.Bounds()
	require.Equal(t, float32(-2), minX)
	require.Equal(t, float32(-1), minY)
	require.Equal(t, float32(5), maxX)
	require.Equal(t, float32(3), maxY)
}

func TestCloneIsIndependent(t *testing.T) {
	net := twoPlaceNet(t)
	clone := net.Clone()
	_, err := clone.AddPlace(-1, "p2", 0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 2, len(net.Places()))
	require.Equal(t, 3, len(clone.Places()))
}

func TestParseAndStringNetType(t *testing.T) {
	require.Equal(t, "GRAFCET", tpne.Grafcet.String())
	require.Equal(t, tpne.Grafcet, tpne.ParseNetType("GRAFCET"))
	require.Equal(t, tpne.Petri, tpne.ParseNetType("nonsense"))
}
