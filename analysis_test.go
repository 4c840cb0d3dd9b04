// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lecrapouille/tpne-core"
	"github.com/lecrapouille/tpne-core/maxplus"
)

// eventGraphNet builds the two-transition, two-place timed event graph used
// throughout spec.md §8's worked examples: t0 -(8)-> p0 -> t1 -(8)-> p1 ->
// t0, each place holding one token, giving a cycle mean of 8.
func eventGraphNet(t *testing.T) *tpne.Net {
	t.Helper()
	net := tpne.New("teg", tpne.TimedEventGraph)
	_, err := net.AddTransition(-1, "t0", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddTransition(-1, "t1", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddPlace(-1, "p0", 0, 0, 1)
	require.NoError(t, err)
	_, err = net.AddPlace(-1, "p1", 0, 0, 1)
	require.NoError(t, err)

	T0 := tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}
	T1 := tpne.NodeRef{Kind: tpne.TransitionKind, ID: 1}
	P0 := tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}
	P1 := tpne.NodeRef{Kind: tpne.PlaceKind, ID: 1}
	_, err = net.AddArc(T0, P0, 8)
	require.NoError(t, err)
	_, err = net.AddArc(P0, T1, 0)
	require.NoError(t, err)
	_, err = net.AddArc(T1, P1, 8)
	require.NoError(t, err)
	_, err = net.AddArc(P1, T0, 0)
	require.NoError(t, err)
	return net
}

func TestIsEventGraphAcceptsWellFormedNet(t *testing.T) {
	ok, offending := tpne.IsEventGraph(eventGraphNet(t))
	require.True(t, ok)
	require.Empty(t, offending)
}

func TestIsEventGraphReportsOffendingPlaces(t *testing.T) {
	net := eventGraphNet(t)
	_, err := net.AddArc(tpne.NodeRef{Kind: tpne.TransitionKind, ID: 1}, tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, 0)
	require.NoError(t, err)
	ok, offending := tpne.IsEventGraph(net)
	require.False(t, ok)
	require.NotEmpty(t, offending)
}

func TestAdjacencyMatricesCollapsePlacesIntoEdges(t *testing.T) {
	net := eventGraphNet(t)
	N, T, err := tpne.AdjacencyMatrices(net)
	require.NoError(t, err)
	require.Equal(t, 1.0, N.Get(0, 1))
	require.Equal(t, 1.0, N.Get(1, 0))
	require.Equal(t, 8.0, T.Get(0, 1))
	require.Equal(t, 8.0, T.Get(1, 0))
	require.Equal(t, maxplus.Zero, N.Get(0, 0))
}

func TestLinearSystemPartitionsIntoDAndA(t *testing.T) {
	net := eventGraphNet(t)
	D, A, B, C, err := tpne.LinearSystem(net)
	require.NoError(t, err)
	require.Equal(t, 2, D.Rows)
	require.Equal(t, 0, B.Cols)
	require.Equal(t, 0, C.Rows)
	require.Empty(t, D.NonZero())
	require.Len(t, A.NonZero(), 2)
}

func TestLinearSystemRejectsMultiTokenPlaces(t *testing.T) {
	net := eventGraphNet(t)
	net.Place(0).Tokens = 2
	_, _, _, _, err := tpne.LinearSystem(net)
	require.Error(t, err)
}

func TestCriticalCycleFindsTheBottleneckLoop(t *testing.T) {
	net := eventGraphNet(t)
	arcs, res, err := tpne.CriticalCycle(net)
	require.NoError(t, err)
	require.Equal(t, []float64{8, 8}, res.Chi)
	require.Len(t, arcs, 4)
}

// TestCriticalCycleBiasMatchesWorkedExample pins the bias vector against
// spec.md §8 scenario 1's exact net: P0(1 token) -> T0 -> P1(0 tokens) ->
// T1 -> P0, arc durations (T0->P1)=3, (T1->P0)=5, expecting χ=[8,8] and
// bias v=[0,3].
func TestCriticalCycleBiasMatchesWorkedExample(t *testing.T) {
	net := tpne.New("teg", tpne.TimedEventGraph)
	_, err := net.AddTransition(-1, "T0", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddTransition(-1, "T1", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddPlace(-1, "P0", 0, 0, 1)
	require.NoError(t, err)
	_, err = net.AddPlace(-1, "P1", 0, 0, 0)
	require.NoError(t, err)

	T0 := tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}
	T1 := tpne.NodeRef{Kind: tpne.TransitionKind, ID: 1}
	P0 := tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}
	P1 := tpne.NodeRef{Kind: tpne.PlaceKind, ID: 1}
	_, err = net.AddArc(P0, T0, 0)
	require.NoError(t, err)
	_, err = net.AddArc(T0, P1, 3)
	require.NoError(t, err)
	_, err = net.AddArc(P1, T1, 0)
	require.NoError(t, err)
	_, err = net.AddArc(T1, P0, 5)
	require.NoError(t, err)

	_, res, err := tpne.CriticalCycle(net)
	require.NoError(t, err)
	require.Equal(t, []float64{8, 8}, res.Chi)
	require.Equal(t, []float64{0, 3}, res.V)
}

func TestDaterAndCounterFormsReferenceEveryState(t *testing.T) {
	net := eventGraphNet(t)
	dater := tpne.DaterForm(net)
	counter := tpne.CounterForm(net)
	require.Contains(t, dater, "x1(n)")
	require.Contains(t, dater, "x2(n)")
	require.Contains(t, counter, "z1(t)")
	require.Contains(t, counter, "z2(t)")
}

func TestCanonicalizeSplitsMultiTokenPlaces(t *testing.T) {
	net := eventGraphNet(t)
	net.Place(0).Tokens = 3
	canon := tpne.Canonicalize(net)

	require.Equal(t, uint64(3), net.Place(0).Tokens, "Canonicalize must not mutate its argument")
	for _, p := range canon.Places() {
		require.LessOrEqual(t, p.Tokens, uint64(1))
	}
}

func TestCanonicalizePushesBoundaryTokensInward(t *testing.T) {
	net := tpne.New("boundary", tpne.TimedEventGraph)
	_, err := net.AddTransition(-1, "in", 0, 0, 0) // IsInput: no incoming arc
	require.NoError(t, err)
	_, err = net.AddTransition(-1, "out", 0, 0, 0)
	require.NoError(t, err)
	_, err = net.AddPlace(-1, "p0", 0, 0, 1)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.TransitionKind, ID: 0}, tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, 1)
	require.NoError(t, err)
	_, err = net.AddArc(tpne.NodeRef{Kind: tpne.PlaceKind, ID: 0}, tpne.NodeRef{Kind: tpne.TransitionKind, ID: 1}, 0)
	require.NoError(t, err)

	canon := tpne.Canonicalize(net)
	require.Equal(t, uint64(0), canon.Place(0).Tokens)

	total := uint64(0)
	for _, p := range canon.Places() {
		total += p.Tokens
	}
	require.Equal(t, uint64(1), total, "the token must still exist somewhere in the canonical net")
}
