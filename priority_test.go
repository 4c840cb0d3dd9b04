// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lecrapouille/tpne-core"
)

func threeTransitionNet(t *testing.T) *tpne.Net {
	t.Helper()
	net := tpne.New("n", tpne.Petri)
	for i := 0; i < 3; i++ {
		_, err := net.AddTransition(-1, "t", 0, 0, 0)
		require.NoError(t, err)
	}
	return net
}

func TestClosePrioritiesComputesTransitiveClosure(t *testing.T) {
	net := threeTransitionNet(t)
	// t0 > t1 > t2: Priorities[i] lists ids with strictly lower priority.
	net.Priorities = [][]int{{1}, {2}, {}}
	require.NoError(t, net.ClosePriorities())
	require.ElementsMatch(t, []int{1, 2}, net.Priorities[0])
	require.ElementsMatch(t, []int{2}, net.Priorities[1])
	require.Empty(t, net.Priorities[2])
}

func TestClosePrioritiesDetectsCycle(t *testing.T) {
	net := threeTransitionNet(t)
	net.Priorities = [][]int{{1}, {0}, {}}
	err := net.ClosePriorities()
	require.Error(t, err)
}

func TestClosePrioritiesNoOpWhenUnset(t *testing.T) {
	net := threeTransitionNet(t)
	require.NoError(t, net.ClosePriorities())
	require.Nil(t, net.Priorities)
}

func TestRemoveNodeReindexesPriorities(t *testing.T) {
	net := threeTransitionNet(t)
	net.Priorities = [][]int{{1, 2}, {2}, {}}
	require.NoError(t, net.RemoveNode(tpne.NodeRef{Kind: tpne.TransitionKind, ID: 1}))
	// t1 removed: t2 renumbered to id 1; t0's row drops the reference to the
	// removed id and shifts the surviving one down.
	require.Equal(t, [][]int{{1}, {}}, net.Priorities)
}
