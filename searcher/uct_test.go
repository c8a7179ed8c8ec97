package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCBSelectChild(t *testing.T) {
	t.Run("selects the first unvisited child", func(t *testing.T) {
		first := visit(leafNode("first", 0), 1)
		second := leafNode("second", 0)
		third := leafNode("third", 0)
		root := visit(innerNode("root", first, second, third), 1)

		got, err := NewUCB[*mockNode](1).SelectChild(root)

		require.NoError(t, err)
		require.Same(t, second, got, "Should prioritise unvisited children in order")
	})

	t.Run("selects unvisited children even without exploration", func(t *testing.T) {
		best := visit(leafNode("best", 0), 1, 1)
		unvisited := leafNode("unvisited", 0)
		root := visit(innerNode("root", best, unvisited), 1, 1)

		got, err := NewUCB[*mockNode](0).SelectChild(root)

		require.NoError(t, err)
		require.Same(t, unvisited, got, "C=0 should still visit every child once")
	})

	t.Run("selects the max UCB child", func(t *testing.T) {
		low := visit(leafNode("low", 0), 0.2)
		high := visit(leafNode("high", 0), 0.8)
		mid := visit(leafNode("mid", 0), 0.5)
		root := visit(innerNode("root", low, high, mid), 0.2, 0.8, 0.5)

		got, err := NewUCB[*mockNode](1).SelectChild(root)

		require.NoError(t, err)
		require.Same(t, high, got, "Equal visits should leave the highest mean on top")
	})

	t.Run("exploration favours less visited children", func(t *testing.T) {
		often := visit(leafNode("often", 0), 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6)
		rarely := visit(leafNode("rarely", 0), 0.5)
		root := visit(innerNode("root", often, rarely), 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.5)

		got, err := NewUCB[*mockNode](1).SelectChild(root)
		require.NoError(t, err)
		require.Same(t, rarely, got, "Large C should explore the rarely visited child")

		got, err = NewUCB[*mockNode](0).SelectChild(root)
		require.NoError(t, err)
		require.Same(t, often, got, "C=0 should exploit the best mean")
	})

	t.Run("ties keep the earliest child", func(t *testing.T) {
		first := visit(leafNode("first", 0), 0.5)
		second := visit(leafNode("second", 0), 0.5)
		root := visit(innerNode("root", first, second), 0.5, 0.5)

		got, err := NewUCB[*mockNode](1).SelectChild(root)

		require.NoError(t, err)
		require.Same(t, first, got)
	})

	t.Run("negative exploration is clamped", func(t *testing.T) {
		require.Equal(t, 0.0, NewUCB[*mockNode](-3).Exploration)
		require.Equal(t, 0.0, NewAdversarialUCB[*mockNode](-3).Exploration)
	})

	t.Run("fails without children", func(t *testing.T) {
		_, err := NewUCB[*mockNode](1).SelectChild(leafNode("leaf", 0))
		require.ErrorIs(t, err, ErrEmptySelection)
	})
}

func TestAdversarialUCBSelectChild(t *testing.T) {
	t.Run("selects the child minimising the agent's mean", func(t *testing.T) {
		good := visit(leafNode("good", 0), 0.8)
		bad := visit(leafNode("bad", 0), 0.2)
		root := visit(innerNode("root", good, bad), 0.8, 0.2)

		got, err := NewAdversarialUCB[*mockNode](1).SelectChild(root)

		require.NoError(t, err)
		require.Same(t, bad, got, "Opponent should pick the move worst for the agent")
	})

	t.Run("selects the first unvisited child", func(t *testing.T) {
		visited := visit(leafNode("visited", 0), 0)
		unvisited := leafNode("unvisited", 0)
		root := visit(innerNode("root", visited, unvisited), 0)

		got, err := NewAdversarialUCB[*mockNode](1).SelectChild(root)

		require.NoError(t, err)
		require.Same(t, unvisited, got)
	})

	t.Run("fails without children", func(t *testing.T) {
		_, err := NewAdversarialUCB[*mockNode](1).SelectChild(leafNode("leaf", 0))
		require.ErrorIs(t, err, ErrEmptySelection)
	})
}
