package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRaceState(t *testing.T) {
	t.Run("apply advances the mover and passes the turn", func(t *testing.T) {
		state := NewRace(5).Apply(3)

		require.Equal(t, [NumPlayers]int{3, 0}, state.Scores)
		require.Equal(t, 1, state.Player())

		state = state.Apply(1)
		require.Equal(t, [NumPlayers]int{3, 1}, state.Scores)
		require.Equal(t, 0, state.Player())
	})

	t.Run("states are values", func(t *testing.T) {
		start := NewRace(5)
		_ = start.Apply(3)
		require.Equal(t, [NumPlayers]int{0, 0}, start.Scores, "Apply should not modify the receiver")
	})

	t.Run("reaching the target wins", func(t *testing.T) {
		state := RaceState{Target: 5, Scores: [NumPlayers]int{4, 2}}
		require.Equal(t, NoWinner, state.Winner())

		state = state.Apply(3)
		require.Equal(t, 0, state.Winner())
		require.Empty(t, state.LegalMoves(), "Finished races have no moves")
	})

	t.Run("one step from the target is decided", func(t *testing.T) {
		require.True(t, RaceState{Target: 5, Scores: [NumPlayers]int{4, 0}}.Decided())
		require.False(t, RaceState{Target: 5, Scores: [NumPlayers]int{4, 0}, Turn: 1}.Decided())
		require.False(t, RaceState{Target: 5, Scores: [NumPlayers]int{5, 0}}.Decided())
	})

	t.Run("outcome probabilities sum to one", func(t *testing.T) {
		state := NewRace(5)
		for _, move := range state.LegalMoves() {
			total := 0.0
			for _, outcome := range state.Outcomes(move) {
				total += outcome.Probability
			}
			require.InDelta(t, 1.0, total, 1e-12, "move %v", move)
		}
		require.True(t, Roll.IsStochastic())
		require.False(t, Step.IsStochastic())
	})

	t.Run("play resolves the outcome", func(t *testing.T) {
		state := NewRace(5).Play(Roll, Outcome{Advance: 3, Probability: 2.0 / 3}).(RaceState)
		require.Equal(t, 3, state.Scores[0])
	})

	t.Run("hash distinguishes states", func(t *testing.T) {
		a := RaceState{Target: 5, Scores: [NumPlayers]int{1, 2}}
		b := RaceState{Target: 5, Scores: [NumPlayers]int{2, 1}}
		c := RaceState{Target: 5, Scores: [NumPlayers]int{1, 2}, Turn: 1}

		require.Equal(t, a.Hash(), RaceState{Target: 5, Scores: [NumPlayers]int{1, 2}}.Hash())
		require.NotEqual(t, a.Hash(), b.Hash())
		require.NotEqual(t, a.Hash(), c.Hash())
	})

	t.Run("invalid target falls back to the default", func(t *testing.T) {
		require.Equal(t, DefaultTarget, NewRace(0).Target)
	})
}

func TestEvaluateProgress(t *testing.T) {
	t.Run("finished races are exact", func(t *testing.T) {
		state := RaceState{Target: 3, Scores: [NumPlayers]int{1, 3}}
		require.Equal(t, 0.0, EvaluateProgress(state, 0))
		require.Equal(t, 1.0, EvaluateProgress(state, 1))
	})

	t.Run("leading player scores higher", func(t *testing.T) {
		state := RaceState{Target: 10, Scores: [NumPlayers]int{6, 2}}
		require.Greater(t, EvaluateProgress(state, 0), EvaluateProgress(state, 1))
		require.InDelta(t, 1.0, EvaluateProgress(state, 0)+EvaluateProgress(state, 1), 1e-12)
	})
}
