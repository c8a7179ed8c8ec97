package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

const (
	DefaultTarget = 10
	NumPlayers    = 2
)

type RaceMove int

const (
	Step RaceMove = iota // advance by one
	Roll                 // advance by a die: 0 or 3
)

func (m RaceMove) IsStochastic() bool {
	return m == Roll
}

func (m RaceMove) String() string {
	switch m {
	case Step:
		return "step"
	case Roll:
		return "roll"
	default:
		return fmt.Sprintf("RaceMove(%d)", int(m))
	}
}

var (
	stepOutcomes = []Outcome{{Advance: 1, Probability: 1}}
	rollOutcomes = []Outcome{
		{Advance: 0, Probability: 1.0 / 3},
		{Advance: 3, Probability: 2.0 / 3},
	}
)

// RaceState is a two-player race to Target. On each turn the player to move
// either steps forward by one or gambles on a roll that advances three with
// probability 2/3 and nothing otherwise.
type RaceState struct {
	Target int
	Scores [NumPlayers]int
	Turn   int // Player to move
}

func NewRace(target int) RaceState {
	if target < 1 {
		target = DefaultTarget
	}
	return RaceState{Target: target}
}

func (s RaceState) Player() int {
	return s.Turn
}

func (s RaceState) LegalMoves() []Move {
	if s.Winner() != NoWinner {
		return nil
	}
	return []Move{Step, Roll}
}

func (s RaceState) Outcomes(move Move) []Outcome {
	if move.(RaceMove) == Roll {
		return rollOutcomes
	}
	return stepOutcomes
}

func (s RaceState) Play(move Move, outcome Outcome) State {
	return s.Apply(outcome.Advance)
}

// Apply advances the player to move and passes the turn.
func (s RaceState) Apply(advance int) RaceState {
	s.Scores[s.Turn] += advance
	s.Turn = (s.Turn + 1) % NumPlayers
	return s
}

func (s RaceState) Winner() int {
	for player, score := range s.Scores {
		if score >= s.Target {
			return player
		}
	}
	return NoWinner
}

// Decided reports whether the player to move wins with certainty by
// stepping.
func (s RaceState) Decided() bool {
	return s.Winner() == NoWinner && s.Scores[s.Turn]+1 >= s.Target
}

func (s RaceState) Hash() StateHash {
	hasher := fnv.New64a()
	binary.Write(hasher, binary.LittleEndian, int64(s.Target))
	binary.Write(hasher, binary.LittleEndian, int64(s.Turn))
	for _, score := range s.Scores {
		binary.Write(hasher, binary.LittleEndian, int64(score))
	}
	return StateHash(hasher.Sum64())
}

func (s RaceState) String() string {
	return fmt.Sprintf("race to %d: %d-%d, player %d to move", s.Target, s.Scores[0], s.Scores[1], s.Turn)
}

// EvaluateProgress scores a race by the share of the remaining distance the
// player has already covered relative to the opponent.
func EvaluateProgress(state State, player int) float64 {
	s, ok := state.(RaceState)
	if !ok {
		panic("unexpected state type")
	}
	if winner := s.Winner(); winner != NoWinner {
		if winner == player {
			return 1
		}
		return 0
	}
	own := float64(s.Scores[player] + 1)
	other := float64(s.Scores[1-player] + 1)
	return own / (own + other)
}
