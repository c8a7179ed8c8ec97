package game

type Move interface {
	IsStochastic() bool
}

// Outcome is one way the environment can resolve a stochastic move.
type Outcome struct {
	Advance     int
	Probability float64
}

type StateHash uint64

// NoWinner is returned by Winner while the game is still running.
const NoWinner = -1

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() int
	LegalMoves() []Move
	// Outcomes lists the resolutions of a move. Deterministic moves have a
	// single outcome with probability 1.
	Outcomes(Move) []Outcome
	Play(Move, Outcome) State
	Hash() StateHash
	Winner() int
}

// Evaluate scores a state between 0 and 1 for the given player.
type Evaluate func(state State, player int) float64
