package searcher

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySelection  = errors.New("cannot select from a node without children")
	ErrNoChildren      = errors.New("descent reached a node without children")
	ErrMixedChildTypes = errors.New("children of a node have different node types")
	ErrNoSelector      = errors.New("no selector registered for node type")
	ErrNoChildSelected = errors.New("selector returned no child")
	ErrRewardIndex     = errors.New("node player index outside reward vector")
	ErrNoBudget        = errors.New("must specify search simulations or duration")
)

// TreeInvariantError reports a broken expansion or evaluation contract in a
// collaborator. It aborts the run and must not be retried.
type TreeInvariantError struct {
	Depth int
	Err   error
}

func (e *TreeInvariantError) Error() string {
	return fmt.Sprintf("tree invariant violated at depth %d: %v", e.Depth, e.Err)
}

func (e *TreeInvariantError) Unwrap() error {
	return e.Err
}
