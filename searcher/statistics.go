package searcher

import "fmt"

// Statistics is the running visit count and reward mean of a node. Only
// backpropagation should call Add.
type Statistics struct {
	visits int
	mean   float64
	sum    float64
}

// Add folds one reward into the running mean.
func (s *Statistics) Add(reward float64) {
	s.visits++
	s.sum += reward
	s.mean += (reward - s.mean) / float64(s.visits)
}

func (s *Statistics) N() int {
	return s.visits
}

func (s *Statistics) Mean() float64 {
	return s.mean
}

func (s *Statistics) Sum() float64 {
	return s.sum
}

func (s *Statistics) String() string {
	return fmt.Sprintf("{N=%d mean=%.4f}", s.visits, s.mean)
}
