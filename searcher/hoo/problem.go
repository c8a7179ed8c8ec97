package hoo

import (
	"fmt"
	"math"
	"strings"
)

// Problem is the black-box function being maximised.
type Problem interface {
	Evaluate(point []float64) float64
}

type ProblemFunc func(point []float64) float64

func (f ProblemFunc) Evaluate(point []float64) float64 {
	return f(point)
}

// Quadratic is -||x - Optimum||^2, maximal (zero) at Optimum.
type Quadratic struct {
	Optimum []float64
}

func (q Quadratic) Evaluate(point []float64) float64 {
	sum := 0.0
	for d, x := range point {
		diff := x - q.Optimum[d]
		sum += diff * diff
	}
	return -sum
}

// Rastrigin is the negated Rastrigin function, maximal (zero) at the origin
// with many local maxima around it.
type Rastrigin struct{}

func (Rastrigin) Evaluate(point []float64) float64 {
	sum := 10 * float64(len(point))
	for _, x := range point {
		sum += x*x - 10*math.Cos(2*math.Pi*x)
	}
	return -sum
}

// NewProblem returns a benchmark problem by name. The quadratic optimum sits
// at 0.3 on every axis.
func NewProblem(name string, dimension int) (Problem, error) {
	switch strings.ToLower(name) {
	case "quadratic":
		optimum := make([]float64, dimension)
		for d := range optimum {
			optimum[d] = 0.3
		}
		return Quadratic{Optimum: optimum}, nil
	case "rastrigin":
		return Rastrigin{}, nil
	default:
		return nil, fmt.Errorf("unknown problem %q", name)
	}
}
