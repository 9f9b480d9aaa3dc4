package mdp

import (
	"fmt"
	"math"
)

type Probability float64

type DiscretePdf[Category comparable] map[Category]Probability

func Add[T comparable](pdf *DiscretePdf[T], outcome T, p Probability) {
	if *pdf == nil {
		*pdf = make(DiscretePdf[T])
	}
	(*pdf)[outcome] += p
}

func (p DiscretePdf[Category]) Sum() Probability {
	var sum Probability
	for _, prob := range p {
		sum += prob
	}
	return sum
}

func (p DiscretePdf[Category]) Check() error {
	if sum := p.Sum(); !FloatEq(float64(sum), 1) {
		return fmt.Errorf("probabilities sum to %g: %w", float64(sum), ErrBadDistribution)
	}
	return nil
}

func FloatEq(a, b float64) bool {
	const eps = 1e-9
	return math.Abs(a-b) < eps
}
