package mdp

import (
	"fmt"
	"math"
	"slices"
)

type ImprovementResult struct {
	Stable bool
	// Changed lists the states whose action list shrank.
	Changed []State
	Policy  Policy
}

// Improve keeps, for every active state, the subset of its current actions
// with the best one-step value. Actions already pruned from a state are not
// reconsidered. Scores are weighted by 1/|policy[s]| and rounded to two
// decimals before comparison, so near ties are all retained.
func Improve(m *MDP, V ValueFunction, policy Policy, discount float64) (ImprovementResult, error) {
	res := ImprovementResult{
		Stable: true,
		Policy: make(Policy, len(policy)),
	}

	for _, s := range m.StateSpace.States {
		oldActions := policy[s]
		weight, err := policy.Weight(s)
		if err != nil {
			return ImprovementResult{}, fmt.Errorf("policy improvement: %w", err)
		}

		values := make([]float64, len(oldActions))
		best := math.Inf(-1)
		for i, a := range oldActions {
			q, err := actionValue(m, V, s, a, discount)
			if err != nil {
				return ImprovementResult{}, fmt.Errorf("policy improvement: %w", err)
			}
			values[i] = roundCents(weight * q)
			best = math.Max(best, values[i])
		}

		var bestActions []Action
		for i, a := range oldActions {
			if values[i] == best {
				bestActions = append(bestActions, a)
			}
		}
		if len(bestActions) == 0 {
			return ImprovementResult{}, fmt.Errorf("policy improvement: state %d has no maximal action: %w", s, ErrEmptyActionSet)
		}

		res.Policy[s] = bestActions
		if !slices.Equal(oldActions, bestActions) {
			res.Stable = false
			res.Changed = append(res.Changed, s)
		}
	}
	return res, nil
}

// roundCents rounds half to even at two decimals.
func roundCents(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}
