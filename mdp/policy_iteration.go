package mdp

import (
	"context"
	"fmt"
)

// Solution is the outcome of Solve. On error it holds the state reached so far.
type Solution struct {
	Values      ValueFunction
	Policy      Policy
	Iterations  int
	Evaluations []EvaluationResult
	// Changed counts the states whose actions changed in each improvement.
	Changed []int
}

func (s *Solution) Sweeps() int {
	total := 0
	for _, ev := range s.Evaluations {
		total += ev.Sweeps
	}
	return total
}

// Solve runs policy iteration from a zero value function and the uniform
// policy, alternating Evaluate and Improve until the policy is stable.
func Solve(ctx context.Context, m *MDP, opts Options) (*Solution, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	sol := &Solution{
		Values: NewValueFunction(m),
		Policy: UniformPolicy(m),
	}
	for sol.Iterations < opts.MaxIterations {
		ev, err := Evaluate(ctx, m, sol.Values, sol.Policy, opts)
		sol.Evaluations = append(sol.Evaluations, ev)
		if err != nil {
			return sol, fmt.Errorf("iteration %d: %w", sol.Iterations+1, err)
		}
		opts.Logger.Printf("%d sweeps of state space for policy evaluation (delta %.3g)", ev.Sweeps, ev.Delta())

		imp, err := Improve(m, sol.Values, sol.Policy, opts.Discount)
		if err != nil {
			return sol, fmt.Errorf("iteration %d: %w", sol.Iterations+1, err)
		}
		sol.Iterations++
		sol.Changed = append(sol.Changed, len(imp.Changed))
		sol.Policy = imp.Policy
		opts.Logger.Printf("%d of %d states changed in policy improvement", len(imp.Changed), m.StateSpace.Size())

		if imp.Stable {
			return sol, nil
		}
	}
	return sol, fmt.Errorf("policy iteration: policy still changing after %d iterations: %w", sol.Iterations, ErrNonConvergence)
}
