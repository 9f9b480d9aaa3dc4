package mdp

import (
	"context"
	"fmt"
	"math"
)

type EvaluationResult struct {
	Sweeps int
	// Deltas holds the largest value change of each sweep.
	Deltas []float64
}

// Delta returns the change of the last sweep, or +Inf before any sweep.
func (r EvaluationResult) Delta() float64 {
	if len(r.Deltas) == 0 {
		return math.Inf(1)
	}
	return r.Deltas[len(r.Deltas)-1]
}

// Evaluate computes the value of policy in place. Each sweep updates V[s]
// as soon as s is processed, so states later in the sweep read the new
// values (Gauss-Seidel). Sweeps stop once the largest change of a whole
// sweep falls below opts.Threshold.
func Evaluate(ctx context.Context, m *MDP, V ValueFunction, policy Policy, opts Options) (EvaluationResult, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return EvaluationResult{}, err
	}

	var res EvaluationResult
	for res.Sweeps < opts.MaxSweeps {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("policy evaluation after %d sweeps: %w", res.Sweeps, err)
		}

		var delta float64
		for _, s0 := range m.StateSpace.States {
			v0 := V[s0]
			v1, err := expectedReturn(m, V, s0, policy[s0], opts.Discount)
			if err != nil {
				return res, err
			}
			V[s0] = v1
			delta = math.Max(math.Abs(v0-v1), delta)
		}
		res.Sweeps++
		res.Deltas = append(res.Deltas, delta)

		if delta < opts.Threshold {
			return res, nil
		}
	}
	return res, fmt.Errorf("policy evaluation: delta %g after %d sweeps: %w", res.Delta(), res.Sweeps, ErrNonConvergence)
}

func expectedReturn(m *MDP, V ValueFunction, s0 State, actions []Action, discount float64) (float64, error) {
	if len(actions) == 0 {
		return 0, fmt.Errorf("state %d: %w", s0, ErrEmptyActionSet)
	}
	weight := 1.0 / float64(len(actions))

	var v1 float64
	for _, a := range actions {
		q, err := actionValue(m, V, s0, a, discount)
		if err != nil {
			return 0, err
		}
		v1 += weight * q
	}
	return v1, nil
}

// actionValue is the expected one-step return of taking a in s0.
func actionValue(m *MDP, V ValueFunction, s0 State, a Action, discount float64) (float64, error) {
	outcomes := m.Transitions.Outcomes(s0, a)
	if len(outcomes) == 0 {
		return 0, fmt.Errorf("state %d action %s: %w", s0, a, ErrNoTransition)
	}
	var q float64
	for _, o := range outcomes {
		q += float64(o.Probability) * (float64(o.Reward) + discount*V[o.Next])
	}
	return q, nil
}
