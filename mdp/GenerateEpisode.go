package mdp

import (
	"fmt"
	"math/rand"
)

// GenerateEpisode follows policy from start, drawing uniformly among the
// allowed actions, until a terminal state is reached or maxSteps transitions
// have been taken.
func GenerateEpisode(m *MDP, policy Policy, start State, rng *rand.Rand, maxSteps int) ([]Transition, error) {
	if !m.StateSpacePlus.Contains(start) {
		return nil, fmt.Errorf("start %d: %w", start, ErrUnknownState)
	}

	var episode []Transition
	state := start
	for len(episode) < maxSteps && !m.IsTerminal(state) {
		actions := policy[state]
		if len(actions) == 0 {
			return episode, fmt.Errorf("state %d: %w", state, ErrEmptyActionSet)
		}
		action := actions[rng.Intn(len(actions))]

		outcomes := m.Transitions.Outcomes(state, action)
		if len(outcomes) == 0 {
			return episode, fmt.Errorf("state %d action %s: %w", state, action, ErrNoTransition)
		}
		o := choose(outcomes, rng)

		episode = append(episode, Transition{
			State0: state,
			Action: action,
			State1: o.Next,
			Reward: o.Reward,
		})
		state = o.Next
	}
	return episode, nil
}

func choose(outcomes []Outcome, rng *rand.Rand) Outcome {
	if len(outcomes) == 1 {
		return outcomes[0]
	}
	v := rng.Float64()
	cumulative := 0.0
	for _, o := range outcomes {
		cumulative += float64(o.Probability)
		if cumulative >= v {
			return o
		}
	}
	return outcomes[len(outcomes)-1]
}
