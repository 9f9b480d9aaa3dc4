package mdp

import (
	"fmt"
	"slices"
)

// Policy maps each active state to its allowed actions. The actions of a
// state are taken with equal probability.
type Policy map[State][]Action

// UniformPolicy allows every action of the action space in every active state.
func UniformPolicy(m *MDP) Policy {
	p := make(Policy, m.StateSpace.Size())
	for _, s := range m.StateSpace.States {
		p[s] = slices.Clone(m.ActionSpace.Actions(s))
	}
	return p
}

func (p Policy) Weight(s State) (float64, error) {
	n := len(p[s])
	if n == 0 {
		return 0, fmt.Errorf("state %d: %w", s, ErrEmptyActionSet)
	}
	return 1.0 / float64(n), nil
}

func (p Policy) Clone() Policy {
	out := make(Policy, len(p))
	for s, actions := range p {
		out[s] = slices.Clone(actions)
	}
	return out
}

// Equal compares action lists in order.
func (p Policy) Equal(other Policy) bool {
	if len(p) != len(other) {
		return false
	}
	for s, actions := range p {
		o, ok := other[s]
		if !ok || !slices.Equal(actions, o) {
			return false
		}
	}
	return true
}
