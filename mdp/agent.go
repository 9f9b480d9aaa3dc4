package mdp

import "maps"

type Transition struct {
	State0 State
	Action Action
	State1 State
	Reward Reward
}

// ValueFunction covers every state in StateSpacePlus.
type ValueFunction map[State]float64

func NewValueFunction(m *MDP) ValueFunction {
	v := make(ValueFunction, m.StateSpacePlus.Size())
	for _, s := range m.StateSpacePlus.States {
		v[s] = 0
	}
	return v
}

func (v ValueFunction) Estimate(s State) float64 {
	if val, ok := v[s]; ok {
		return val
	}
	return 0.0
}

func (v ValueFunction) Clone() ValueFunction {
	return maps.Clone(v)
}
