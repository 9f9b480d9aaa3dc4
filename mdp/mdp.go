package mdp

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

type State int

type Action string

type Reward float64

const (
	Up    Action = "U"
	Down  Action = "D"
	Left  Action = "L"
	Right Action = "R"
)

// Actions is the grid action set in the order policies list them.
var Actions = []Action{Up, Down, Left, Right}

type StateAction struct {
	State  State
	Action Action
}

// Outcome is one (next state, reward) result of taking an action.
type Outcome struct {
	Next        State
	Reward      Reward
	Probability Probability
}

// TransitionTable maps a (state, action) pair directly to its outcomes.
type TransitionTable map[StateAction][]Outcome

func (t TransitionTable) Outcomes(s State, a Action) []Outcome {
	return t[StateAction{State: s, Action: a}]
}

func (t TransitionTable) Add(s State, a Action, o Outcome) {
	key := StateAction{State: s, Action: a}
	t[key] = append(t[key], o)
}

type MDP struct {
	// StateSpace holds the active states: everything except terminals.
	StateSpace     DiscreteStateSpace
	StateSpacePlus DiscreteStateSpace
	ActionSpace    DiscreteActionSpace
	Transitions    TransitionTable
}

// New builds an MDP over states, marking terminals as absorbing. The
// transition table is validated before the MDP is returned.
func New(states []State, terminals []State, actions DiscreteActionSpace, transitions TransitionTable) (*MDP, error) {
	plus := NewDiscreteStateSpace(states...)
	if plus.Size() == 0 {
		return nil, fmt.Errorf("empty state space: %w", ErrConfiguration)
	}

	term := mapset.New[State]()
	for _, s := range terminals {
		if !plus.Contains(s) {
			return nil, fmt.Errorf("terminal state %d outside the state space: %w", s, ErrConfiguration)
		}
		term.Put(s)
	}
	if term.Size() == 0 {
		return nil, fmt.Errorf("no terminal state: %w", ErrConfiguration)
	}

	var active []State
	for _, s := range plus.States {
		if !term.Has(s) {
			active = append(active, s)
		}
	}

	m := &MDP{
		StateSpace:     NewDiscreteStateSpace(active...),
		StateSpacePlus: plus,
		ActionSpace:    actions,
		Transitions:    transitions,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MDP) IsTerminal(state State) bool {
	return m.StateSpacePlus.Contains(state) && !m.StateSpace.Contains(state)
}

func (m *MDP) Terminals() []State {
	var out []State
	for _, s := range m.StateSpacePlus.States {
		if m.IsTerminal(s) {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks that every active (state, action) pair has outcomes whose
// probabilities sum to one and that every outcome stays in StateSpacePlus.
func (m *MDP) Validate() error {
	for _, s := range m.StateSpace.States {
		actions := m.ActionSpace.Actions(s)
		if len(actions) == 0 {
			return fmt.Errorf("state %d: %w", s, ErrEmptyActionSet)
		}
		for _, a := range actions {
			outcomes := m.Transitions.Outcomes(s, a)
			if len(outcomes) == 0 {
				return fmt.Errorf("state %d action %s: %w", s, a, ErrNoTransition)
			}
			pdf := DiscretePdf[State]{}
			for _, o := range outcomes {
				if !m.StateSpacePlus.Contains(o.Next) {
					return fmt.Errorf("state %d action %s leads to %d outside the state space: %w", s, a, o.Next, ErrConfiguration)
				}
				Add(&pdf, o.Next, o.Probability)
			}
			if err := pdf.Check(); err != nil {
				return fmt.Errorf("state %d action %s: %w", s, a, err)
			}
		}
	}
	return nil
}
