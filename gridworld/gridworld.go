// Package gridworld builds the deterministic grid MDP with teleporting
// magic squares and renders its values and policies as text.
package gridworld

import (
	"fmt"
	"slices"

	"github.com/pandaypr/ReinforcementLearning/mdp"
)

// GridWorld is a Rows x Cols grid indexed row-major. Landing on a magic
// square source sends the agent to its target.
type GridWorld struct {
	Rows         int
	Cols         int
	MagicSquares map[int]int
	// Terminals defaults to the last cell when empty.
	Terminals []int
}

func New(rows, cols int, magicSquares map[int]int) GridWorld {
	return GridWorld{Rows: rows, Cols: cols, MagicSquares: magicSquares}
}

func (w GridWorld) Size() int {
	return w.Rows * w.Cols
}

func (w GridWorld) TerminalStates() []int {
	if len(w.Terminals) == 0 {
		return []int{w.Size() - 1}
	}
	return w.Terminals
}

func (w GridWorld) inGrid(s int) bool {
	return s >= 0 && s < w.Size()
}

// Check reports the first configuration problem wrapped in mdp.ErrConfiguration.
func (w GridWorld) Check() error {
	if w.Rows <= 0 || w.Cols <= 0 {
		return fmt.Errorf("grid %dx%d: rows and cols must be positive: %w", w.Rows, w.Cols, mdp.ErrConfiguration)
	}
	for src, dst := range w.MagicSquares {
		if !w.inGrid(src) {
			return fmt.Errorf("magic square source %d outside the %dx%d grid: %w", src, w.Rows, w.Cols, mdp.ErrConfiguration)
		}
		if !w.inGrid(dst) {
			return fmt.Errorf("magic square target %d outside the %dx%d grid: %w", dst, w.Rows, w.Cols, mdp.ErrConfiguration)
		}
	}
	for _, t := range w.TerminalStates() {
		if !w.inGrid(t) {
			return fmt.Errorf("terminal %d outside the %dx%d grid: %w", t, w.Rows, w.Cols, mdp.ErrConfiguration)
		}
	}
	return nil
}

func (w GridWorld) Offset(a mdp.Action) int {
	switch a {
	case mdp.Up:
		return -w.Cols
	case mdp.Down:
		return w.Cols
	case mdp.Left:
		return -1
	case mdp.Right:
		return 1
	default:
		panic("unhandled action: " + string(a))
	}
}

func (w GridWorld) IsMagic(s mdp.State) bool {
	_, ok := w.MagicSquares[int(s)]
	return ok
}

func (w GridWorld) IsTerminal(s mdp.State) bool {
	return w.inGrid(int(s)) && slices.Contains(w.TerminalStates(), int(s))
}

// Resolve returns where action a leads from s0 and the reward for getting
// there. A magic square redirect wins over the off-grid test; an off-grid
// move leaves the agent in place.
func (w GridWorld) Resolve(s0 mdp.State, a mdp.Action) (mdp.State, mdp.Reward) {
	raw := int(s0) + w.Offset(a)

	s1 := raw
	if target, ok := w.MagicSquares[raw]; ok {
		s1 = target
	} else if w.offGridMove(raw, int(s0), a) {
		s1 = int(s0)
	}

	reward := mdp.Reward(-1)
	if w.IsTerminal(mdp.State(s1)) {
		reward = 0
	}
	return mdp.State(s1), reward
}

// offGridMove rejects moves past the grid edge and horizontal moves that
// would wrap into the neighbouring row. Only the edge a move heads towards
// is tested, so inward moves on two-column grids stay legal.
func (w GridWorld) offGridMove(newState, oldState int, a mdp.Action) bool {
	if !w.inGrid(newState) {
		return true
	}
	switch a {
	case mdp.Left:
		return oldState%w.Cols == 0 && newState%w.Cols == w.Cols-1
	case mdp.Right:
		return oldState%w.Cols == w.Cols-1 && newState%w.Cols == 0
	default:
		return false
	}
}

// MDP derives the state spaces and the transition table.
func (w GridWorld) MDP() (*mdp.MDP, error) {
	if err := w.Check(); err != nil {
		return nil, err
	}

	states := make([]mdp.State, 0, w.Size())
	for s := 0; s < w.Size(); s++ {
		states = append(states, mdp.State(s))
	}
	var terminals []mdp.State
	for _, t := range w.TerminalStates() {
		terminals = append(terminals, mdp.State(t))
	}

	das := mdp.DiscreteActionSpace{Mapping: map[mdp.State][]mdp.Action{}}
	table := mdp.TransitionTable{}
	for _, s0 := range states {
		if w.IsTerminal(s0) {
			continue
		}
		das.Mapping[s0] = slices.Clone(mdp.Actions)
		for _, a := range mdp.Actions {
			s1, r := w.Resolve(s0, a)
			table.Add(s0, a, mdp.Outcome{Next: s1, Reward: r, Probability: 1})
		}
	}

	return mdp.New(states, terminals, das, table)
}

func (w GridWorld) State(r int, c int) mdp.State {
	if r < 0 || c < 0 || r >= w.Rows || c >= w.Cols {
		panic("off board")
	}
	return mdp.State(r*w.Cols + c)
}

func (w GridWorld) ToCoordinates(s0 mdp.State) (int, int) {
	if !w.inGrid(int(s0)) {
		panic("bad state")
	}
	return int(s0) / w.Cols, int(s0) % w.Cols
}
