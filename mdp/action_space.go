package mdp

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// DiscreteStateSpace keeps its states sorted so sweeps visit them in a
// fixed order.
type DiscreteStateSpace struct {
	States []State
	set    mapset.Set[State]
}

func NewDiscreteStateSpace(states ...State) DiscreteStateSpace {
	set := mapset.New[State]()
	sorted := make([]State, 0, len(states))
	for _, s := range states {
		if set.Has(s) {
			continue
		}
		set.Put(s)
		sorted = append(sorted, s)
	}
	slices.Sort(sorted)
	return DiscreteStateSpace{States: sorted, set: set}
}

func (d DiscreteStateSpace) Contains(s State) bool {
	return d.set.Has(s)
}

func (d DiscreteStateSpace) Size() int {
	return len(d.States)
}

type DiscreteActionSpace struct {
	Mapping map[State][]Action
}

func (das DiscreteActionSpace) Actions(s State) []Action {
	return das.Mapping[s]
}
