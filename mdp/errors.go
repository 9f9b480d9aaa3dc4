package mdp

import "errors"

var (
	// ErrConfiguration reports an invalid grid, magic square, terminal set or
	// solver parameter. It is returned at construction, before any solving.
	ErrConfiguration = errors.New("mdp: invalid configuration")

	// ErrEmptyActionSet reports a policy entry with no actions.
	ErrEmptyActionSet = errors.New("mdp: empty action set")

	// ErrNonConvergence reports that a sweep or iteration cap was hit.
	ErrNonConvergence = errors.New("mdp: did not converge")

	ErrNoTransition    = errors.New("mdp: no transition for state and action")
	ErrBadDistribution = errors.New("mdp: probabilities do not sum to 1")
	ErrUnknownState    = errors.New("mdp: unknown state")
)
