package gridworld

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pandaypr/ReinforcementLearning/mdp"
)

const (
	placeholder = "--"
	footer      = "--------------------"
)

func (w GridWorld) paint(au aurora.Aurora, s mdp.State, text string) aurora.Value {
	switch {
	case w.IsTerminal(s):
		return au.Green(text)
	case w.IsMagic(s):
		return au.Yellow(text)
	default:
		return au.Blue(text)
	}
}

// RenderValues writes V row by row with two decimals per cell.
func (w GridWorld) RenderValues(out io.Writer, au aurora.Aurora, V mdp.ValueFunction) error {
	var b strings.Builder
	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Cols; c++ {
			st := w.State(r, c)
			fmt.Fprint(&b, w.paint(au, st, fmt.Sprintf("%.2f", V.Estimate(st))), "\t")
		}
		b.WriteString("\n\n")
	}
	b.WriteString(footer + "\n")
	_, err := io.WriteString(out, b.String())
	return err
}

// RenderPolicy writes the allowed actions of each cell. Terminal and magic
// square cells show a placeholder.
func (w GridWorld) RenderPolicy(out io.Writer, au aurora.Aurora, policy mdp.Policy) error {
	var b strings.Builder
	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Cols; c++ {
			st := w.State(r, c)
			text := placeholder
			if !w.IsTerminal(st) && !w.IsMagic(st) {
				text = fmt.Sprint(policy[st])
			}
			fmt.Fprint(&b, w.paint(au, st, text), "\t")
		}
		b.WriteString("\n\n")
	}
	b.WriteString(footer + "\n")
	_, err := io.WriteString(out, b.String())
	return err
}

// RenderEpisode marks every state the episode visits.
func (w GridWorld) RenderEpisode(out io.Writer, au aurora.Aurora, episode []mdp.Transition) error {
	visited := map[mdp.State]bool{}
	for _, t := range episode {
		visited[t.State0] = true
		visited[t.State1] = true
	}

	var b strings.Builder
	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Cols; c++ {
			st := w.State(r, c)
			cell := fmt.Sprintf("%5d ", st)
			if visited[st] {
				fmt.Fprint(&b, au.Green(cell))
			} else {
				fmt.Fprint(&b, au.Blue(cell))
			}
			fmt.Fprint(&b, au.White("|"))
		}
		b.WriteString("\n")
	}
	for _, t := range episode {
		fmt.Fprintf(&b, "%d -%s-> %d (%g)\n", t.State0, t.Action, t.State1, float64(t.Reward))
	}
	_, err := io.WriteString(out, b.String())
	return err
}
