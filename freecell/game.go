package freecell

import (
	"fmt"

	"github.com/pdrpinto/search"
)

// Game adapts FreeCell states to search.Space.
type Game struct{}

var _ search.Space[State, Action, string] = Game{}

func (Game) Key(s State) string { return s.Key() }

func (Game) IsFinal(s State) bool { return s.IsFinal() }

func (Game) Actions(s State) []Action { return s.Actions() }

func (Game) Apply(s State, a Action) State { return s.Apply(a) }

// NewSolver builds a search strategy over FreeCell states. depthLimit only
// applies to depth-first search and weights only to best-first search.
func NewSolver(kind search.Kind, weights Weights, depthLimit int, options ...search.Option) (search.Strategy[State, Action, string], error) {
	return search.New[State, Action, string](kind, Game{}, NewHeuristic(weights), depthLimit, options...)
}

// Replay applies actions from initial, rejecting any action that is not
// legal in the state it is applied to. It returns the final state reached.
func Replay(initial State, actions []Action) (State, error) {
	state := initial
	for i, action := range actions {
		if !legal(state, action) {
			return state, fmt.Errorf("freecell: move %d (%s) is not legal", i+1, action)
		}
		state = state.Apply(action)
	}
	return state, nil
}

func legal(s State, a Action) bool {
	for _, candidate := range s.Actions() {
		if candidate == a {
			return true
		}
	}
	return false
}
