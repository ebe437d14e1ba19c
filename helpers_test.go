package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/search"
)

type edge struct {
	label string
	to    string
}

// graphSpace is an explicit finite graph. Actions are edge labels; Actions
// calls are counted per state so tests can tell how often a state was expanded.
type graphSpace struct {
	edges    map[string][]edge
	final    map[string]bool
	expanded map[string]int
}

func newGraph(final ...string) *graphSpace {
	g := &graphSpace{
		edges:    map[string][]edge{},
		final:    map[string]bool{},
		expanded: map[string]int{},
	}
	for _, f := range final {
		g.final[f] = true
	}
	return g
}

func (g *graphSpace) link(from, label, to string) *graphSpace {
	g.edges[from] = append(g.edges[from], edge{label: label, to: to})
	return g
}

func (g *graphSpace) Key(state string) string { return state }

func (g *graphSpace) IsFinal(state string) bool { return g.final[state] }

func (g *graphSpace) Actions(state string) []string {
	g.expanded[state]++
	labels := make([]string, 0, len(g.edges[state]))
	for _, e := range g.edges[state] {
		labels = append(labels, e.label)
	}
	return labels
}

func (g *graphSpace) Apply(state string, action string) string {
	for _, e := range g.edges[state] {
		if e.label == action {
			return e.to
		}
	}
	panic("unknown action " + action + " from " + state)
}

// numberSpace is an infinite space over the positive integers with the
// actions "+1" and "*2".
type numberSpace struct {
	target int
}

func (n numberSpace) Key(state int) int { return state }

func (n numberSpace) IsFinal(state int) bool { return state == n.target }

func (n numberSpace) Actions(int) []string { return []string{"+1", "*2"} }

func (n numberSpace) Apply(state int, action string) int {
	if action == "*2" {
		return state * 2
	}
	return state + 1
}

// pathSpace is the infinite binary tree of strings over {a, b}; a state's
// depth is its length.
type pathSpace struct {
	goal     string
	expanded []string
}

func (p *pathSpace) Key(state string) string { return state }

func (p *pathSpace) IsFinal(state string) bool { return state == p.goal }

func (p *pathSpace) Actions(state string) []string {
	p.expanded = append(p.expanded, state)
	return []string{"a", "b"}
}

func (p *pathSpace) Apply(state string, action string) string { return state + action }

type strategyCase struct {
	name  string
	build func(space search.Space[string, string, string], options ...search.Option) search.Strategy[string, string, string]
}

func allStrategies() []strategyCase {
	return []strategyCase{
		{"breadth-first", func(space search.Space[string, string, string], options ...search.Option) search.Strategy[string, string, string] {
			return search.NewBreadthFirst(space, options...)
		}},
		{"depth-first", func(space search.Space[string, string, string], options ...search.Option) search.Strategy[string, string, string] {
			return search.NewDepthFirst(space, 64, options...)
		}},
		{"best-first", func(space search.Space[string, string, string], options ...search.Option) search.Strategy[string, string, string] {
			return search.NewBestFirst(space, nil, options...)
		}},
	}
}

// replay applies actions from initial and returns the state reached.
func replay[S any, A any](t *testing.T, apply func(S, A) S, initial S, actions []A) S {
	t.Helper()
	state := initial
	for _, action := range actions {
		state = apply(state, action)
	}
	return state
}

func mustSolve[S any, A any](t *testing.T, solver search.Solver[S, A], initial S) search.Result[S, A] {
	t.Helper()
	result, err := solver.Solve(context.Background(), initial)
	require.NoError(t, err)
	require.True(t, result.Found)
	return result
}
