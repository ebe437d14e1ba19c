package freecell

import "github.com/pdrpinto/search"

// Weights tune the FreeCell heuristic.
type Weights struct {
	// Disorder is charged for every column card lying above a lower ranked card.
	Disorder float64 `yaml:"disorder" mapstructure:"disorder" json:"disorder"`
	// Link is credited for every card correctly stacked on the card below it.
	Link float64 `yaml:"link" mapstructure:"link" json:"link"`
	// Cell is charged for every occupied free cell.
	Cell float64 `yaml:"cell" mapstructure:"cell" json:"cell"`
	// Home is credited rank times for every card at home.
	Home float64 `yaml:"home" mapstructure:"home" json:"home"`
}

var DefaultWeights = Weights{Disorder: 2, Link: 1, Cell: 3, Home: 4}

// NewHeuristic returns an estimate of the remaining work: column ordering
// penalties and bonuses, a flat cost per occupied free cell, and a reward per
// home card growing with its rank. It is not admissible and can go negative.
func NewHeuristic(w Weights) search.Heuristic[State] {
	return func(s State) float64 {
		return w.Score(s)
	}
}

func (w Weights) Score(s State) float64 {
	score := 0.0
	for _, column := range s.columns {
		lowest := Rank(MaxRank + 1)
		for i, card := range column {
			if card.Rank > lowest {
				score += w.Disorder
			}
			if card.Rank < lowest {
				lowest = card.Rank
			}
			if i > 0 && card.StacksOn(column[i-1]) {
				score -= w.Link
			}
		}
	}
	for _, cell := range s.cells {
		if !cell.IsZero() {
			score += w.Cell
		}
	}
	for _, rank := range s.homes {
		// sum of the ranks of every card on the pile
		score -= w.Home * float64(int(rank)*(int(rank)+1)/2)
	}
	return score
}
