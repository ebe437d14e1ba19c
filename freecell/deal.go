package freecell

import "fmt"

// Layout is the shape of a deal. Reduced decks keep all four suits but only
// the lowest Ranks ranks, which makes small instances tractable for
// uninformed search.
type Layout struct {
	Columns int `yaml:"columns" mapstructure:"columns" json:"columns"`
	Cells   int `yaml:"cells" mapstructure:"cells" json:"cells"`
	Ranks   int `yaml:"ranks" mapstructure:"ranks" json:"ranks"`
}

// Standard is the classic 52 card, 8 column, 4 cell game.
var Standard = Layout{Columns: 8, Cells: 4, Ranks: MaxRank}

func (l Layout) Validate() error {
	if l.Columns < 1 || l.Columns > 16 {
		return fmt.Errorf("freecell: columns must be between 1 and 16, got %d", l.Columns)
	}
	if l.Cells < 0 || l.Cells > 8 {
		return fmt.Errorf("freecell: cells must be between 0 and 8, got %d", l.Cells)
	}
	if l.Ranks < 1 || l.Ranks > MaxRank {
		return fmt.Errorf("freecell: ranks must be between 1 and %d, got %d", MaxRank, l.Ranks)
	}
	return nil
}

// Deal shuffles a deck with the linear congruential generator of the
// Microsoft FreeCell deals, so Deal(n, Standard) reproduces game #n. Cards
// are dealt row by row, the first row ending up at the bottom of the columns.
func Deal(number uint32, layout Layout) (State, error) {
	if err := layout.Validate(); err != nil {
		return State{}, err
	}
	size := layout.Ranks * NumSuits
	deck := make([]int, size)
	for i := range deck {
		deck[i] = size - 1 - i
	}

	seed := number
	for i := 0; i < size; i++ {
		seed = (seed*214013 + 2531011) & 0x7fffffff
		r := int(seed >> 16)
		j := size - 1 - r%(size-i)
		deck[i], deck[j] = deck[j], deck[i]
	}

	columns := make([][]Card, layout.Columns)
	for i, c := range deck {
		card := Card{Rank: Rank(c/NumSuits + 1), Suit: Suit(c % NumSuits)}
		columns[i%layout.Columns] = append(columns[i%layout.Columns], card)
	}
	return NewState(columns, make([]Card, layout.Cells), [NumSuits]Rank{}), nil
}
