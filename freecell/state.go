package freecell

import (
	"strings"

	"golang.org/x/exp/slices"
)

// State is one immutable game configuration. Columns are stored bottom to
// top. Successor states share unchanged columns with their parent, so no
// column slice is ever appended to in place.
type State struct {
	columns [][]Card
	cells   []Card
	homes   [NumSuits]Rank
}

// NewState builds a state from columns (bottom card first), free cells
// (zero Cards for empty cells) and the top rank of each home pile.
func NewState(columns [][]Card, cells []Card, homes [NumSuits]Rank) State {
	s := State{
		columns: make([][]Card, len(columns)),
		cells:   slices.Clone(cells),
		homes:   homes,
	}
	for i, column := range columns {
		s.columns[i] = slices.Clone(column)
	}
	return s
}

func (s State) NumColumns() int { return len(s.columns) }

func (s State) NumCells() int { return len(s.cells) }

// Column returns a copy of column i, bottom card first.
func (s State) Column(i int) []Card { return slices.Clone(s.columns[i]) }

func (s State) Cell(i int) Card { return s.cells[i] }

// Home returns the top rank placed on the home pile of suit.
func (s State) Home(suit Suit) Rank { return s.homes[suit] }

// Top returns the top card of column i, or the zero Card.
func (s State) Top(i int) Card {
	column := s.columns[i]
	if len(column) == 0 {
		return Card{}
	}
	return column[len(column)-1]
}

// IsFinal reports whether every card has been moved home.
func (s State) IsFinal() bool {
	for _, column := range s.columns {
		if len(column) > 0 {
			return false
		}
	}
	for _, cell := range s.cells {
		if !cell.IsZero() {
			return false
		}
	}
	return true
}

// CardsLeft counts the cards not yet at home.
func (s State) CardsLeft() int {
	n := 0
	for _, column := range s.columns {
		n += len(column)
	}
	for _, cell := range s.cells {
		if !cell.IsZero() {
			n++
		}
	}
	return n
}

// Key is the canonical value key of the state. Free cells are a set and
// columns are interchangeable, so both are sorted before encoding.
func (s State) Key() string {
	var b strings.Builder
	b.Grow(64)
	for _, rank := range s.homes {
		b.WriteByte(byte(rank))
	}
	cells := make([]byte, 0, len(s.cells))
	for _, cell := range s.cells {
		if !cell.IsZero() {
			cells = append(cells, cell.index())
		}
	}
	slices.Sort(cells)
	b.WriteByte(0xFE)
	b.Write(cells)

	columns := make([]string, len(s.columns))
	for i, column := range s.columns {
		encoded := make([]byte, len(column))
		for j, card := range column {
			encoded[j] = card.index()
		}
		columns[i] = string(encoded)
	}
	slices.Sort(columns)
	for _, column := range columns {
		b.WriteByte(0xFF)
		b.WriteString(column)
	}
	return b.String()
}

// canHome reports whether card is the next one its home pile needs.
func (s State) canHome(card Card) bool {
	return s.homes[card.Suit]+1 == card.Rank
}

func (s State) freeCell() int {
	for i, cell := range s.cells {
		if cell.IsZero() {
			return i
		}
	}
	return -1
}

func (s State) emptyColumn() int {
	for i, column := range s.columns {
		if len(column) == 0 {
			return i
		}
	}
	return -1
}
