package freecell

import "fmt"

type PlaceKind uint8

const (
	PlaceColumn PlaceKind = iota
	PlaceCell
	PlaceHome
)

// Place is a column, a free cell or the home pile. Index is zero based and
// ignored for homes.
type Place struct {
	Kind  PlaceKind
	Index int
}

func (p Place) String() string {
	switch p.Kind {
	case PlaceColumn:
		return fmt.Sprintf("column %d", p.Index+1)
	case PlaceCell:
		return fmt.Sprintf("cell %d", p.Index+1)
	default:
		return "home"
	}
}

// Action moves a single card. It names the card it moves so a replayed
// solution can be checked against the state it is applied to.
type Action struct {
	Card Card
	From Place
	To   Place
}

func (a Action) String() string {
	return fmt.Sprintf("%s: %s -> %s", a.Card, a.From, a.To)
}

// Actions lists the legal single-card moves from s: moves home first, then
// column to column, cell to column, and finally moves into a free cell.
// Moves into an empty column or free cell target only the first empty one.
func (s State) Actions() []Action {
	actions := make([]Action, 0, 16)

	for i, cell := range s.cells {
		if !cell.IsZero() && s.canHome(cell) {
			actions = append(actions, Action{Card: cell, From: Place{PlaceCell, i}, To: Place{Kind: PlaceHome}})
		}
	}
	for i := range s.columns {
		if top := s.Top(i); !top.IsZero() && s.canHome(top) {
			actions = append(actions, Action{Card: top, From: Place{PlaceColumn, i}, To: Place{Kind: PlaceHome}})
		}
	}

	empty := s.emptyColumn()
	for i := range s.columns {
		top := s.Top(i)
		if top.IsZero() {
			continue
		}
		for j := range s.columns {
			if i == j {
				continue
			}
			if top.StacksOn(s.Top(j)) {
				actions = append(actions, Action{Card: top, From: Place{PlaceColumn, i}, To: Place{PlaceColumn, j}})
			}
		}
		// moving a lone card into an empty column changes nothing
		if empty >= 0 && len(s.columns[i]) > 1 {
			actions = append(actions, Action{Card: top, From: Place{PlaceColumn, i}, To: Place{PlaceColumn, empty}})
		}
	}

	for i, cell := range s.cells {
		if cell.IsZero() {
			continue
		}
		for j := range s.columns {
			if cell.StacksOn(s.Top(j)) {
				actions = append(actions, Action{Card: cell, From: Place{PlaceCell, i}, To: Place{PlaceColumn, j}})
			}
		}
		if empty >= 0 {
			actions = append(actions, Action{Card: cell, From: Place{PlaceCell, i}, To: Place{PlaceColumn, empty}})
		}
	}

	if free := s.freeCell(); free >= 0 {
		for i := range s.columns {
			if top := s.Top(i); !top.IsZero() {
				actions = append(actions, Action{Card: top, From: Place{PlaceColumn, i}, To: Place{PlaceCell, free}})
			}
		}
	}
	return actions
}

// Apply returns the state reached by moving a.Card. It is meant for actions
// produced by Actions on the same state; use Replay to validate foreign ones.
func (s State) Apply(a Action) State {
	next := State{
		columns: s.columns,
		cells:   s.cells,
		homes:   s.homes,
	}

	switch a.From.Kind {
	case PlaceColumn:
		next.columns = cloneColumns(s.columns)
		column := next.columns[a.From.Index]
		next.columns[a.From.Index] = column[:len(column)-1 : len(column)-1]
	case PlaceCell:
		next.cells = cloneCells(s.cells)
		next.cells[a.From.Index] = Card{}
	}

	switch a.To.Kind {
	case PlaceHome:
		next.homes[a.Card.Suit] = a.Card.Rank
	case PlaceCell:
		if a.From.Kind != PlaceCell {
			next.cells = cloneCells(s.cells)
		}
		next.cells[a.To.Index] = a.Card
	case PlaceColumn:
		if a.From.Kind != PlaceColumn {
			next.columns = cloneColumns(s.columns)
		}
		column := next.columns[a.To.Index]
		grown := make([]Card, len(column)+1)
		copy(grown, column)
		grown[len(column)] = a.Card
		next.columns[a.To.Index] = grown
	}
	return next
}

func cloneColumns(columns [][]Card) [][]Card {
	out := make([][]Card, len(columns))
	copy(out, columns)
	return out
}

func cloneCells(cells []Card) []Card {
	out := make([]Card, len(cells))
	copy(out, cells)
	return out
}
