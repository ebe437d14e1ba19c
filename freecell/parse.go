package freecell

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads the text layout written by Format:
//
//	cells: 5H - - -
//	home: AC 2D
//	column: KD QC JH
//	column: 3S
//	column:
//
// Columns list their cards bottom first. The home line names the top card of
// each started pile. Blank lines and lines starting with '#' are ignored.
func Parse(r io.Reader) (State, error) {
	var (
		columns  [][]Card
		cells    []Card
		homes    [NumSuits]Rank
		seenCell bool
	)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		label, rest, ok := strings.Cut(text, ":")
		if !ok {
			return State{}, fmt.Errorf("freecell: line %d: missing label", line)
		}
		cards, err := parseCards(rest)
		if err != nil {
			return State{}, fmt.Errorf("freecell: line %d: %w", line, err)
		}
		switch strings.ToLower(strings.TrimSpace(label)) {
		case "cells":
			if seenCell {
				return State{}, fmt.Errorf("freecell: line %d: duplicate cells line", line)
			}
			seenCell = true
			cells = cards
		case "home":
			for _, card := range cards {
				if card.IsZero() {
					continue
				}
				homes[card.Suit] = card.Rank
			}
		case "column":
			for _, card := range cards {
				if card.IsZero() {
					return State{}, fmt.Errorf("freecell: line %d: empty slot inside a column", line)
				}
			}
			columns = append(columns, cards)
		default:
			return State{}, fmt.Errorf("freecell: line %d: unknown label %q", line, label)
		}
	}
	if err := scanner.Err(); err != nil {
		return State{}, fmt.Errorf("freecell: read layout: %w", err)
	}
	if len(columns) == 0 {
		return State{}, fmt.Errorf("freecell: layout has no columns")
	}

	state := NewState(columns, cells, homes)
	if err := state.validate(); err != nil {
		return State{}, err
	}
	return state, nil
}

func parseCards(text string) ([]Card, error) {
	fields := strings.Fields(text)
	cards := make([]Card, 0, len(fields))
	for _, field := range fields {
		card, err := ParseCard(field)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// validate rejects duplicated cards and cards already covered by a home pile.
func (s State) validate() error {
	seen := make(map[Card]bool)
	check := func(card Card) error {
		if seen[card] {
			return fmt.Errorf("freecell: card %s appears twice", card)
		}
		if card.Rank <= s.homes[card.Suit] {
			return fmt.Errorf("freecell: card %s is already home", card)
		}
		seen[card] = true
		return nil
	}
	for _, column := range s.columns {
		for _, card := range column {
			if err := check(card); err != nil {
				return err
			}
		}
	}
	for _, cell := range s.cells {
		if cell.IsZero() {
			continue
		}
		if err := check(cell); err != nil {
			return err
		}
	}
	return nil
}

// Format writes s in the layout read by Parse.
func Format(w io.Writer, s State) error {
	return render(w, s, Card.String)
}

func render(w io.Writer, s State, paint func(Card) string) error {
	var b strings.Builder
	b.WriteString("cells:")
	for _, cell := range s.cells {
		b.WriteString(" ")
		b.WriteString(paint(cell))
	}
	b.WriteString("\nhome:")
	for suit, rank := range s.homes {
		if rank == 0 {
			continue
		}
		b.WriteString(" ")
		b.WriteString(paint(Card{Rank: rank, Suit: Suit(suit)}))
	}
	b.WriteString("\n")
	for _, column := range s.columns {
		b.WriteString("column:")
		for _, card := range column {
			b.WriteString(" ")
			b.WriteString(paint(card))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (s State) String() string {
	var b strings.Builder
	_ = Format(&b, s)
	return b.String()
}
