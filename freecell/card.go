package freecell

import (
	"fmt"
	"strings"
)

// Suit order matches the Microsoft deal numbering: clubs, diamonds, hearts, spades.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	suitLetters = "CDHS"
	rankLetters = "-A23456789TJQK"
	// NumSuits is the number of suits and home piles.
	NumSuits = 4
	MaxRank  = 13
)

func (s Suit) String() string { return string(suitLetters[s]) }

func (s Suit) Red() bool { return s == Diamonds || s == Hearts }

// Rank runs from 1 (ace) to 13 (king); 0 means no card.
type Rank uint8

func (r Rank) String() string {
	if r > MaxRank {
		return "?"
	}
	return string(rankLetters[r])
}

// Card is a playing card. The zero Card is "no card".
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) IsZero() bool { return c.Rank == 0 }

func (c Card) Red() bool { return c.Suit.Red() }

func (c Card) String() string {
	if c.IsZero() {
		return "-"
	}
	return c.Rank.String() + c.Suit.String()
}

// StacksOn reports whether c may be placed on top of under in a column.
func (c Card) StacksOn(under Card) bool {
	return !under.IsZero() && under.Rank == c.Rank+1 && under.Red() != c.Red()
}

// index packs the card into 1..52 so it fits a single key byte.
func (c Card) index() byte {
	return byte(c.Rank-1)*NumSuits + byte(c.Suit) + 1
}

// ParseCard reads cards such as "AH", "TD", "10D" or "qs". "-" is the zero Card.
func ParseCard(text string) (Card, error) {
	text = strings.ToUpper(strings.TrimSpace(text))
	if text == "-" {
		return Card{}, nil
	}
	if len(text) < 2 {
		return Card{}, fmt.Errorf("freecell: invalid card %q", text)
	}
	rankText, suitText := text[:len(text)-1], text[len(text)-1:]
	if rankText == "10" {
		rankText = "T"
	}
	suit := strings.Index(suitLetters, suitText)
	rank := strings.Index(rankLetters, rankText)
	if len(rankText) != 1 || suit < 0 || rank < 1 {
		return Card{}, fmt.Errorf("freecell: invalid card %q", text)
	}
	return Card{Rank: Rank(rank), Suit: Suit(suit)}, nil
}
