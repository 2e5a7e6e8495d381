package solitaire

import (
	"fmt"

	"voyager.com/cardtable/cards"
)

// PlacementError is returned when a card is added to a pile that does not accept it.
// Callers are expected to check CanAddCard first.
type PlacementError struct {
	Card cards.Card
	Pile string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("Cannot add %s to %s", e.Card, e.Pile)
}

// RangeError is returned for a card index outside of a pile.
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("Invalid index: %d (pile has %d cards)", e.Index, e.Len)
}
