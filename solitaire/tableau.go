package solitaire

import (
	"voyager.com/cardtable/cards"
)

// Tableau is built down by alternating colors. Only a King may start an empty pile.
type Tableau struct {
	cards []cards.Card
}

func NewTableau() *Tableau {
	return &Tableau{}
}

func (t *Tableau) IsEmpty() bool {
	return len(t.cards) == 0
}

func (t *Tableau) Count() int {
	return len(t.cards)
}

func (t *Tableau) TopCard() (cards.Card, bool) {
	if t.IsEmpty() {
		return cards.Card{}, false
	}
	return t.cards[len(t.cards)-1], true
}

func (t *Tableau) Cards() []cards.Card {
	out := make([]cards.Card, len(t.cards))
	copy(out, t.cards)
	return out
}

// AddCards appends the initial deal and turns only the last card face up.
func (t *Tableau) AddCards(cs []cards.Card) {
	t.cards = append(t.cards, cs...)
	if len(t.cards) > 0 {
		t.cards[len(t.cards)-1].FaceUp = true
	}
}

func (t *Tableau) CanAddCard(card cards.Card) bool {
	top, ok := t.TopCard()
	if !ok {
		return card.Rank == cards.King
	}
	if card.Rank != top.Rank-1 {
		return false
	}
	return card.IsRed() != top.IsRed()
}

// CanAddCards checks a run against its first card only; a face-up run is already ordered.
func (t *Tableau) CanAddCards(cs []cards.Card) bool {
	if len(cs) == 0 {
		return false
	}
	return t.CanAddCard(cs[0])
}

func (t *Tableau) AddCard(card cards.Card) error {
	if !t.CanAddCard(card) {
		return &PlacementError{Card: card, Pile: "tableau"}
	}
	card.FaceUp = true
	t.cards = append(t.cards, card)
	return nil
}

// RemoveCards cuts the pile at fromIndex, returns the suffix and turns the new top face up.
func (t *Tableau) RemoveCards(fromIndex int) ([]cards.Card, error) {
	removed, _, err := t.cut(fromIndex)
	return removed, err
}

// FaceUpCards returns the run starting at the first face-up card.
func (t *Tableau) FaceUpCards() []cards.Card {
	for i, c := range t.cards {
		if c.FaceUp {
			out := make([]cards.Card, len(t.cards)-i)
			copy(out, t.cards[i:])
			return out
		}
	}
	return []cards.Card{}
}

// cut is RemoveCards that also reports whether a face-down card was turned over.
func (t *Tableau) cut(fromIndex int) ([]cards.Card, bool, error) {
	if fromIndex < 0 || fromIndex >= len(t.cards) {
		return nil, false, &RangeError{Index: fromIndex, Len: len(t.cards)}
	}
	removed := make([]cards.Card, len(t.cards)-fromIndex)
	copy(removed, t.cards[fromIndex:])
	t.cards = t.cards[:fromIndex]

	revealed := false
	if n := len(t.cards); n > 0 && !t.cards[n-1].FaceUp {
		t.cards[n-1].FaceUp = true
		revealed = true
	}
	return removed, revealed, nil
}

// restore puts cards back without placement checks and optionally hides the card beneath.
func (t *Tableau) restore(cs []cards.Card, hideTop bool) {
	if hideTop && len(t.cards) > 0 {
		t.cards[len(t.cards)-1].FaceUp = false
	}
	for _, c := range cs {
		c.FaceUp = true
		t.cards = append(t.cards, c)
	}
}

// takeTop removes the last n cards without turning anything over.
func (t *Tableau) takeTop(n int) []cards.Card {
	if n > len(t.cards) {
		n = len(t.cards)
	}
	start := len(t.cards) - n
	taken := make([]cards.Card, n)
	copy(taken, t.cards[start:])
	t.cards = t.cards[:start]
	return taken
}
