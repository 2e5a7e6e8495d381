package solitaire

import (
	"fmt"

	"voyager.com/cardtable/cards"
)

// Foundation is built up by suit from Ace to King.
type Foundation struct {
	suit  cards.Suit
	cards []cards.Card
}

func NewFoundation(suit cards.Suit) *Foundation {
	return &Foundation{suit: suit}
}

func (f *Foundation) Suit() cards.Suit {
	return f.suit
}

func (f *Foundation) IsEmpty() bool {
	return len(f.cards) == 0
}

func (f *Foundation) Count() int {
	return len(f.cards)
}

func (f *Foundation) TopCard() (cards.Card, bool) {
	if f.IsEmpty() {
		return cards.Card{}, false
	}
	return f.cards[len(f.cards)-1], true
}

func (f *Foundation) Cards() []cards.Card {
	out := make([]cards.Card, len(f.cards))
	copy(out, f.cards)
	return out
}

func (f *Foundation) CanAddCard(card cards.Card) bool {
	if card.Suit != f.suit {
		return false
	}
	top, ok := f.TopCard()
	if !ok {
		return card.Rank == cards.Ace
	}
	return card.Rank == top.Rank+1
}

func (f *Foundation) AddCard(card cards.Card) error {
	if !f.CanAddCard(card) {
		return &PlacementError{Card: card, Pile: fmt.Sprintf("%s foundation", f.suit)}
	}
	card.FaceUp = true
	f.cards = append(f.cards, card)
	return nil
}

func (f *Foundation) IsComplete() bool {
	return len(f.cards) == len(cards.Ranks)
}

func (f *Foundation) removeTopCard() (cards.Card, bool) {
	top, ok := f.TopCard()
	if ok {
		f.cards = f.cards[:len(f.cards)-1]
	}
	return top, ok
}
