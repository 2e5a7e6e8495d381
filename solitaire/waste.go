package solitaire

import (
	"voyager.com/cardtable/cards"
)

// Waste holds face-up cards drawn from the stock.
type Waste struct {
	cards []cards.Card
}

func NewWaste() *Waste {
	return &Waste{}
}

func (w *Waste) IsEmpty() bool {
	return len(w.cards) == 0
}

func (w *Waste) Count() int {
	return len(w.cards)
}

func (w *Waste) Cards() []cards.Card {
	out := make([]cards.Card, len(w.cards))
	copy(out, w.cards)
	return out
}

func (w *Waste) AddCards(cs []cards.Card) {
	for _, c := range cs {
		c.FaceUp = true
		w.cards = append(w.cards, c)
	}
}

func (w *Waste) TopCard() (cards.Card, bool) {
	if w.IsEmpty() {
		return cards.Card{}, false
	}
	return w.cards[len(w.cards)-1], true
}

func (w *Waste) RemoveTopCard() (cards.Card, bool) {
	top, ok := w.TopCard()
	if ok {
		w.cards = w.cards[:len(w.cards)-1]
	}
	return top, ok
}

// Clear empties the waste and returns its cards bottom to top.
func (w *Waste) Clear() []cards.Card {
	cleared := w.cards
	w.cards = nil
	if cleared == nil {
		cleared = []cards.Card{}
	}
	return cleared
}
