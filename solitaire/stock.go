package solitaire

import (
	"voyager.com/cardtable/cards"
)

// Stock is the face-down draw pile. The top is the end of the slice.
type Stock struct {
	cards []cards.Card
}

func NewStock() *Stock {
	return &Stock{}
}

func (s *Stock) IsEmpty() bool {
	return len(s.cards) == 0
}

func (s *Stock) Count() int {
	return len(s.cards)
}

func (s *Stock) Cards() []cards.Card {
	out := make([]cards.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

func (s *Stock) AddCards(cs []cards.Card) {
	for _, c := range cs {
		c.FaceUp = false
		s.cards = append(s.cards, c)
	}
}

// Draw removes up to count cards from the top, keeping their stock order.
func (s *Stock) Draw(count int) []cards.Card {
	if count <= 0 || s.IsEmpty() {
		return []cards.Card{}
	}
	if count > len(s.cards) {
		count = len(s.cards)
	}
	start := len(s.cards) - count
	drawn := make([]cards.Card, count)
	copy(drawn, s.cards[start:])
	s.cards = s.cards[:start]
	return drawn
}

// Reset refills the stock from the waste: face down, order reversed.
func (s *Stock) Reset(cs []cards.Card) {
	s.cards = make([]cards.Card, 0, len(cs))
	for i := len(cs) - 1; i >= 0; i-- {
		c := cs[i]
		c.FaceUp = false
		s.cards = append(s.cards, c)
	}
}

func (s *Stock) clear() []cards.Card {
	cleared := s.cards
	s.cards = nil
	return cleared
}
