package game

import (
	"github.com/rs/zerolog/log"
	"voyager.com/cardtable/cards"
)

var playerLogger = log.With().Str("logger_name", "game::player").Logger()

//
// Player is a seat at a card table. The hand is stored in arrival order;
// use SortedHand for display.
//
// RoundPoints is the penalty count a trick-taking game accumulates during
// the current round. It is folded into Score when the round is scored.
//
type Player struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Hand        []cards.Card `json:"hand"`
	Score       int          `json:"score"`
	RoundPoints int          `json:"roundPoints"`
}

func NewPlayer(id string, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Hand: make([]cards.Card, 0, 13),
	}
}

func (p *Player) AddCard(card cards.Card) {
	p.Hand = append(p.Hand, card)
}

// RemoveCard removes the card with the same suit and rank. It returns false if the
// player does not hold it.
func (p *Player) RemoveCard(card cards.Card) bool {
	idx := cards.IndexOf(p.Hand, card)
	if idx == -1 {
		playerLogger.Debug().Str("player", p.ID).Msgf("Card %s is not in hand", card)
		return false
	}
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	return true
}

func (p *Player) HasCard(card cards.Card) bool {
	return cards.Contains(p.Hand, card)
}

func (p *Player) HasSuit(suit cards.Suit) bool {
	for _, c := range p.Hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// CardsOfSuit returns the cards in hand of the given suit.
func (p *Player) CardsOfSuit(suit cards.Suit) []cards.Card {
	out := make([]cards.Card, 0)
	for _, c := range p.Hand {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}

func (p *Player) ClearHand() {
	p.Hand = make([]cards.Card, 0, 13)
}

func (p *Player) AddPoints(points int) {
	p.Score += points
}

func (p *Player) ResetScore() {
	p.Score = 0
	p.RoundPoints = 0
}

func (p *Player) SortedHand() []cards.Card {
	return cards.SortForDisplay(p.Hand)
}
