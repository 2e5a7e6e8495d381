package game

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"
	"voyager.com/cardtable/cards"
)

var tableLogger = log.With().Str("logger_name", "game::table").Logger()

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
	StatusEnded   Status = "ended"
)

// Table is the turn cycle shared by multiplayer card games: seats in order, one deck and
// the index of the player on turn.
type Table struct {
	Players []*Player
	Status  Status

	current int
	deck    *cards.Deck
}

// NewTable seats the players in the given order. A nil source uses a crypto-seeded deck.
func NewTable(players []*Player, source rand.Source) *Table {
	return &Table{
		Players: players,
		Status:  StatusWaiting,
		deck:    cards.NewDeck(source),
	}
}

func (t *Table) NextTurn() {
	t.current = (t.current + 1) % len(t.Players)
}

func (t *Table) CurrentPlayer() *Player {
	return t.Players[t.current]
}

func (t *Table) CurrentSeat() int {
	return t.current
}

// SetCurrentSeat puts the player at seat on turn.
func (t *Table) SetCurrentSeat(seat int) {
	if seat < 0 || seat >= len(t.Players) {
		panic(fmt.Sprintf("invalid seat %d", seat))
	}
	t.current = seat
}

// Deal shuffles once and then hands out n rounds of one card per seat.
func (t *Table) Deal(n int) {
	t.deck.Shuffle()
	for i := 0; i < n; i++ {
		for _, p := range t.Players {
			if card, ok := t.deck.Draw(); ok {
				p.AddCard(card)
			}
		}
	}
	tableLogger.Debug().Msgf("Dealt %d cards to %d players. Deck: %d", n, len(t.Players), t.deck.Remaining())
}

// Reset clears hands, restores a full deck and puts seat 0 on turn. Scores are kept.
func (t *Table) Reset() {
	for _, p := range t.Players {
		p.ClearHand()
	}
	t.deck.Reset()
	t.current = 0
	t.Status = StatusWaiting
}

func (t *Table) PlayerByID(id string) *Player {
	if seat := t.SeatOf(id); seat >= 0 {
		return t.Players[seat]
	}
	return nil
}

// SeatOf returns -1 for an unknown player.
func (t *Table) SeatOf(id string) int {
	for i, p := range t.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}
