package game

import (
	"voyager.com/cardtable/cards"
)

// Play is one card laid on a trick.
type Play struct {
	Player *Player
	Card   cards.Card
}

// Trick is the ordered set of plays of one trick. The first play sets the lead suit.
// Trump is cards.NoSuit when the game has no trump.
type Trick struct {
	plays    []Play
	leadSuit cards.Suit
	trump    cards.Suit
}

func NewTrick(trump cards.Suit) *Trick {
	return &Trick{
		plays: make([]Play, 0, 4),
		trump: trump,
	}
}

func (t *Trick) AddPlay(player *Player, card cards.Card) {
	if len(t.plays) == 0 {
		t.leadSuit = card.Suit
	}
	t.plays = append(t.plays, Play{Player: player, Card: card})
}

// LeadSuit is cards.NoSuit until the first play.
func (t *Trick) LeadSuit() cards.Suit {
	return t.leadSuit
}

func (t *Trick) Trump() cards.Suit {
	return t.trump
}

func (t *Trick) Len() int {
	return len(t.plays)
}

func (t *Trick) Plays() []Play {
	out := make([]Play, len(t.plays))
	copy(out, t.plays)
	return out
}

func (t *Trick) Cards() []cards.Card {
	out := make([]cards.Card, len(t.plays))
	for i, p := range t.plays {
		out[i] = p.Card
	}
	return out
}

// WinningPlay scans the plays left to right keeping the running winner. A trump beats
// any non-trump, and a card of the running winner's suit wins only with a higher rank
// (Ace high). Any other card never takes the trick.
func (t *Trick) WinningPlay() (Play, bool) {
	if len(t.plays) == 0 {
		return Play{}, false
	}
	winning := t.plays[0]
	for _, play := range t.plays[1:] {
		isTrump := t.trump != cards.NoSuit && play.Card.Suit == t.trump
		winnerIsTrump := t.trump != cards.NoSuit && winning.Card.Suit == t.trump
		if isTrump && !winnerIsTrump {
			winning = play
			continue
		}
		if play.Card.Suit == winning.Card.Suit && play.Card.Rank.HighValue() > winning.Card.Rank.HighValue() {
			winning = play
		}
	}
	return winning, true
}

// Winner returns nil for an empty trick.
func (t *Trick) Winner() *Player {
	play, ok := t.WinningPlay()
	if !ok {
		return nil
	}
	return play.Player
}

func (t *Trick) Clear() {
	t.plays = t.plays[:0]
	t.leadSuit = cards.NoSuit
}
