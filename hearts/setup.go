package hearts

import (
	"github.com/pkg/errors"
	"voyager.com/cardtable/cards"
)

// SetupHands replaces the dealt hands with a prepared deal, the way game scripts stack
// the deck. It is only allowed right after a deal: while passing before anyone has
// passed, or before the first card of the round is played. Together the hands must be a
// complete deck.
func (g *Game) SetupHands(hands [][]cards.Card) error {
	switch {
	case g.Phase() == PhasePassing && len(g.pendingPasses) == 0:
	case g.Phase() == PhasePlaying && g.trickNumber == 1 && g.trick != nil && g.trick.Len() == 0:
	default:
		return &PhaseError{Op: "set up hands", Phase: g.Phase()}
	}
	if len(hands) != NumPlayers {
		return errors.Errorf("Expected %d hands, got %d", NumPlayers, len(hands))
	}
	seen := make(map[cards.Card]bool, NumPlayers*HandSize)
	for seat, hand := range hands {
		if len(hand) != HandSize {
			return errors.Errorf("Hand %d has %d cards, expected %d", seat, len(hand), HandSize)
		}
		for _, c := range hand {
			key := cards.Card{Suit: c.Suit, Rank: c.Rank}
			if !c.Valid() || seen[key] {
				return errors.Errorf("Card %s in hand %d is invalid or dealt twice", c, seat)
			}
			seen[key] = true
		}
	}

	for seat, p := range g.Players {
		p.ClearHand()
		for _, c := range hands[seat] {
			p.AddCard(cards.Card{Suit: c.Suit, Rank: c.Rank})
		}
	}
	if g.Phase() == PhasePlaying {
		g.determineStarter()
	}
	return nil
}
