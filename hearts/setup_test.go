package hearts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyager.com/cardtable/cards"
)

func suitHands() [][]cards.Card {
	hands := make([][]cards.Card, NumPlayers)
	for seat, suit := range []cards.Suit{cards.Spades, cards.Hearts, cards.Clubs, cards.Diamonds} {
		for _, rank := range cards.Ranks {
			hands[seat] = append(hands[seat], cards.Card{Suit: suit, Rank: rank})
		}
	}
	return hands
}

func TestSetupHandsWhilePassing(t *testing.T) {
	g := newGame(t, 3)
	require.NoError(t, g.Start())
	require.Equal(t, PhasePassing, g.Phase())

	require.NoError(t, g.SetupHands(suitHands()))
	assert.True(t, g.Players[2].HasCard(TwoOfClubs))
	assert.Len(t, g.Players[0].Hand, HandSize)

	require.NoError(t, g.SubmitPass("p0", mustCards("As", "Ks", "Qs")))
	assert.Error(t, g.SetupHands(suitHands()), "a pass is pending")
}

func TestSetupHandsBeforeFirstPlay(t *testing.T) {
	g := newGame(t, 3)
	g.OverridePassDirection(PassNone)
	require.NoError(t, g.Start())
	require.NoError(t, g.SetupHands(suitHands()))
	assert.Equal(t, "p2", g.CurrentPlayer().ID)

	require.NoError(t, g.PlayCard("p2", TwoOfClubs))
	var phaseErr *PhaseError
	assert.ErrorAs(t, g.SetupHands(suitHands()), &phaseErr)
}

func TestSetupHandsRejectsBadDeals(t *testing.T) {
	g := newGame(t, 3)
	require.NoError(t, g.Start())

	hands := suitHands()
	assert.Error(t, g.SetupHands(hands[:3]))

	hands = suitHands()
	hands[1][0] = hands[0][0]
	assert.Error(t, g.SetupHands(hands))

	hands = suitHands()
	hands[3] = hands[3][:12]
	assert.Error(t, g.SetupHands(hands))
}
