package cards

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckReset(t *testing.T) {
	deck := NewDeck(rand.NewSource(1))
	deck.Shuffle()
	deck.Draw()
	deck.Reset()

	cards := deck.Cards()
	require.Len(t, cards, DeckSize)
	seen := make(map[string]bool)
	for _, c := range cards {
		assert.False(t, c.FaceUp, "%s should be face down", c)
		assert.False(t, seen[c.String()], "duplicate %s", c)
		seen[c.String()] = true
	}
	// suit-major, rank ascending
	assert.Equal(t, "Ah", cards[0].String())
	assert.Equal(t, "Kh", cards[12].String())
	assert.Equal(t, "Ad", cards[13].String())
	assert.Equal(t, "Ks", cards[51].String())
}

func TestDeckShufflePreservesCards(t *testing.T) {
	deck := NewDeck(rand.NewSource(42))
	before := deck.Cards()
	deck.Shuffle()
	after := deck.Cards()
	require.Len(t, after, DeckSize)
	assert.ElementsMatch(t, before, after)
	assert.NotEqual(t, before, after)
}

func TestDeckDrawIsLastInFirstOut(t *testing.T) {
	deck := NewDeck(rand.NewSource(7))
	deck.Shuffle()
	cards := deck.Cards()

	for i := len(cards) - 1; i >= 0; i-- {
		c, ok := deck.Draw()
		require.True(t, ok)
		assert.Equal(t, cards[i], c)
	}
	c, ok := deck.Draw()
	assert.False(t, ok)
	assert.Equal(t, Card{}, c)
	assert.True(t, deck.Empty())
}

func TestDeckSameSeedSameOrder(t *testing.T) {
	d1 := NewDeck(rand.NewSource(99))
	d2 := NewDeck(rand.NewSource(99))
	d1.Shuffle()
	d2.Shuffle()
	assert.Equal(t, d1.Cards(), d2.Cards())
}
