package solitaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyager.com/cardtable/cards"
)

func TestFoundationSequence(t *testing.T) {
	f := NewFoundation(cards.Spades)
	assert.False(t, f.CanAddCard(cards.MustCard("2s")))
	assert.False(t, f.CanAddCard(cards.MustCard("Ah")))

	for _, rank := range cards.Ranks {
		card := cards.Card{Suit: cards.Spades, Rank: rank}
		require.True(t, f.CanAddCard(card), "rank %s", rank)
		// Anything but the next rank is rejected.
		if rank < cards.King {
			assert.False(t, f.CanAddCard(cards.Card{Suit: cards.Spades, Rank: rank + 1}))
		}
		require.NoError(t, f.AddCard(card))
		assert.False(t, f.CanAddCard(card))
	}
	assert.True(t, f.IsComplete())
	assert.Equal(t, 13, f.Count())
	top, ok := f.TopCard()
	assert.True(t, ok)
	assert.Equal(t, cards.King, top.Rank)
	assert.True(t, top.FaceUp)
}

func TestFoundationAddCardError(t *testing.T) {
	f := NewFoundation(cards.Hearts)
	err := f.AddCard(cards.MustCard("5h"))
	require.Error(t, err)
	var placement *PlacementError
	require.ErrorAs(t, err, &placement)
	assert.Equal(t, "Cannot add 5h to hearts foundation", err.Error())
	assert.True(t, f.IsEmpty())
}

func TestTableauAcceptsKingOnlyWhenEmpty(t *testing.T) {
	tab := NewTableau()
	assert.True(t, tab.CanAddCard(cards.MustCard("Kh")))
	assert.True(t, tab.CanAddCard(cards.MustCard("Ks")))
	assert.False(t, tab.CanAddCard(cards.MustCard("Qh")))
	assert.False(t, tab.CanAddCard(cards.MustCard("Ac")))
	require.Error(t, tab.AddCard(cards.MustCard("Qh")))
}

func TestTableauChain(t *testing.T) {
	tab := NewTableau()
	chain := []string{"Ks", "Qh", "Jc", "Td", "9s", "8h", "7c", "6d", "5s", "4h", "3c", "2d", "As"}
	for _, s := range chain {
		card := cards.MustCard(s)
		require.True(t, tab.CanAddCard(card), s)
		require.NoError(t, tab.AddCard(card))
	}
	assert.Equal(t, 13, tab.Count())
	assert.Equal(t, 13, len(tab.FaceUpCards()))

	tab = NewTableau()
	require.NoError(t, tab.AddCard(cards.MustCard("Ks")))
	// same color
	assert.False(t, tab.CanAddCard(cards.MustCard("Qc")))
	// wrong rank
	assert.False(t, tab.CanAddCard(cards.MustCard("Jh")))
	assert.True(t, tab.CanAddCards([]cards.Card{cards.MustCard("Qd"), cards.MustCard("Js")}))
	assert.False(t, tab.CanAddCards(nil))
}

func TestTableauAddCardsFlipsLast(t *testing.T) {
	tab := NewTableau()
	tab.AddCards([]cards.Card{cards.MustCard("2c"), cards.MustCard("9h"), cards.MustCard("Qs")})
	got := tab.Cards()
	assert.False(t, got[0].FaceUp)
	assert.False(t, got[1].FaceUp)
	assert.True(t, got[2].FaceUp)
	assert.Equal(t, []cards.Card{{Suit: cards.Spades, Rank: cards.Queen, FaceUp: true}}, tab.FaceUpCards())
}

func TestTableauRemoveCards(t *testing.T) {
	tab := NewTableau()
	tab.AddCards([]cards.Card{cards.MustCard("2c"), cards.MustCard("9h"), cards.MustCard("Qs")})

	removed, err := tab.RemoveCards(2)
	require.NoError(t, err)
	assert.Equal(t, 1, len(removed))
	assert.True(t, removed[0].Same(cards.MustCard("Qs")))
	top, _ := tab.TopCard()
	assert.True(t, top.FaceUp, "new top is turned over")

	_, err = tab.RemoveCards(5)
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 5, rangeErr.Index)
	_, err = tab.RemoveCards(-1)
	require.Error(t, err)

	removed, err = tab.RemoveCards(0)
	require.NoError(t, err)
	assert.Equal(t, 2, len(removed))
	assert.True(t, tab.IsEmpty())
}

func TestStockAndWaste(t *testing.T) {
	stock := NewStock()
	stock.AddCards([]cards.Card{cards.MustCard("Ah"), cards.MustCard("2h"), cards.MustCard("3h"), cards.MustCard("4h")})
	for _, c := range stock.Cards() {
		assert.False(t, c.FaceUp)
	}

	drawn := stock.Draw(3)
	assert.Equal(t, []string{"2h", "3h", "4h"}, cards.Strings(drawn))
	assert.Equal(t, 1, stock.Count())
	assert.Equal(t, 1, len(stock.Draw(3)))
	assert.Equal(t, 0, len(stock.Draw(3)))

	waste := NewWaste()
	waste.AddCards(drawn)
	top, ok := waste.TopCard()
	require.True(t, ok)
	assert.Equal(t, "4h", top.String())
	assert.True(t, top.FaceUp)

	cleared := waste.Clear()
	assert.Equal(t, []string{"2h", "3h", "4h"}, cards.Strings(cleared))
	assert.True(t, waste.IsEmpty())
	assert.NotNil(t, waste.Clear())

	stock.Reset(cleared)
	assert.Equal(t, []string{"4h", "3h", "2h"}, cards.Strings(stock.Cards()))
	for _, c := range stock.Cards() {
		assert.False(t, c.FaceUp)
	}
}
