package bot

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"voyager.com/cardtable/cards"
	"voyager.com/cardtable/hearts"
)

// Heuristic is the baseline Hearts opponent.
//
// Passing: the queen of spades first, then hearts, then the highest ranks.
// Playing: lead the lowest non-heart (the lowest card if only hearts are legal);
// when following, play the lowest legal card.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Kind() Kind { return KindHeuristic }

func (h *Heuristic) ChoosePass(ctx context.Context, hand []cards.Card) ([]cards.Card, error) {
	if len(hand) < hearts.PassSize {
		return nil, errors.Errorf("Cannot pass %d cards from a hand of %d", hearts.PassSize, len(hand))
	}
	return PassPriority(hand)[:hearts.PassSize], nil
}

// PassPriority orders a hand by how much the heuristic wants to get rid of each card.
func PassPriority(hand []cards.Card) []cards.Card {
	sorted := make([]cards.Card, len(hand))
	copy(sorted, hand)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		aq, bq := a.Same(hearts.QueenOfSpades), b.Same(hearts.QueenOfSpades)
		if aq != bq {
			return aq
		}
		ah, bh := a.Suit == cards.Hearts, b.Suit == cards.Hearts
		if ah != bh {
			return ah
		}
		return a.Rank.HighValue() > b.Rank.HighValue()
	})
	return sorted
}

func (h *Heuristic) ChoosePlay(ctx context.Context, view *hearts.View, legal []cards.Card) (cards.Card, error) {
	if len(legal) == 0 {
		return cards.Card{}, errors.New("No legal moves")
	}
	leading := view == nil || view.IsLeading()
	if leading {
		nonHearts := make([]cards.Card, 0, len(legal))
		for _, c := range legal {
			if c.Suit != cards.Hearts {
				nonHearts = append(nonHearts, c)
			}
		}
		if len(nonHearts) > 0 {
			return lowest(nonHearts), nil
		}
	}
	return lowest(legal), nil
}

// lowest returns the first card with the lowest rank, Ace high.
func lowest(cs []cards.Card) cards.Card {
	low := cs[0]
	for _, c := range cs[1:] {
		if c.Rank.HighValue() < low.Rank.HighValue() {
			low = c
		}
	}
	return low
}
