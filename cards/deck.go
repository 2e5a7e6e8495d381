package cards

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

type Deck struct {
	cards   []Card
	randGen *rand.Rand
}

func NewSeed() rand.Source {
	var b [8]byte
	_, err := crypto_rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewDeck returns a full, unshuffled deck. A nil source is replaced with a crypto-seeded one.
func NewDeck(source rand.Source) *Deck {
	if source == nil {
		source = NewSeed()
	}
	deck := &Deck{randGen: rand.New(source)}
	deck.Reset()
	return deck
}

// Reset rebuilds the canonical deck: suit-major, rank ascending, all face down.
func (deck *Deck) Reset() {
	deck.cards = make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck.cards = append(deck.cards, Card{Suit: suit, Rank: rank})
		}
	}
}

// Shuffle performs a Fisher-Yates permutation of the remaining cards.
func (deck *Deck) Shuffle() {
	for i := len(deck.cards) - 1; i > 0; i-- {
		j := deck.randGen.Intn(i + 1)
		deck.cards[i], deck.cards[j] = deck.cards[j], deck.cards[i]
	}
}

// Draw removes and returns the top (last) card. ok is false when the deck is empty.
func (deck *Deck) Draw() (card Card, ok bool) {
	n := len(deck.cards)
	if n == 0 {
		return Card{}, false
	}
	card = deck.cards[n-1]
	deck.cards = deck.cards[:n-1]
	return card, true
}

func (deck *Deck) Remaining() int {
	return len(deck.cards)
}

func (deck *Deck) Empty() bool {
	return len(deck.cards) == 0
}

func (deck *Deck) Cards() []Card {
	cards := make([]Card, len(deck.cards))
	copy(cards, deck.cards)
	return cards
}

func (deck *Deck) PrettyPrint() string {
	return CardsToString(deck.cards)
}
