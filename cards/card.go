package cards

import (
	"fmt"
	"sort"
	"strings"
)

type Suit int8

type Rank int8

// NoSuit and NoRank are the zero values; the zero Card is the "no card" sentinel.
const (
	NoSuit Suit = iota
	Hearts
	Diamonds
	Clubs
	Spades
)

const (
	NoRank Rank = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var (
	// Suits is the canonical deck order.
	Suits = []Suit{Hearts, Diamonds, Clubs, Spades}
	// Ranks is the canonical deck order, Ace low.
	Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}
)

var (
	strRanks  = "?A23456789TJQK"
	strSuits  = "?hdcs"
	suitNames = [...]string{"none", "hearts", "diamonds", "clubs", "spades"}
	rankNames = [...]string{"none", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

	prettySuits = map[Suit]string{
		Spades:   "♠",
		Hearts:   "❤",
		Diamonds: "♦",
		Clubs:    "♣",
	}

	// display order used when sorting a hand
	displaySuitOrder = map[Suit]int{Clubs: 0, Diamonds: 1, Spades: 2, Hearts: 3}
)

func (s Suit) String() string {
	if s < NoSuit || int(s) >= len(suitNames) {
		return suitNames[0]
	}
	return suitNames[s]
}

func (s Suit) Valid() bool {
	return s >= Hearts && s <= Spades
}

func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

func (s Suit) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Suit) UnmarshalText(b []byte) error {
	name := strings.ToLower(string(b))
	for i, n := range suitNames {
		if n == name || (len(name) == 1 && i > 0 && strSuits[i] == name[0]) {
			*s = Suit(i)
			return nil
		}
	}
	return fmt.Errorf("Invalid suit [%s]", string(b))
}

func (r Rank) String() string {
	if r < NoRank || int(r) >= len(rankNames) {
		return rankNames[0]
	}
	return rankNames[r]
}

func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// HighValue orders ranks for trick taking, where Ace is high.
func (r Rank) HighValue() int {
	if r == Ace {
		return 14
	}
	return int(r)
}

func (r Rank) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rank) UnmarshalText(b []byte) error {
	name := strings.ToUpper(string(b))
	if name == "T" {
		name = "10"
	}
	for i, n := range rankNames {
		if i > 0 && n == name {
			*r = Rank(i)
			return nil
		}
	}
	return fmt.Errorf("Invalid rank [%s]", string(b))
}

// Card is a playing card. Suit and Rank are its identity; FaceUp is table state.
type Card struct {
	Suit   Suit `json:"suit"`
	Rank   Rank `json:"rank"`
	FaceUp bool `json:"faceUp"`
}

// NewCard parses the short notation used in scripts and requests, e.g. "Qs", "Th", "10h", "2c".
func NewCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("Invalid card [%s]", s)
	}
	var rank Rank
	if err := rank.UnmarshalText([]byte(s[:len(s)-1])); err != nil {
		return Card{}, fmt.Errorf("Invalid card [%s]", s)
	}
	var suit Suit
	if err := suit.UnmarshalText([]byte(s[len(s)-1:])); err != nil {
		return Card{}, fmt.Errorf("Invalid card [%s]", s)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// MustCard is NewCard for literals known to be valid.
func MustCard(s string) Card {
	c, err := NewCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

func ParseCards(strs []string) ([]Card, error) {
	cards := make([]Card, 0, len(strs))
	for _, s := range strs {
		c, err := NewCard(s)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(strRanks[c.Rank]) + string(strSuits[c.Suit])
}

func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Same reports whether both values are the same physical card, regardless of face.
func (c Card) Same(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

func (c *Card) Flip() {
	c.FaceUp = !c.FaceUp
}

func (c Card) Pretty() string {
	if !c.Valid() {
		return "??"
	}
	return rankNames[c.Rank] + prettySuits[c.Suit]
}

func IndexOf(cards []Card, card Card) int {
	for i, c := range cards {
		if c.Same(card) {
			return i
		}
	}
	return -1
}

func Contains(cards []Card, card Card) bool {
	return IndexOf(cards, card) != -1
}

// SortForDisplay orders clubs, diamonds, spades, hearts; rank ascending with Ace high.
func SortForDisplay(cards []Card) []Card {
	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Suit != b.Suit {
			return displaySuitOrder[a.Suit] < displaySuitOrder[b.Suit]
		}
		return a.Rank.HighValue() < b.Rank.HighValue()
	})
	return sorted
}

func CardsToString(cards []Card) string {
	var b strings.Builder
	b.Grow(32)
	fmt.Fprintf(&b, "[")
	for _, c := range cards {
		fmt.Fprintf(&b, " %s ", c.Pretty())
	}
	fmt.Fprintf(&b, "]")
	return b.String()
}

func Strings(cards []Card) []string {
	strs := make([]string, len(cards))
	for i, c := range cards {
		strs[i] = c.String()
	}
	return strs
}
