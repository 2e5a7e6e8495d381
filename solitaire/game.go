package solitaire

import (
	"math/rand"

	"github.com/rs/zerolog/log"
	"voyager.com/cardtable/cards"
)

var solitaireLogger = log.With().Str("logger_name", "solitaire::game").Logger()

const (
	NumTableau     = 7
	NumFoundations = 4
	DrawCount      = 3
)

// Game is a Klondike (draw three) game. It is not safe for concurrent use; the session layer
// serializes access.
type Game struct {
	Foundations [NumFoundations]*Foundation
	Tableau     [NumTableau]*Tableau
	Stock       *Stock
	Waste       *Waste

	history []Move
	redo    []Move
	moves   int
	deck    *cards.Deck
}

type FoundationState struct {
	Suit  cards.Suit   `json:"suit"`
	Cards []cards.Card `json:"cards"`
}

// GameState is a copy of the table for display.
type GameState struct {
	Foundations []FoundationState `json:"foundations"`
	Tableau     [][]cards.Card    `json:"tableau"`
	Waste       []cards.Card      `json:"waste"`
	StockCount  int               `json:"stockCount"`
	WasteCount  int               `json:"wasteCount"`
	IsWon       bool              `json:"isWon"`
	CanUndo     bool              `json:"canUndo"`
	CanRedo     bool              `json:"canRedo"`
	CanAutoMove bool              `json:"canAutoMove"`
	Moves       int               `json:"moves"`
}

// NewGame creates a game and deals it. A nil source shuffles with a crypto seed.
func NewGame(source rand.Source) *Game {
	g := &Game{deck: cards.NewDeck(source)}
	g.Deal()
	return g
}

// Deal resets every pile, shuffles and deals: tableau pile i gets i+1 cards with the last one
// face up, the remaining 24 cards go to the stock face down.
func (g *Game) Deal() {
	for i, suit := range cards.Suits {
		g.Foundations[i] = NewFoundation(suit)
	}
	for i := range g.Tableau {
		g.Tableau[i] = NewTableau()
	}
	g.Stock = NewStock()
	g.Waste = NewWaste()
	g.history = nil
	g.redo = nil
	g.moves = 0

	g.deck.Reset()
	g.deck.Shuffle()

	for i := 0; i < NumTableau; i++ {
		pile := make([]cards.Card, 0, i+1)
		for j := 0; j <= i; j++ {
			if card, ok := g.deck.Draw(); ok {
				pile = append(pile, card)
			}
		}
		g.Tableau[i].AddCards(pile)
	}

	remaining := make([]cards.Card, 0, g.deck.Remaining())
	for card, ok := g.deck.Draw(); ok; card, ok = g.deck.Draw() {
		remaining = append(remaining, card)
	}
	g.Stock.AddCards(remaining)
	solitaireLogger.Debug().Msgf("Dealt new game. Stock: %d cards", g.Stock.Count())
}

func (g *Game) IsWon() bool {
	for _, f := range g.Foundations {
		if !f.IsComplete() {
			return false
		}
	}
	return true
}

func (g *Game) CanUndo() bool {
	return len(g.history) > 0
}

func (g *Game) CanRedo() bool {
	return len(g.redo) > 0
}

// MoveCount counts successful moves, undos and redos.
func (g *Game) MoveCount() int {
	return g.moves
}

func (g *Game) History() []Move {
	out := make([]Move, len(g.history))
	copy(out, g.history)
	return out
}

func (g *Game) State() GameState {
	state := GameState{
		Foundations: make([]FoundationState, 0, NumFoundations),
		Tableau:     make([][]cards.Card, 0, NumTableau),
		Waste:       g.Waste.Cards(),
		StockCount:  g.Stock.Count(),
		WasteCount:  g.Waste.Count(),
		IsWon:       g.IsWon(),
		CanUndo:     g.CanUndo(),
		CanRedo:     g.CanRedo(),
		CanAutoMove: g.CanAutoMove(),
		Moves:       g.moves,
	}
	for _, f := range g.Foundations {
		state.Foundations = append(state.Foundations, FoundationState{Suit: f.Suit(), Cards: f.Cards()})
	}
	for _, t := range g.Tableau {
		state.Tableau = append(state.Tableau, t.Cards())
	}
	return state
}

// DrawFromStock turns up to three cards onto the waste, or recycles the waste when the
// stock is empty. It fails only when both are empty.
func (g *Game) DrawFromStock() bool {
	return g.record(g.drawFromStock())
}

func (g *Game) MoveWasteToTableau(tableauIndex int) bool {
	return g.record(g.wasteToTableau(tableauIndex))
}

func (g *Game) MoveWasteToFoundation(foundationIndex int) bool {
	return g.record(g.wasteToFoundation(foundationIndex))
}

func (g *Game) MoveTableauToFoundation(tableauIndex, foundationIndex int) bool {
	return g.record(g.tableauToFoundation(tableauIndex, foundationIndex))
}

// MoveTableauToTableau moves the run starting at cardIndex as one unit.
func (g *Game) MoveTableauToTableau(fromIndex, toIndex, cardIndex int) bool {
	return g.record(g.tableauToTableau(fromIndex, toIndex, cardIndex))
}

func (g *Game) MoveFoundationToTableau(foundationIndex, tableauIndex int) bool {
	return g.record(g.foundationToTableau(foundationIndex, tableauIndex))
}

func (g *Game) Undo() bool {
	n := len(g.history)
	if n == 0 {
		return false
	}
	move := g.history[n-1]
	g.history = g.history[:n-1]
	move.revert(g)
	g.redo = append(g.redo, move)
	g.moves++
	return true
}

func (g *Game) Redo() bool {
	n := len(g.redo)
	if n == 0 {
		return false
	}
	move, ok := g.redo[n-1].replay(g)
	if !ok {
		solitaireLogger.Warn().Msgf("Unable to redo %s move", g.redo[n-1].Kind())
		return false
	}
	g.redo = g.redo[:n-1]
	g.history = append(g.history, move)
	g.moves++
	return true
}

// CanAutoMove reports whether the waste top or any face-up tableau top fits a foundation.
func (g *Game) CanAutoMove() bool {
	if card, ok := g.Waste.TopCard(); ok && g.foundationFor(card) >= 0 {
		return true
	}
	for _, t := range g.Tableau {
		if card, ok := t.TopCard(); ok && card.FaceUp && g.foundationFor(card) >= 0 {
			return true
		}
	}
	return false
}

// AutoMove keeps moving the first eligible card (waste first, then tableau in pile order)
// to a foundation until none is left and returns the number of cards moved.
func (g *Game) AutoMove() int {
	moved := 0
	for {
		if card, ok := g.Waste.TopCard(); ok {
			if f := g.foundationFor(card); f >= 0 && g.MoveWasteToFoundation(f) {
				moved++
				continue
			}
		}

		found := false
		for t, pile := range g.Tableau {
			card, ok := pile.TopCard()
			if !ok || !card.FaceUp {
				continue
			}
			if f := g.foundationFor(card); f >= 0 && g.MoveTableauToFoundation(t, f) {
				moved++
				found = true
				break
			}
		}
		if !found {
			return moved
		}
	}
}

func (g *Game) record(move Move, ok bool) bool {
	if !ok {
		return false
	}
	g.history = append(g.history, move)
	g.redo = nil
	g.moves++
	return true
}

func (g *Game) foundationFor(card cards.Card) int {
	for i, f := range g.Foundations {
		if f.CanAddCard(card) {
			return i
		}
	}
	return -1
}

func validTableau(i int) bool {
	return i >= 0 && i < NumTableau
}

func validFoundation(i int) bool {
	return i >= 0 && i < NumFoundations
}

func (g *Game) drawFromStock() (Move, bool) {
	if g.Stock.IsEmpty() {
		if g.Waste.IsEmpty() {
			return nil, false
		}
		waste := g.Waste.Clear()
		g.Stock.Reset(waste)
		return &RecycleMove{Count: len(waste)}, true
	}
	drawn := g.Stock.Draw(DrawCount)
	g.Waste.AddCards(drawn)
	return &DrawMove{Cards: drawn}, true
}

func (g *Game) wasteToTableau(to int) (Move, bool) {
	if !validTableau(to) {
		return nil, false
	}
	card, ok := g.Waste.TopCard()
	if !ok || !g.Tableau[to].CanAddCard(card) {
		return nil, false
	}
	g.Waste.RemoveTopCard()
	if err := g.Tableau[to].AddCard(card); err != nil {
		solitaireLogger.Error().Err(err).Msg("Tableau rejected a checked card")
		g.Waste.AddCards([]cards.Card{card})
		return nil, false
	}
	return &WasteToTableauMove{To: to, Card: card}, true
}

func (g *Game) wasteToFoundation(to int) (Move, bool) {
	if !validFoundation(to) {
		return nil, false
	}
	card, ok := g.Waste.TopCard()
	if !ok || !g.Foundations[to].CanAddCard(card) {
		return nil, false
	}
	g.Waste.RemoveTopCard()
	if err := g.Foundations[to].AddCard(card); err != nil {
		solitaireLogger.Error().Err(err).Msg("Foundation rejected a checked card")
		g.Waste.AddCards([]cards.Card{card})
		return nil, false
	}
	return &WasteToFoundationMove{To: to, Card: card}, true
}

func (g *Game) tableauToFoundation(from, to int) (Move, bool) {
	if !validTableau(from) || !validFoundation(to) {
		return nil, false
	}
	pile := g.Tableau[from]
	card, ok := pile.TopCard()
	if !ok || !card.FaceUp || !g.Foundations[to].CanAddCard(card) {
		return nil, false
	}
	removed, revealed, err := pile.cut(pile.Count() - 1)
	if err != nil {
		return nil, false
	}
	if err := g.Foundations[to].AddCard(removed[0]); err != nil {
		solitaireLogger.Error().Err(err).Msg("Foundation rejected a checked card")
		pile.restore(removed, revealed)
		return nil, false
	}
	return &TableauToFoundationMove{From: from, To: to, Card: removed[0], Revealed: revealed}, true
}

func (g *Game) tableauToTableau(from, to, cardIndex int) (Move, bool) {
	if !validTableau(from) || !validTableau(to) || from == to {
		return nil, false
	}
	src := g.Tableau[from]
	if cardIndex < 0 || cardIndex >= src.Count() {
		return nil, false
	}
	run := src.cards[cardIndex:]
	if !run[0].FaceUp || !g.Tableau[to].CanAddCards(run) {
		return nil, false
	}
	removed, revealed, err := src.cut(cardIndex)
	if err != nil {
		return nil, false
	}
	g.Tableau[to].restore(removed, false)
	return &TableauToTableauMove{
		From:      from,
		To:        to,
		CardIndex: cardIndex,
		Count:     len(removed),
		Revealed:  revealed,
	}, true
}

func (g *Game) foundationToTableau(from, to int) (Move, bool) {
	if !validFoundation(from) || !validTableau(to) {
		return nil, false
	}
	card, ok := g.Foundations[from].TopCard()
	if !ok || !g.Tableau[to].CanAddCard(card) {
		return nil, false
	}
	g.Foundations[from].removeTopCard()
	if err := g.Tableau[to].AddCard(card); err != nil {
		solitaireLogger.Error().Err(err).Msg("Tableau rejected a checked card")
		g.Foundations[from].cards = append(g.Foundations[from].cards, card)
		return nil, false
	}
	return &FoundationToTableauMove{From: from, To: to, Card: card}, true
}
