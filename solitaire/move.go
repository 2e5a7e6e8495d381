package solitaire

import (
	"voyager.com/cardtable/cards"
)

type MoveKind string

const (
	MoveDraw                MoveKind = "draw"
	MoveWasteToTableau      MoveKind = "waste_to_tableau"
	MoveWasteToFoundation   MoveKind = "waste_to_foundation"
	MoveTableauToFoundation MoveKind = "tableau_to_foundation"
	MoveTableauToTableau    MoveKind = "tableau_to_tableau"
	MoveFoundationToTableau MoveKind = "foundation_to_tableau"
)

// Move is a recorded, reversible move. The set of moves is closed: every variant lives in
// this file and implements revert (undo) and replay (redo).
type Move interface {
	Kind() MoveKind
	revert(g *Game)
	replay(g *Game) (Move, bool)
}

// DrawMove moved Cards from the top of the stock to the waste, in stock order.
type DrawMove struct {
	Cards []cards.Card
}

// RecycleMove turned Count waste cards back into the stock.
type RecycleMove struct {
	Count int
}

type WasteToTableauMove struct {
	To   int
	Card cards.Card
}

type WasteToFoundationMove struct {
	To   int
	Card cards.Card
}

// TableauToFoundationMove records whether taking the card turned over the card beneath it.
type TableauToFoundationMove struct {
	From     int
	To       int
	Card     cards.Card
	Revealed bool
}

type TableauToTableauMove struct {
	From      int
	To        int
	CardIndex int
	Count     int
	Revealed  bool
}

type FoundationToTableauMove struct {
	From int
	To   int
	Card cards.Card
}

func (m *DrawMove) Kind() MoveKind                { return MoveDraw }
func (m *RecycleMove) Kind() MoveKind             { return MoveDraw }
func (m *WasteToTableauMove) Kind() MoveKind      { return MoveWasteToTableau }
func (m *WasteToFoundationMove) Kind() MoveKind   { return MoveWasteToFoundation }
func (m *TableauToFoundationMove) Kind() MoveKind { return MoveTableauToFoundation }
func (m *TableauToTableauMove) Kind() MoveKind    { return MoveTableauToTableau }
func (m *FoundationToTableauMove) Kind() MoveKind { return MoveFoundationToTableau }

func (m *DrawMove) revert(g *Game) {
	for range m.Cards {
		g.Waste.RemoveTopCard()
	}
	g.Stock.AddCards(m.Cards)
}

func (m *RecycleMove) revert(g *Game) {
	stock := g.Stock.clear()
	for i := len(stock) - 1; i >= 0; i-- {
		g.Waste.AddCards(stock[i : i+1])
	}
}

func (m *WasteToTableauMove) revert(g *Game) {
	g.Waste.AddCards(g.Tableau[m.To].takeTop(1))
}

func (m *WasteToFoundationMove) revert(g *Game) {
	if card, ok := g.Foundations[m.To].removeTopCard(); ok {
		g.Waste.AddCards([]cards.Card{card})
	}
}

func (m *TableauToFoundationMove) revert(g *Game) {
	if card, ok := g.Foundations[m.To].removeTopCard(); ok {
		g.Tableau[m.From].restore([]cards.Card{card}, m.Revealed)
	}
}

func (m *TableauToTableauMove) revert(g *Game) {
	run := g.Tableau[m.To].takeTop(m.Count)
	g.Tableau[m.From].restore(run, m.Revealed)
}

func (m *FoundationToTableauMove) revert(g *Game) {
	taken := g.Tableau[m.To].takeTop(1)
	f := g.Foundations[m.From]
	for _, c := range taken {
		f.cards = append(f.cards, c)
	}
}

func (m *DrawMove) replay(g *Game) (Move, bool)    { return g.drawFromStock() }
func (m *RecycleMove) replay(g *Game) (Move, bool) { return g.drawFromStock() }

func (m *WasteToTableauMove) replay(g *Game) (Move, bool) {
	return g.wasteToTableau(m.To)
}

func (m *WasteToFoundationMove) replay(g *Game) (Move, bool) {
	return g.wasteToFoundation(m.To)
}

func (m *TableauToFoundationMove) replay(g *Game) (Move, bool) {
	return g.tableauToFoundation(m.From, m.To)
}

func (m *TableauToTableauMove) replay(g *Game) (Move, bool) {
	return g.tableauToTableau(m.From, m.To, m.CardIndex)
}

func (m *FoundationToTableauMove) replay(g *Game) (Move, bool) {
	return g.foundationToTableau(m.From, m.To)
}
