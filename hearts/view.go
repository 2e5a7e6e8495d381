package hearts

import (
	"voyager.com/cardtable/cards"
)

type PlayView struct {
	PlayerID string     `json:"playerId"`
	Seat     int        `json:"seat"`
	Card     cards.Card `json:"card"`
}

type PlayerView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Seat        int    `json:"seat"`
	Score       int    `json:"score"`
	RoundPoints int    `json:"roundPoints"`
	HandCount   int    `json:"handCount"`
	Passed      bool   `json:"passed"`
}

// View is the snapshot of a game as seen from one seat. Only the viewer's own hand is
// included. It is what bots and API clients receive.
type View struct {
	Phase            Phase          `json:"phase"`
	Round            int            `json:"round"`
	TrickNumber      int            `json:"trickNumber"`
	PassDirection    PassDirection  `json:"passDirection"`
	HeartsBroken     bool           `json:"heartsBroken"`
	CurrentSeat      int            `json:"currentSeat"`
	CurrentPlayerID  string         `json:"currentPlayerId"`
	LeadSuit         cards.Suit     `json:"leadSuit,omitempty"`
	Trick            []PlayView     `json:"trick"`
	TrickFull        bool           `json:"trickFull"`
	Players          []PlayerView   `json:"players"`
	ViewerID         string         `json:"viewerId,omitempty"`
	ViewerSeat       int            `json:"viewerSeat"`
	Hand             []cards.Card   `json:"hand"`
	LegalMoves       []cards.Card   `json:"legalMoves"`
	LastTrick        *TrickResult   `json:"lastTrick,omitempty"`
	LastRoundResults map[string]int `json:"lastRoundResults,omitempty"`
	Winners          []string       `json:"winners,omitempty"`
}

// IsLeading reports whether the next card played opens the trick.
func (v *View) IsLeading() bool {
	return len(v.Trick) == 0
}

// View builds the snapshot for viewerID. An unknown viewer gets the public table only.
func (g *Game) View(viewerID string) View {
	view := View{
		Phase:            g.Phase(),
		Round:            g.roundNumber,
		TrickNumber:      g.trickNumber,
		PassDirection:    g.direction,
		HeartsBroken:     g.heartsBroken,
		CurrentSeat:      g.CurrentSeat(),
		CurrentPlayerID:  g.CurrentPlayer().ID,
		Trick:            make([]PlayView, 0, NumPlayers),
		TrickFull:        g.IsTrickFull(),
		Players:          make([]PlayerView, 0, len(g.Players)),
		ViewerSeat:       -1,
		Hand:             make([]cards.Card, 0),
		LegalMoves:       make([]cards.Card, 0),
		LastTrick:        g.lastTrick,
		LastRoundResults: g.LastRoundResults(),
	}
	if g.trick != nil {
		view.LeadSuit = g.trick.LeadSuit()
		for _, play := range g.trick.Plays() {
			view.Trick = append(view.Trick, PlayView{
				PlayerID: play.Player.ID,
				Seat:     g.SeatOf(play.Player.ID),
				Card:     play.Card,
			})
		}
	}
	for seat, p := range g.Players {
		view.Players = append(view.Players, PlayerView{
			ID:          p.ID,
			Name:        p.Name,
			Seat:        seat,
			Score:       p.Score,
			RoundPoints: p.RoundPoints,
			HandCount:   len(p.Hand),
			Passed:      g.HasPassed(p.ID),
		})
	}
	if viewer := g.PlayerByID(viewerID); viewer != nil {
		view.ViewerID = viewer.ID
		view.ViewerSeat = g.SeatOf(viewer.ID)
		for _, c := range viewer.SortedHand() {
			c.FaceUp = true
			view.Hand = append(view.Hand, c)
		}
		if g.CurrentPlayer() == viewer {
			view.LegalMoves = g.LegalMoves(viewer.ID)
		}
	}
	for _, w := range g.Winners() {
		view.Winners = append(view.Winners, w.ID)
	}
	return view
}
