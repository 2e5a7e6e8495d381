package hearts

import (
	"math/rand"

	"github.com/looplab/fsm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"voyager.com/cardtable/cards"
	"voyager.com/cardtable/game"
	"voyager.com/cardtable/logging"
)

var heartsLogger = log.With().Str("logger_name", "hearts::game").Logger()

type Phase string

const (
	PhaseWaiting Phase = "waiting"
	PhaseDealing Phase = "dealing"
	PhasePassing Phase = "passing"
	PhasePlaying Phase = "playing"
	PhaseScoring Phase = "scoring"
	PhaseEnded   Phase = "ended"
)

const (
	HeartsEvent__DEAL         = "deal"
	HeartsEvent__OPEN_PASSING = "open_passing"
	HeartsEvent__BEGIN_PLAY   = "begin_play"
	HeartsEvent__SCORE        = "score"
	HeartsEvent__FINISH       = "finish"
)

type PassDirection string

const (
	PassLeft   PassDirection = "left"
	PassRight  PassDirection = "right"
	PassAcross PassDirection = "across"
	PassNone   PassDirection = "none"
)

var passCycle = []PassDirection{PassLeft, PassRight, PassAcross, PassNone}

const (
	NumPlayers    = 4
	HandSize      = 13
	PassSize      = 3
	MoonPoints    = 26
	QueenPoints   = 13
	GameOverScore = 100
)

var (
	TwoOfClubs    = cards.Card{Suit: cards.Clubs, Rank: cards.Two}
	QueenOfSpades = cards.Card{Suit: cards.Spades, Rank: cards.Queen}
)

// TrickResult describes the last resolved trick.
type TrickResult struct {
	WinnerID string       `json:"winnerId"`
	Cards    []cards.Card `json:"cards"`
	Points   int          `json:"points"`
}

//
// Game is a four player Hearts game. It embeds the table turn cycle and drives the
// round through waiting, dealing, passing, playing and scoring until a player reaches
// GameOverScore. The game is not safe for concurrent use.
//
type Game struct {
	*game.Table

	sm               *fsm.FSM
	direction        PassDirection
	pendingPasses    map[string][]cards.Card
	trick            *game.Trick
	trickNumber      int
	heartsBroken     bool
	roundNumber      int
	lastRoundResults map[string]int
	takenCards       map[string][]cards.Card
	lastTrick        *TrickResult

	// direction for the next deal, set by scripted games
	directionOverride PassDirection
}

// New seats exactly four players with distinct ids. A nil source uses a crypto-seeded deck.
func New(players []*game.Player, source rand.Source) (*Game, error) {
	if len(players) != NumPlayers {
		return nil, errors.Errorf("Hearts needs %d players, got %d", NumPlayers, len(players))
	}
	ids := make(map[string]bool)
	for _, p := range players {
		if p == nil || p.ID == "" {
			return nil, errors.New("Player id is required")
		}
		if ids[p.ID] {
			return nil, errors.Errorf("Duplicate player id %s", p.ID)
		}
		ids[p.ID] = true
	}

	g := &Game{
		Table:            game.NewTable(players, source),
		direction:        PassLeft,
		pendingPasses:    make(map[string][]cards.Card),
		roundNumber:      1,
		lastRoundResults: make(map[string]int),
		takenCards:       make(map[string][]cards.Card),
	}
	g.sm = fsm.NewFSM(
		string(PhaseWaiting),
		fsm.Events{
			{
				Name: HeartsEvent__DEAL,
				Src:  []string{string(PhaseWaiting), string(PhaseScoring)},
				Dst:  string(PhaseDealing),
			},
			{
				Name: HeartsEvent__OPEN_PASSING,
				Src:  []string{string(PhaseDealing)},
				Dst:  string(PhasePassing),
			},
			{
				Name: HeartsEvent__BEGIN_PLAY,
				Src:  []string{string(PhaseDealing), string(PhasePassing)},
				Dst:  string(PhasePlaying),
			},
			{
				Name: HeartsEvent__SCORE,
				Src:  []string{string(PhasePlaying)},
				Dst:  string(PhaseScoring),
			},
			{
				Name: HeartsEvent__FINISH,
				Src:  []string{string(PhaseScoring)},
				Dst:  string(PhaseEnded),
			},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) { g.enterState(e) },
		},
	)
	return g, nil
}

func (g *Game) enterState(e *fsm.Event) {
	heartsLogger.Debug().
		Int(logging.RoundNumKey, g.roundNumber).
		Str(logging.PhaseKey, e.Dst).
		Msgf("[%s] ===> [%s]", e.Src, e.Dst)
}

func (g *Game) event(event string) {
	if err := g.sm.Event(event); err != nil {
		// every transition is guarded by a phase check, so this is a programming error
		panic(errors.Wrapf(err, "hearts event %s from %s", event, g.sm.Current()))
	}
}

func (g *Game) Phase() Phase {
	return Phase(g.sm.Current())
}

func (g *Game) PassDirection() PassDirection {
	return g.direction
}

func (g *Game) RoundNumber() int {
	return g.roundNumber
}

// TrickNumber is 1 for the first trick of a round and 0 before play starts.
func (g *Game) TrickNumber() int {
	return g.trickNumber
}

func (g *Game) HeartsBroken() bool {
	return g.heartsBroken
}

// CurrentTrick is nil outside of the playing phase.
func (g *Game) CurrentTrick() *game.Trick {
	return g.trick
}

func (g *Game) LastTrick() *TrickResult {
	return g.lastTrick
}

func (g *Game) LastRoundResults() map[string]int {
	out := make(map[string]int, len(g.lastRoundResults))
	for k, v := range g.lastRoundResults {
		out[k] = v
	}
	return out
}

func (g *Game) TakenCards(playerID string) []cards.Card {
	taken := g.takenCards[playerID]
	out := make([]cards.Card, len(taken))
	copy(out, taken)
	return out
}

// HasPassed reports whether the player has a pending pass this round.
func (g *Game) HasPassed(playerID string) bool {
	_, ok := g.pendingPasses[playerID]
	return ok
}

// OverridePassDirection fixes the direction used by the next deal.
func (g *Game) OverridePassDirection(direction PassDirection) {
	g.directionOverride = direction
}

// Start deals the first round.
func (g *Game) Start() error {
	if g.Phase() != PhaseWaiting {
		return &PhaseError{Op: "start", Phase: g.Phase()}
	}
	g.start()
	return nil
}

func (g *Game) start() {
	g.Table.Reset()
	g.Status = game.StatusPlaying
	g.event(HeartsEvent__DEAL)
	g.Deal(HandSize)

	g.direction = passCycle[(g.roundNumber-1)%len(passCycle)]
	if g.directionOverride != "" {
		g.direction = g.directionOverride
		g.directionOverride = ""
	}
	g.pendingPasses = make(map[string][]cards.Card)
	g.trick = nil
	g.trickNumber = 0
	g.lastTrick = nil

	heartsLogger.Info().
		Int(logging.RoundNumKey, g.roundNumber).
		Msgf("Round dealt. Passing %s", g.direction)

	if g.direction == PassNone {
		g.event(HeartsEvent__BEGIN_PLAY)
		g.determineStarter()
		return
	}
	g.event(HeartsEvent__OPEN_PASSING)
}

// PassTarget returns the seat receiving the cards passed from seat.
func PassTarget(seat int, direction PassDirection) int {
	switch direction {
	case PassLeft:
		return (seat + 1) % NumPlayers
	case PassRight:
		return (seat + 3) % NumPlayers
	case PassAcross:
		return (seat + 2) % NumPlayers
	}
	return seat
}

// SubmitPass buffers three cards from the player's hand. Submitting again replaces the
// earlier choice. Once every player has submitted, all passes are exchanged at once.
func (g *Game) SubmitPass(playerID string, passed []cards.Card) error {
	if g.Phase() != PhasePassing {
		return &PhaseError{Op: "pass", Phase: g.Phase()}
	}
	player := g.PlayerByID(playerID)
	if player == nil {
		return &InvalidPassError{PlayerID: playerID, Reason: "unknown player"}
	}
	if len(passed) != PassSize {
		return &InvalidPassError{PlayerID: playerID, Reason: "exactly 3 cards must be passed"}
	}
	chosen := make([]cards.Card, 0, PassSize)
	for _, c := range passed {
		if !player.HasCard(c) {
			return &InvalidPassError{PlayerID: playerID, Reason: c.String() + " is not in hand"}
		}
		if cards.Contains(chosen, c) {
			return &InvalidPassError{PlayerID: playerID, Reason: c.String() + " is passed twice"}
		}
		chosen = append(chosen, cards.Card{Suit: c.Suit, Rank: c.Rank})
	}
	g.pendingPasses[playerID] = chosen

	if len(g.pendingPasses) == len(g.Players) {
		g.executePasses()
	}
	return nil
}

// executePasses removes every pass from its sender before handing any of them out, so a
// card arriving at a seat is never taken back out as part of that seat's own pass.
func (g *Game) executePasses() {
	for _, p := range g.Players {
		for _, c := range g.pendingPasses[p.ID] {
			p.RemoveCard(c)
		}
	}
	for seat, p := range g.Players {
		target := g.Players[PassTarget(seat, g.direction)]
		for _, c := range g.pendingPasses[p.ID] {
			target.AddCard(c)
		}
	}
	g.pendingPasses = make(map[string][]cards.Card)
	g.event(HeartsEvent__BEGIN_PLAY)
	g.determineStarter()
}

func (g *Game) determineStarter() {
	for seat, p := range g.Players {
		if p.HasCard(TwoOfClubs) {
			g.SetCurrentSeat(seat)
			break
		}
	}
	g.trick = game.NewTrick(cards.NoSuit)
	g.trickNumber = 1
	heartsLogger.Debug().
		Int(logging.RoundNumKey, g.roundNumber).
		Str(logging.PlayerIDKey, g.CurrentPlayer().ID).
		Msg("Two of clubs leads")
}

func (g *Game) IsTrickFull() bool {
	return g.trick != nil && g.trick.Len() >= len(g.Players)
}

func isPointCard(c cards.Card) bool {
	return c.Suit == cards.Hearts || c.Same(QueenOfSpades)
}

// IsValidMove applies the Hearts play rules for the player. It does not check whose turn
// it is; PlayCard does.
func (g *Game) IsValidMove(playerID string, card cards.Card) bool {
	if g.Phase() != PhasePlaying || g.trick == nil {
		return false
	}
	player := g.PlayerByID(playerID)
	if player == nil || !player.HasCard(card) {
		return false
	}
	if g.IsTrickFull() {
		return false
	}

	firstTrick := g.trickNumber == 1
	leading := g.trick.Len() == 0

	if leading {
		if firstTrick {
			return card.Same(TwoOfClubs)
		}
		if card.Suit == cards.Hearts && !g.heartsBroken {
			for _, c := range player.Hand {
				if c.Suit != cards.Hearts {
					return false
				}
			}
		}
		return true
	}

	lead := g.trick.LeadSuit()
	if card.Suit == lead {
		return true
	}
	if player.HasSuit(lead) {
		return false
	}
	if firstTrick && isPointCard(card) {
		for _, c := range player.Hand {
			if !isPointCard(c) {
				return false
			}
		}
	}
	return true
}

// LegalMoves returns the cards the player may play now, in display order.
func (g *Game) LegalMoves(playerID string) []cards.Card {
	player := g.PlayerByID(playerID)
	legal := make([]cards.Card, 0)
	if player == nil {
		return legal
	}
	for _, c := range player.SortedHand() {
		if g.IsValidMove(playerID, c) {
			legal = append(legal, c)
		}
	}
	return legal
}

// PlayCard plays a card for the player on turn. The turn advances unless the trick is
// full; a full trick waits for ResolveTrick.
func (g *Game) PlayCard(playerID string, card cards.Card) error {
	if g.Phase() != PhasePlaying {
		return &PhaseError{Op: "play", Phase: g.Phase()}
	}
	player := g.PlayerByID(playerID)
	if player == nil {
		return &InvalidMoveError{PlayerID: playerID, Card: card}
	}
	if current := g.CurrentPlayer(); current != player {
		return &NotYourTurnError{PlayerID: playerID, Current: current.ID}
	}
	if !g.IsValidMove(playerID, card) {
		return &InvalidMoveError{PlayerID: playerID, Card: card}
	}

	player.RemoveCard(card)
	card.FaceUp = true
	g.trick.AddPlay(player, card)
	if card.Suit == cards.Hearts {
		g.heartsBroken = true
	}
	if !g.IsTrickFull() {
		g.NextTurn()
	}
	return nil
}

// TrickPoints counts one point per heart and 13 for the queen of spades.
func TrickPoints(cs []cards.Card) int {
	points := 0
	for _, c := range cs {
		if c.Suit == cards.Hearts {
			points++
		} else if c.Same(QueenOfSpades) {
			points += QueenPoints
		}
	}
	return points
}

// ResolveTrick awards a full trick to its winner, who leads next. It returns false and
// does nothing unless the trick is full. Taking the last trick ends the round.
func (g *Game) ResolveTrick() bool {
	if !g.IsTrickFull() {
		return false
	}
	winner := g.trick.Winner()
	taken := g.trick.Cards()
	points := TrickPoints(taken)

	winner.RoundPoints += points
	g.takenCards[winner.ID] = append(g.takenCards[winner.ID], taken...)
	g.SetCurrentSeat(g.SeatOf(winner.ID))
	g.lastTrick = &TrickResult{WinnerID: winner.ID, Cards: taken, Points: points}

	heartsLogger.Debug().
		Int(logging.RoundNumKey, g.roundNumber).
		Int(logging.TrickNumKey, g.trickNumber).
		Str(logging.PlayerIDKey, winner.ID).
		Msgf("Trick %s taken for %d points", cards.CardsToString(taken), points)

	if len(winner.Hand) == 0 {
		g.endRound()
		return true
	}
	g.trick = game.NewTrick(cards.NoSuit)
	g.trickNumber++
	return true
}

func (g *Game) endRound() {
	g.event(HeartsEvent__SCORE)
	g.trick = nil
	g.calculateFinalScores()

	for _, p := range g.Players {
		if p.Score >= GameOverScore {
			g.event(HeartsEvent__FINISH)
			g.Status = game.StatusEnded
			break
		}
	}
}

// calculateFinalScores adds the round points to the scores. A player who took all 26
// points shoots the moon: the shooter's score is unchanged and everyone else gets 26.
func (g *Game) calculateFinalScores() {
	var shooter *game.Player
	for _, p := range g.Players {
		if p.RoundPoints == MoonPoints {
			shooter = p
		}
	}

	g.lastRoundResults = make(map[string]int, len(g.Players))
	for _, p := range g.Players {
		delta := p.RoundPoints
		if shooter != nil {
			delta = MoonPoints
			if p == shooter {
				delta = 0
			}
		}
		p.AddPoints(delta)
		g.lastRoundResults[p.ID] = delta
	}

	l := heartsLogger.Info().Int(logging.RoundNumKey, g.roundNumber)
	if shooter != nil {
		l = l.Str("moon", shooter.ID)
	}
	l.Interface("results", g.lastRoundResults).Msg("Round scored")
}

// NextRound deals the next round. It returns false and does nothing unless the round has
// been scored and the game has not ended.
func (g *Game) NextRound() bool {
	if g.Phase() != PhaseScoring {
		return false
	}
	g.roundNumber++
	for _, p := range g.Players {
		p.RoundPoints = 0
	}
	g.takenCards = make(map[string][]cards.Card)
	g.lastRoundResults = make(map[string]int)
	g.heartsBroken = false
	g.start()
	return true
}

// Winners returns the players with the lowest score once the game has ended.
func (g *Game) Winners() []*game.Player {
	if g.Phase() != PhaseEnded {
		return nil
	}
	best := g.Players[0].Score
	for _, p := range g.Players[1:] {
		if p.Score < best {
			best = p.Score
		}
	}
	winners := make([]*game.Player, 0, 1)
	for _, p := range g.Players {
		if p.Score == best {
			winners = append(winners, p)
		}
	}
	return winners
}
