package session

import (
	"math/rand"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"voyager.com/cardtable/logging"
	"voyager.com/cardtable/solitaire"
	"voyager.com/cardtable/util"
)

var solitaireSessionLogger = log.With().Str("logger_name", "session::solitaire").Logger()

// SolitaireMove is a move command. From and To are pile indexes; CardIndex is used by
// tableau to tableau moves.
type SolitaireMove struct {
	Kind      solitaire.MoveKind `json:"kind"`
	From      int                `json:"from"`
	To        int                `json:"to"`
	CardIndex int                `json:"cardIndex"`
}

type solitaireIntent struct {
	name  string
	apply func(g *solitaire.Game) error
	reply chan solitaireReply
}

type solitaireReply struct {
	state solitaire.GameState
	err   error
}

// SolitaireSession owns a Klondike game. Like HeartsSession, every command and read is
// applied by the session goroutine in arrival order.
type SolitaireSession struct {
	id     string
	game   *solitaire.Game
	source func() rand.Source
	sink   EventSink
	logger zerolog.Logger

	intents   chan *solitaireIntent
	end       chan struct{}
	closeOnce sync.Once
}

// NewSolitaireSession deals a game. newSource supplies the shuffle source for each new
// game; nil means crypto-seeded decks.
func NewSolitaireSession(id string, newSource func() rand.Source, sink EventSink) *SolitaireSession {
	if newSource == nil {
		newSource = func() rand.Source { return nil }
	}
	if sink == nil {
		sink = NopSink{}
	}
	s := &SolitaireSession{
		id:      id,
		game:    solitaire.NewGame(newSource()),
		source:  newSource,
		sink:    sink,
		intents: make(chan *solitaireIntent),
		end:     make(chan struct{}),
	}
	s.logger = solitaireSessionLogger.With().
		Str(logging.SessionIDKey, id).
		Str(logging.GameKindKey, GameSolitaire).
		Logger()

	s.sink.Publish(newEvent(id, GameSolitaire, EventCreated))
	util.Metrics.SessionCreated(GameSolitaire)
	go s.run()
	return s
}

func (s *SolitaireSession) ID() string {
	return s.id
}

func (s *SolitaireSession) State() (solitaire.GameState, error) {
	return s.request("state", nil)
}

// NewGame discards the current game and deals a fresh one.
func (s *SolitaireSession) NewGame() (solitaire.GameState, error) {
	return s.request("new", func(g *solitaire.Game) error {
		s.game = solitaire.NewGame(s.source())
		return nil
	})
}

func (s *SolitaireSession) Draw() (solitaire.GameState, error) {
	return s.request(string(solitaire.MoveDraw), moveFunc(string(solitaire.MoveDraw), (*solitaire.Game).DrawFromStock))
}

func (s *SolitaireSession) Undo() (solitaire.GameState, error) {
	return s.request("undo", moveFunc("undo", (*solitaire.Game).Undo))
}

func (s *SolitaireSession) Redo() (solitaire.GameState, error) {
	return s.request("redo", moveFunc("redo", (*solitaire.Game).Redo))
}

// AutoMove moves every card it can to the foundations. Moving nothing is not an error.
func (s *SolitaireSession) AutoMove() (solitaire.GameState, error) {
	return s.request("auto", func(g *solitaire.Game) error {
		moved := g.AutoMove()
		s.logger.Debug().Msgf("Auto move placed %d cards", moved)
		return nil
	})
}

func (s *SolitaireSession) Move(move SolitaireMove) (solitaire.GameState, error) {
	return s.request(string(move.Kind), func(g *solitaire.Game) error {
		var ok bool
		switch move.Kind {
		case solitaire.MoveDraw:
			ok = g.DrawFromStock()
		case solitaire.MoveWasteToTableau:
			ok = g.MoveWasteToTableau(move.To)
		case solitaire.MoveWasteToFoundation:
			ok = g.MoveWasteToFoundation(move.To)
		case solitaire.MoveTableauToFoundation:
			ok = g.MoveTableauToFoundation(move.From, move.To)
		case solitaire.MoveTableauToTableau:
			ok = g.MoveTableauToTableau(move.From, move.To, move.CardIndex)
		case solitaire.MoveFoundationToTableau:
			ok = g.MoveFoundationToTableau(move.From, move.To)
		}
		if !ok {
			return &IllegalMoveError{Move: string(move.Kind)}
		}
		return nil
	})
}

func (s *SolitaireSession) Close() {
	s.closeOnce.Do(func() {
		close(s.end)
		s.sink.Publish(newEvent(s.id, GameSolitaire, EventClosed))
		s.logger.Info().Msg("Session closed")
	})
}

func moveFunc(name string, op func(*solitaire.Game) bool) func(*solitaire.Game) error {
	return func(g *solitaire.Game) error {
		if !op(g) {
			return &IllegalMoveError{Move: name}
		}
		return nil
	}
}

func (s *SolitaireSession) request(name string, apply func(g *solitaire.Game) error) (solitaire.GameState, error) {
	intent := &solitaireIntent{name: name, apply: apply, reply: make(chan solitaireReply, 1)}
	select {
	case s.intents <- intent:
	case <-s.end:
		return solitaire.GameState{}, &SessionClosedError{SessionID: s.id}
	}
	select {
	case r := <-intent.reply:
		return r.state, r.err
	case <-s.end:
		return solitaire.GameState{}, &SessionClosedError{SessionID: s.id}
	}
}

func (s *SolitaireSession) run() {
	for {
		select {
		case <-s.end:
			return
		case intent := <-s.intents:
			var err error
			if intent.apply != nil {
				err = intent.apply(s.game)
				s.record(intent.name, err)
			}
			intent.reply <- solitaireReply{state: s.game.State(), err: err}
		}
	}
}

func (s *SolitaireSession) record(name string, err error) {
	if err != nil {
		util.Metrics.MoveRejected(GameSolitaire)
		s.logger.Debug().Str(logging.IntentKey, name).Msg("Move rejected")
		return
	}
	util.Metrics.MoveApplied(GameSolitaire)
	event := newEvent(s.id, GameSolitaire, EventSolitaireMove)
	event.Data = map[string]interface{}{
		"move":  name,
		"moves": s.game.MoveCount(),
		"won":   s.game.IsWon(),
	}
	s.sink.Publish(event)
}
