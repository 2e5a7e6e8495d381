package session

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"voyager.com/cardtable/bot"
	caches "voyager.com/cardtable/caching"
	"voyager.com/cardtable/cards"
	"voyager.com/cardtable/game"
	"voyager.com/cardtable/hearts"
	"voyager.com/cardtable/logging"
	"voyager.com/cardtable/util"
)

var heartsSessionLogger = log.With().Str("logger_name", "session::hearts").Logger()

type intentKind string

const (
	intentView        intentKind = "view"
	intentPass        intentKind = "pass"
	intentPlay        intentKind = "play"
	intentNextRound   intentKind = "next_round"
	intentBotDecision intentKind = "bot_decision"
	intentResolve     intentKind = "resolve"
)

type heartsIntent struct {
	kind     intentKind
	playerID string
	cards    []cards.Card
	card     cards.Card
	err      error
	turn     turnToken
	reply    chan heartsReply
}

type heartsReply struct {
	view hearts.View
	err  error
}

// turnToken identifies one decision point, so a late bot answer is never applied to a
// later turn.
type turnToken struct {
	round int
	trick int
	plays int
	seat  int
}

// Seat configures one Hearts seat.
type Seat struct {
	ID     string
	Name   string
	Policy bot.Policy
}

type SeatInfo struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Kind bot.Kind `json:"kind"`
}

//
// HeartsSession owns one Hearts game. A single goroutine (run) applies every intent in
// arrival order: human commands, reads, bot decisions and trick resolution. Bots think
// on their own goroutine and hand their decision back as an intent, so reads are served
// while a bot is thinking. At most one bot decision and one trick resolution are pending
// at any time.
//
type HeartsSession struct {
	id       string
	game     *hearts.Game
	seats    []bot.Policy
	info     []SeatInfo
	fallback *bot.Heuristic
	delays   Delays
	sink     EventSink
	onEnd    func(result *caches.GameResult)
	logger   zerolog.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	intents   chan *heartsIntent
	end       chan struct{}
	closeOnce sync.Once

	// owned by run
	botPending     bool
	resolvePending bool
	resultSent     bool
}

// NewHeartsSession deals the first round and starts the session goroutine.
func NewHeartsSession(id string, seats []Seat, source rand.Source, delays Delays, sink EventSink, onEnd func(*caches.GameResult)) (*HeartsSession, error) {
	if len(seats) != hearts.NumPlayers {
		return nil, &InvalidConfigError{Msg: fmt.Sprintf("Hearts needs %d seats, got %d", hearts.NumPlayers, len(seats))}
	}
	if sink == nil {
		sink = NopSink{}
	}
	players := make([]*game.Player, len(seats))
	policies := make([]bot.Policy, len(seats))
	info := make([]SeatInfo, len(seats))
	for i, seat := range seats {
		playerID := seat.ID
		if playerID == "" {
			playerID = fmt.Sprintf("p%d", i)
		}
		name := seat.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		policy := seat.Policy
		if policy == nil {
			policy = bot.Human{}
		}
		players[i] = game.NewPlayer(playerID, name)
		policies[i] = policy
		info[i] = SeatInfo{ID: playerID, Name: name, Kind: policy.Kind()}
	}

	g, err := hearts.New(players, source)
	if err != nil {
		return nil, err
	}
	if err := g.Start(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &HeartsSession{
		id:       id,
		game:     g,
		seats:    policies,
		info:     info,
		fallback: bot.NewHeuristic(),
		delays:   delays,
		sink:     sink,
		onEnd:    onEnd,
		ctx:      ctx,
		cancel:   cancel,
		intents:  make(chan *heartsIntent),
		end:      make(chan struct{}),
	}
	s.logger = heartsSessionLogger.With().
		Str(logging.SessionIDKey, id).
		Str(logging.GameKindKey, GameHearts).
		Logger()

	created := newEvent(id, GameHearts, EventCreated)
	created.Data = info
	s.sink.Publish(created)
	util.Metrics.SessionCreated(GameHearts)

	go s.run()
	return s, nil
}

func (s *HeartsSession) ID() string {
	return s.id
}

func (s *HeartsSession) Seats() []SeatInfo {
	out := make([]SeatInfo, len(s.info))
	copy(out, s.info)
	return out
}

func (s *HeartsSession) View(viewerID string) (hearts.View, error) {
	return s.request(&heartsIntent{kind: intentView, playerID: viewerID})
}

func (s *HeartsSession) SubmitPass(playerID string, passed []cards.Card) (hearts.View, error) {
	return s.request(&heartsIntent{kind: intentPass, playerID: playerID, cards: passed})
}

func (s *HeartsSession) PlayCard(playerID string, card cards.Card) (hearts.View, error) {
	return s.request(&heartsIntent{kind: intentPlay, playerID: playerID, card: card})
}

// NextRound deals the next round after a round has been scored.
func (s *HeartsSession) NextRound(viewerID string) (hearts.View, error) {
	return s.request(&heartsIntent{kind: intentNextRound, playerID: viewerID})
}

// Close stops the session goroutine. Pending timers and bot decisions are dropped.
func (s *HeartsSession) Close() {
	s.closeOnce.Do(func() {
		close(s.end)
		s.cancel()
		s.sink.Publish(newEvent(s.id, GameHearts, EventClosed))
		s.logger.Info().Msg("Session closed")
	})
}

func (s *HeartsSession) request(intent *heartsIntent) (hearts.View, error) {
	intent.reply = make(chan heartsReply, 1)
	select {
	case s.intents <- intent:
	case <-s.end:
		return hearts.View{}, &SessionClosedError{SessionID: s.id}
	}
	select {
	case r := <-intent.reply:
		return r.view, r.err
	case <-s.end:
		return hearts.View{}, &SessionClosedError{SessionID: s.id}
	}
}

func (s *HeartsSession) post(intent *heartsIntent) {
	select {
	case s.intents <- intent:
	case <-s.end:
	}
}

func (s *HeartsSession) schedule(delay time.Duration, intent *heartsIntent) {
	time.AfterFunc(delay, func() { s.post(intent) })
}

func (s *HeartsSession) run() {
	s.advance()
	for {
		select {
		case <-s.end:
			return
		case intent := <-s.intents:
			s.handle(intent)
		}
	}
}

func (s *HeartsSession) handle(intent *heartsIntent) {
	var err error
	switch intent.kind {
	case intentView:
	case intentPass:
		if err = s.humanSeat(intent.playerID); err == nil {
			err = s.submitPass(intent.playerID, intent.cards)
		}
	case intentPlay:
		if err = s.humanSeat(intent.playerID); err == nil {
			err = s.playCard(intent.playerID, intent.card)
		}
	case intentNextRound:
		if !s.game.NextRound() {
			err = &hearts.PhaseError{Op: "start the next round", Phase: s.game.Phase()}
		} else {
			s.logger.Info().Int(logging.RoundNumKey, s.game.RoundNumber()).Msg("Next round dealt")
		}
	case intentBotDecision:
		s.botPending = false
		s.applyBotDecision(intent)
	case intentResolve:
		s.resolvePending = false
		s.resolve()
	}
	if intent.kind != intentView {
		s.advance()
	}
	if intent.reply != nil {
		intent.reply <- heartsReply{view: s.game.View(intent.playerID), err: err}
	}
}

func (s *HeartsSession) humanSeat(playerID string) error {
	seat := s.game.SeatOf(playerID)
	if seat >= 0 && bot.IsAutomated(s.seats[seat]) {
		return &SeatNotHumanError{PlayerID: playerID}
	}
	return nil
}

// advance schedules whatever the game is waiting for that is not a human command.
func (s *HeartsSession) advance() {
	switch s.game.Phase() {
	case hearts.PhasePassing:
		s.autoPass()
		if s.game.Phase() == hearts.PhasePlaying {
			s.advance()
		}
	case hearts.PhasePlaying:
		if s.game.IsTrickFull() {
			if !s.resolvePending {
				s.resolvePending = true
				s.schedule(s.delays.resolveTrick(), &heartsIntent{kind: intentResolve})
			}
			return
		}
		seat := s.game.CurrentSeat()
		if bot.IsAutomated(s.seats[seat]) && !s.botPending {
			s.scheduleBot(seat)
		}
	}
}

func (s *HeartsSession) autoPass() {
	for seat, policy := range s.seats {
		player := s.game.Players[seat]
		if !bot.IsAutomated(policy) || s.game.HasPassed(player.ID) {
			continue
		}
		hand := append([]cards.Card{}, player.Hand...)
		passed, err := policy.ChoosePass(s.ctx, hand)
		if err != nil {
			s.logger.Warn().Err(err).Str(logging.PlayerIDKey, player.ID).Msg("Pass selection failed. Using the heuristic")
			passed, _ = s.fallback.ChoosePass(s.ctx, hand)
		}
		if err := s.submitPass(player.ID, passed); err != nil {
			s.logger.Error().Err(err).Str(logging.PlayerIDKey, player.ID).Msg("Bot pass rejected")
			return
		}
		if s.game.Phase() != hearts.PhasePassing {
			return
		}
	}
}

func (s *HeartsSession) submitPass(playerID string, passed []cards.Card) error {
	if err := s.game.SubmitPass(playerID, passed); err != nil {
		util.Metrics.MoveRejected(GameHearts)
		return err
	}
	util.Metrics.MoveApplied(GameHearts)
	event := newEvent(s.id, GameHearts, EventPass)
	event.PlayerID = playerID
	s.sink.Publish(event)
	return nil
}

func (s *HeartsSession) playCard(playerID string, card cards.Card) error {
	if err := s.game.PlayCard(playerID, card); err != nil {
		util.Metrics.MoveRejected(GameHearts)
		s.logger.Debug().Err(err).Str(logging.PlayerIDKey, playerID).Msg("Play rejected")
		return err
	}
	util.Metrics.MoveApplied(GameHearts)
	card.FaceUp = true
	event := newEvent(s.id, GameHearts, EventPlay)
	event.PlayerID = playerID
	event.Card = &card
	s.sink.Publish(event)
	return nil
}

func (s *HeartsSession) turnToken() turnToken {
	plays := -1
	if trick := s.game.CurrentTrick(); trick != nil {
		plays = trick.Len()
	}
	return turnToken{
		round: s.game.RoundNumber(),
		trick: s.game.TrickNumber(),
		plays: plays,
		seat:  s.game.CurrentSeat(),
	}
}

func (s *HeartsSession) scheduleBot(seat int) {
	s.botPending = true
	player := s.game.Players[seat]
	policy := s.seats[seat]
	view := s.game.View(player.ID)
	legal := s.game.LegalMoves(player.ID)
	token := s.turnToken()
	think := s.delays.aiThink()

	go func() {
		timer := time.NewTimer(think)
		select {
		case <-timer.C:
		case <-s.end:
			timer.Stop()
			return
		}
		card, err := policy.ChoosePlay(s.ctx, &view, legal)
		s.post(&heartsIntent{
			kind:     intentBotDecision,
			playerID: player.ID,
			card:     card,
			err:      err,
			turn:     token,
		})
	}()
}

// applyBotDecision plays the bot's card. A failed or illegal decision is replaced by the
// heuristic choice for that turn.
func (s *HeartsSession) applyBotDecision(intent *heartsIntent) {
	if intent.turn != s.turnToken() {
		s.logger.Warn().Str(logging.PlayerIDKey, intent.playerID).Msg("Ignoring stale bot decision")
		return
	}
	card := intent.card
	if intent.err != nil || !s.game.IsValidMove(intent.playerID, card) {
		seat := s.game.SeatOf(intent.playerID)
		if s.seats[seat].Kind() == bot.KindRemote {
			util.Metrics.RemoteBotFailure()
		}
		s.logger.Warn().
			Err(intent.err).
			Str(logging.PlayerIDKey, intent.playerID).
			Msgf("Bot decision %s rejected. Using the heuristic", card)
		view := s.game.View(intent.playerID)
		fallback, err := s.fallback.ChoosePlay(s.ctx, &view, s.game.LegalMoves(intent.playerID))
		if err != nil {
			s.logger.Error().Err(err).Str(logging.PlayerIDKey, intent.playerID).Msg("No move for bot")
			return
		}
		card = fallback
	}
	if err := s.playCard(intent.playerID, card); err != nil {
		s.logger.Error().Err(err).Str(logging.PlayerIDKey, intent.playerID).Msg("Bot play rejected")
	}
}

func (s *HeartsSession) resolve() {
	trickNum := s.game.TrickNumber()
	if !s.game.ResolveTrick() {
		return
	}
	last := s.game.LastTrick()
	event := newEvent(s.id, GameHearts, EventTrick)
	event.PlayerID = last.WinnerID
	event.Data = last
	s.sink.Publish(event)
	s.logger.Debug().
		Int(logging.RoundNumKey, s.game.RoundNumber()).
		Int(logging.TrickNumKey, trickNum).
		Str(logging.PlayerIDKey, last.WinnerID).
		Msgf("Trick taken for %d points", last.Points)

	phase := s.game.Phase()
	if phase != hearts.PhaseScoring && phase != hearts.PhaseEnded {
		return
	}
	util.Metrics.RoundScored()
	round := newEvent(s.id, GameHearts, EventRound)
	round.Data = s.game.LastRoundResults()
	s.sink.Publish(round)

	if phase == hearts.PhaseEnded && !s.resultSent {
		s.resultSent = true
		result := s.result()
		over := newEvent(s.id, GameHearts, EventGameOver)
		over.Data = result
		s.sink.Publish(over)
		s.logger.Info().Strs("winners", result.Winners).Msg("Game over")
		if s.onEnd != nil {
			s.onEnd(result)
		}
	}
}

func (s *HeartsSession) result() *caches.GameResult {
	result := &caches.GameResult{
		SessionID: s.id,
		Rounds:    s.game.RoundNumber(),
		Players:   make([]caches.PlayerResult, 0, len(s.game.Players)),
		Winners:   make([]string, 0, 1),
		EndedAt:   time.Now().UTC(),
	}
	for _, p := range s.game.Players {
		result.Players = append(result.Players, caches.PlayerResult{ID: p.ID, Name: p.Name, Score: p.Score})
	}
	for _, w := range s.game.Winners() {
		result.Winners = append(result.Winners, w.ID)
	}
	return result
}
