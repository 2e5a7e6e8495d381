package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"voyager.com/cardtable/bot"
	caches "voyager.com/cardtable/caching"
	"voyager.com/cardtable/logging"
	"voyager.com/cardtable/util"
)

var managerLogger = log.With().Str("logger_name", "session::manager").Logger()

// RemoteConfig locates the external decision service used by remote seats.
type RemoteConfig struct {
	URL      string
	Timeout  time.Duration
	Interval time.Duration
}

type HeartsSeatConfig struct {
	Name string   `json:"name"`
	Kind bot.Kind `json:"kind"`
}

type HeartsConfig struct {
	Seats []HeartsSeatConfig `json:"seats"`
	// Seed fixes the shuffle when non-zero.
	Seed int64 `json:"seed"`
}

// Manager keeps the active sessions and the results of finished Hearts games.
type Manager struct {
	sessions cmap.ConcurrentMap
	results  *caches.ResultCache
	delays   Delays
	sink     EventSink
	remote   RemoteConfig
}

func NewManager(delays Delays, sink EventSink, results *caches.ResultCache, remote RemoteConfig) *Manager {
	if sink == nil {
		sink = NopSink{}
	}
	return &Manager{
		sessions: cmap.New(),
		results:  results,
		delays:   delays,
		sink:     sink,
		remote:   remote,
	}
}

func (m *Manager) policyFor(ctx context.Context, kind bot.Kind) (bot.Policy, error) {
	switch kind {
	case bot.KindHuman:
		return bot.Human{}, nil
	case bot.KindHeuristic, "":
		return bot.NewHeuristic(), nil
	case bot.KindRemote:
		if m.remote.URL == "" {
			return nil, &InvalidConfigError{Msg: "Remote seats are disabled. No decision service is configured"}
		}
		remote := bot.NewRemote(m.remote.URL, m.remote.Timeout, m.remote.Interval)
		health, err := remote.Health(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "Remote seat is not available")
		}
		managerLogger.Info().Msgf("Decision service %s is up. Engine: %s", remote.URL(), health.Engine)
		return remote, nil
	}
	return nil, &InvalidConfigError{Msg: fmt.Sprintf("Unknown seat kind [%s]", kind)}
}

// NewHeartsSession creates and registers a Hearts session. Seats missing from the config
// are heuristic bots.
func (m *Manager) NewHeartsSession(ctx context.Context, config HeartsConfig) (*HeartsSession, error) {
	if len(config.Seats) > 4 {
		return nil, &InvalidConfigError{Msg: fmt.Sprintf("Too many seats: %d", len(config.Seats))}
	}
	seats := make([]Seat, 4)
	for i := range seats {
		seat := HeartsSeatConfig{Kind: bot.KindHeuristic}
		if i < len(config.Seats) {
			seat = config.Seats[i]
		}
		policy, err := m.policyFor(ctx, seat.Kind)
		if err != nil {
			return nil, err
		}
		seats[i] = Seat{ID: fmt.Sprintf("p%d", i), Name: seat.Name, Policy: policy}
	}

	var source rand.Source
	if config.Seed != 0 {
		source = rand.NewSource(config.Seed)
	}
	id := uuid.NewString()
	s, err := NewHeartsSession(id, seats, source, m.delays, m.sink, m.gameEnded)
	if err != nil {
		return nil, err
	}
	m.add(id, s)
	return s, nil
}

// NewSolitaireSession creates and registers a Solitaire session. A non-zero seed makes
// every deal of the session repeatable.
func (m *Manager) NewSolitaireSession(seed int64) *SolitaireSession {
	var newSource func() rand.Source
	if seed != 0 {
		seeder := rand.New(rand.NewSource(seed))
		newSource = func() rand.Source { return rand.NewSource(seeder.Int63()) }
	}
	id := uuid.NewString()
	s := NewSolitaireSession(id, newSource, m.sink)
	m.add(id, s)
	return s
}

func (m *Manager) add(id string, s interface{}) {
	m.sessions.Set(id, s)
	util.Metrics.SetActiveSessions(m.sessions.Count())
	managerLogger.Info().Str(logging.SessionIDKey, id).Msgf("Session created. Active sessions: %d", m.sessions.Count())
}

func (m *Manager) HeartsSession(id string) (*HeartsSession, bool) {
	v, ok := m.sessions.Get(id)
	if !ok {
		return nil, false
	}
	s, ok := v.(*HeartsSession)
	return s, ok
}

func (m *Manager) SolitaireSession(id string) (*SolitaireSession, bool) {
	v, ok := m.sessions.Get(id)
	if !ok {
		return nil, false
	}
	s, ok := v.(*SolitaireSession)
	return s, ok
}

// CloseSession stops and unregisters a session of any game.
func (m *Manager) CloseSession(id string) bool {
	v, ok := m.sessions.Pop(id)
	if !ok {
		return false
	}
	switch s := v.(type) {
	case *HeartsSession:
		s.Close()
	case *SolitaireSession:
		s.Close()
	}
	util.Metrics.SetActiveSessions(m.sessions.Count())
	return true
}

func (m *Manager) Count() int {
	return m.sessions.Count()
}

// Result returns the summary of a finished Hearts game, if it is still cached.
func (m *Manager) Result(id string) (*caches.GameResult, bool) {
	if m.results == nil {
		return nil, false
	}
	return m.results.Get(id)
}

func (m *Manager) Shutdown() {
	for id := range m.sessions.Items() {
		m.CloseSession(id)
	}
}

func (m *Manager) gameEnded(result *caches.GameResult) {
	if m.results == nil {
		return
	}
	if err := m.results.Add(result); err != nil {
		managerLogger.Error().Err(err).Msg("Unable to keep game result")
	}
}
