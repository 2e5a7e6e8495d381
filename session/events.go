package session

import (
	"time"

	"voyager.com/cardtable/cards"
)

type EventType string

const (
	EventCreated       EventType = "created"
	EventPass          EventType = "pass"
	EventPlay          EventType = "play"
	EventTrick         EventType = "trick"
	EventRound         EventType = "round"
	EventGameOver      EventType = "game_over"
	EventSolitaireMove EventType = "solitaire_move"
	EventClosed        EventType = "closed"
)

const (
	GameHearts    = "hearts"
	GameSolitaire = "solitaire"
)

type Event struct {
	SessionID string      `json:"sessionId"`
	Game      string      `json:"game"`
	Type      EventType   `json:"type"`
	PlayerID  string      `json:"playerId,omitempty"`
	Card      *cards.Card `json:"card,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// EventSink receives session events. Publish is called from session goroutines and must
// not block for long.
type EventSink interface {
	Publish(event *Event)
}

type NopSink struct{}

func (NopSink) Publish(event *Event) {}

func newEvent(sessionID string, game string, eventType EventType) *Event {
	return &Event{
		SessionID: sessionID,
		Game:      game,
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}
