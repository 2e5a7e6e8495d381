package nats

import (
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyager.com/cardtable/cards"
	"voyager.com/cardtable/session"
)

func TestEncodeEvent(t *testing.T) {
	card := cards.MustCard("Qs")
	event := &session.Event{
		SessionID: "abc",
		Game:      session.GameHearts,
		Type:      session.EventPlay,
		PlayerID:  "p2",
		Card:      &card,
		Timestamp: time.Date(2021, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	subject, data, err := encodeEvent(event)
	require.NoError(t, err)
	assert.Equal(t, "cardtable.abc.events", subject)

	var decoded map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(data, &decoded))
	assert.Equal(t, "play", decoded["type"])
	assert.Equal(t, "p2", decoded["playerId"])
	assert.Equal(t, map[string]interface{}{"suit": "spades", "rank": "Q", "faceUp": false}, decoded["card"])
}

func TestConnectFailure(t *testing.T) {
	_, err := NewEventPublisher("nats://127.0.0.1:1")
	assert.Error(t, err)
}
