package nats

import (
	jsoniter "github.com/json-iterator/go"
	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"voyager.com/cardtable/session"
)

var publisherLogger = log.With().Str("logger_name", "nats::publisher").Logger()

// EventPublisher sends session events to NATS, one subject per session. It is a one way
// feed; nothing is read back.
type EventPublisher struct {
	nc *natsgo.Conn
}

func NewEventPublisher(natsURL string) (*EventPublisher, error) {
	nc, err := natsgo.Connect(natsURL, natsgo.Name("cardtable"))
	if err != nil {
		return nil, errors.Wrapf(err, "Error connecting to NATS server [%s]", natsURL)
	}
	publisherLogger.Info().Msgf("Connected to NATS server %s. Publishing session events on %s", nc.ConnectedUrl(), GetAllEventsSubject())
	return &EventPublisher{nc: nc}, nil
}

func encodeEvent(event *session.Event) (string, []byte, error) {
	data, err := jsoniter.Marshal(event)
	if err != nil {
		return "", nil, errors.Wrap(err, "Unable to encode session event")
	}
	return GetSessionEventSubject(event.SessionID), data, nil
}

func (p *EventPublisher) Publish(event *session.Event) {
	subject, data, err := encodeEvent(event)
	if err != nil {
		publisherLogger.Error().Err(err).Msg("Dropping event")
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		publisherLogger.Error().Err(err).Str("subject", subject).Msg("Unable to publish event")
	}
}

func (p *EventPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		publisherLogger.Warn().Err(err).Msg("Error draining NATS connection")
	}
}
