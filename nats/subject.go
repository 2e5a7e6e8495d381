package nats

import (
	"fmt"
)

func GetSessionEventSubject(sessionID string) string {
	return fmt.Sprintf("cardtable.%s.events", sessionID)
}

// GetAllEventsSubject matches the events of every session.
func GetAllEventsSubject() string {
	return "cardtable.*.events"
}
