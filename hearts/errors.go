package hearts

import (
	"fmt"

	"voyager.com/cardtable/cards"
)

// InvalidMoveError is returned by PlayCard for a card that IsValidMove rejects.
type InvalidMoveError struct {
	PlayerID string
	Card     cards.Card
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("Invalid move: player %s cannot play %s", e.PlayerID, e.Card)
}

type NotYourTurnError struct {
	PlayerID string
	Current  string
}

func (e *NotYourTurnError) Error() string {
	return fmt.Sprintf("Not player %s's turn. Current player: %s", e.PlayerID, e.Current)
}

type InvalidPassError struct {
	PlayerID string
	Reason   string
}

func (e *InvalidPassError) Error() string {
	return fmt.Sprintf("Invalid pass from player %s: %s", e.PlayerID, e.Reason)
}

// PhaseError is returned when an operation is attempted in the wrong phase.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("Cannot %s in phase %s", e.Op, e.Phase)
}
