package session

import (
	"fmt"
)

type SessionClosedError struct {
	SessionID string
}

func (e *SessionClosedError) Error() string {
	return fmt.Sprintf("Session %s is closed", e.SessionID)
}

// SeatNotHumanError is returned when a command arrives for a seat played by a bot.
type SeatNotHumanError struct {
	PlayerID string
}

func (e *SeatNotHumanError) Error() string {
	return fmt.Sprintf("Player %s is not a human seat", e.PlayerID)
}

// IllegalMoveError is returned for a solitaire move the game refused.
type IllegalMoveError struct {
	Move string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("Move %s is not allowed", e.Move)
}

type InvalidConfigError struct {
	Msg string
}

func (e *InvalidConfigError) Error() string {
	return e.Msg
}
