package bot

import (
	"context"

	"github.com/pkg/errors"
	"voyager.com/cardtable/cards"
	"voyager.com/cardtable/hearts"
)

type Kind string

const (
	KindHuman     Kind = "human"
	KindHeuristic Kind = "heuristic"
	KindRemote    Kind = "remote"
)

// ErrHumanSeat is returned when a human seat is asked to decide. Human decisions arrive
// as commands from the API.
var ErrHumanSeat = errors.New("Human seat decisions come from the player")

//
// Policy decides for one Hearts seat. The set of policies is closed: Human, Heuristic
// and Remote, chosen when the seat is created.
//
type Policy interface {
	Kind() Kind
	ChoosePass(ctx context.Context, hand []cards.Card) ([]cards.Card, error)
	ChoosePlay(ctx context.Context, view *hearts.View, legal []cards.Card) (cards.Card, error)

	seatPolicy()
}

// Human is a seat whose moves arrive as external commands.
type Human struct{}

func (Human) Kind() Kind { return KindHuman }

func (Human) ChoosePass(ctx context.Context, hand []cards.Card) ([]cards.Card, error) {
	return nil, ErrHumanSeat
}

func (Human) ChoosePlay(ctx context.Context, view *hearts.View, legal []cards.Card) (cards.Card, error) {
	return cards.Card{}, ErrHumanSeat
}

func (Human) seatPolicy()      {}
func (*Heuristic) seatPolicy() {}
func (*Remote) seatPolicy()    {}

// IsAutomated reports whether the seat decides on its own.
func IsAutomated(p Policy) bool {
	return p != nil && p.Kind() != KindHuman
}
