package gamescript

import (
	"fmt"
	"io/ioutil"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"voyager.com/cardtable/cards"
	"voyager.com/cardtable/hearts"
)

// Script contains game script YAML content. A script plays one Hearts game round by
// round and checks the outcome against the expectations it carries.
type Script struct {
	Name    string   `yaml:"name"`
	Seed    int64    `yaml:"seed"`
	Players []string `yaml:"players"`
	Rounds  []Round  `yaml:"rounds"`
	// seats expected to win, checked when the game ends
	Winners []int `yaml:"winners"`
}

// Round describes one deal. Hands and passes are listed by seat. Without hands the
// seeded deck deals the round.
type Round struct {
	PassDirection hearts.PassDirection `yaml:"pass-direction"`
	Hands         [][]string           `yaml:"hands"`
	Passes        [][]string           `yaml:"passes"`
	Tricks        []Trick              `yaml:"tricks"`
	PlayOut       bool                 `yaml:"play-out"`
	Result        *RoundResult         `yaml:"result"`
}

// Trick lists the cards in play order, starting with the leader.
type Trick struct {
	Plays  []string `yaml:"plays"`
	Winner *int     `yaml:"winner"`
	Points *int     `yaml:"points"`
}

type RoundResult struct {
	RoundPoints []int `yaml:"round-points"`
	Scores      []int `yaml:"scores"`
}

func ReadScript(fileName string) (*Script, error) {
	bytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading game script file [%s]", fileName)
	}

	var script Script
	err = yaml.Unmarshal(bytes, &script)
	if err != nil {
		return nil, errors.Wrapf(err, "Error parsing YAML file [%s]", fileName)
	}

	err = script.Validate()
	if err != nil {
		return nil, errors.Wrapf(err, "Error validating script [%s]", fileName)
	}

	return &script, nil
}

func (s *Script) Validate() error {
	if len(s.Rounds) == 0 {
		return fmt.Errorf("Script has no rounds")
	}
	if len(s.Players) != 0 && len(s.Players) != hearts.NumPlayers {
		return fmt.Errorf("Expected %d players, got %d", hearts.NumPlayers, len(s.Players))
	}
	if err := validSeats(s.Winners, "winners"); err != nil {
		return err
	}

	for i, round := range s.Rounds {
		roundNum := i + 1
		switch round.PassDirection {
		case "", hearts.PassLeft, hearts.PassRight, hearts.PassAcross, hearts.PassNone:
		default:
			return fmt.Errorf("Invalid pass-direction [%s] in round %d", round.PassDirection, roundNum)
		}

		if len(round.Hands) != 0 {
			if err := validateDeal(round.Hands); err != nil {
				return errors.Wrapf(err, "Round %d hands", roundNum)
			}
		}

		if len(round.Passes) != 0 {
			if len(round.Passes) != hearts.NumPlayers {
				return fmt.Errorf("Round %d has %d passes, expected %d", roundNum, len(round.Passes), hearts.NumPlayers)
			}
			for seat, pass := range round.Passes {
				if len(pass) != hearts.PassSize {
					return fmt.Errorf("Seat %d passes %d cards in round %d", seat, len(pass), roundNum)
				}
				if _, err := cards.ParseCards(pass); err != nil {
					return errors.Wrapf(err, "Round %d passes", roundNum)
				}
			}
		}

		for j, trick := range round.Tricks {
			trickNum := j + 1
			if len(trick.Plays) > hearts.NumPlayers {
				return fmt.Errorf("Round %d trick %d has %d plays", roundNum, trickNum, len(trick.Plays))
			}
			if _, err := cards.ParseCards(trick.Plays); err != nil {
				return errors.Wrapf(err, "Round %d trick %d", roundNum, trickNum)
			}
			if trick.Winner != nil {
				if err := validSeats([]int{*trick.Winner}, "winner"); err != nil {
					return errors.Wrapf(err, "Round %d trick %d", roundNum, trickNum)
				}
			}
		}

		if round.Result != nil {
			if n := len(round.Result.RoundPoints); n != 0 && n != hearts.NumPlayers {
				return fmt.Errorf("Round %d round-points has %d entries", roundNum, n)
			}
			if n := len(round.Result.Scores); n != 0 && n != hearts.NumPlayers {
				return fmt.Errorf("Round %d scores has %d entries", roundNum, n)
			}
		}
	}
	return nil
}

// validateDeal checks that the hands are four hands of 13 making up a full deck.
func validateDeal(hands [][]string) error {
	if len(hands) != hearts.NumPlayers {
		return fmt.Errorf("Expected %d hands, got %d", hearts.NumPlayers, len(hands))
	}
	dealt := mapset.NewSet()
	for seat, hand := range hands {
		if len(hand) != hearts.HandSize {
			return fmt.Errorf("Seat %d has %d cards", seat, len(hand))
		}
		for _, s := range hand {
			c, err := cards.NewCard(s)
			if err != nil {
				return err
			}
			if dealt.Contains(c) {
				return fmt.Errorf("Duplicate card [%s] at seat %d", s, seat)
			}
			dealt.Add(c)
		}
	}
	if dealt.Cardinality() != hearts.NumPlayers*hearts.HandSize {
		return fmt.Errorf("Deal has %d distinct cards", dealt.Cardinality())
	}
	return nil
}

func validSeats(seats []int, what string) error {
	for _, seat := range seats {
		if seat < 0 || seat >= hearts.NumPlayers {
			return fmt.Errorf("Invalid seat [%d] in %s", seat, what)
		}
	}
	return nil
}
