package gamescript

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"voyager.com/cardtable/bot"
	"voyager.com/cardtable/cards"
	"voyager.com/cardtable/game"
	"voyager.com/cardtable/hearts"
	"voyager.com/cardtable/logging"
)

var runnerLogger = log.With().Str("logger_name", "gamescript::runner").Logger()

// MismatchError is an expectation in the script that the game did not meet.
type MismatchError struct {
	Round    int
	Trick    int
	What     string
	Expected interface{}
	Actual   interface{}
}

func (e *MismatchError) Error() string {
	where := fmt.Sprintf("round %d", e.Round)
	if e.Trick > 0 {
		where = fmt.Sprintf("%s trick %d", where, e.Trick)
	}
	return fmt.Sprintf("Unexpected %s in %s. Expected: %v, actual: %v", e.What, where, e.Expected, e.Actual)
}

// Run plays the script on a new game and returns the game in its final state.
func Run(script *Script) (*hearts.Game, error) {
	players := make([]*game.Player, hearts.NumPlayers)
	for i := range players {
		name := fmt.Sprintf("Player %d", i)
		if len(script.Players) == hearts.NumPlayers {
			name = script.Players[i]
		}
		players[i] = game.NewPlayer(fmt.Sprintf("p%d", i), name)
	}
	seed := script.Seed
	if seed == 0 {
		seed = 1
	}
	g, err := hearts.New(players, rand.NewSource(seed))
	if err != nil {
		return nil, err
	}

	heuristic := bot.NewHeuristic()
	for i, round := range script.Rounds {
		roundNum := i + 1
		if round.PassDirection != "" {
			g.OverridePassDirection(round.PassDirection)
		}
		if i == 0 {
			if err := g.Start(); err != nil {
				return g, err
			}
		} else if !g.NextRound() {
			return g, errors.Errorf("Round %d cannot be dealt in phase %s", roundNum, g.Phase())
		}
		if err := runRound(g, heuristic, round, roundNum); err != nil {
			return g, err
		}
	}

	if len(script.Winners) > 0 {
		if g.Phase() != hearts.PhaseEnded {
			return g, &MismatchError{Round: len(script.Rounds), What: "phase", Expected: hearts.PhaseEnded, Actual: g.Phase()}
		}
		winners := make([]int, 0)
		for _, p := range g.Winners() {
			winners = append(winners, g.SeatOf(p.ID))
		}
		expected := append([]int{}, script.Winners...)
		sort.Ints(expected)
		if fmt.Sprint(expected) != fmt.Sprint(winners) {
			return g, &MismatchError{Round: len(script.Rounds), What: "winners", Expected: expected, Actual: winners}
		}
	}
	return g, nil
}

func runRound(g *hearts.Game, heuristic *bot.Heuristic, round Round, roundNum int) error {
	ctx := context.Background()
	logger := runnerLogger.With().Int(logging.RoundNumKey, roundNum).Logger()

	if len(round.Hands) > 0 {
		hands := make([][]cards.Card, len(round.Hands))
		for seat, hand := range round.Hands {
			parsed, err := cards.ParseCards(hand)
			if err != nil {
				return err
			}
			hands[seat] = parsed
		}
		if err := g.SetupHands(hands); err != nil {
			return errors.Wrapf(err, "Round %d", roundNum)
		}
	}

	if g.Phase() == hearts.PhasePassing {
		for seat, p := range g.Players {
			var passed []cards.Card
			var err error
			if len(round.Passes) > 0 {
				passed, err = cards.ParseCards(round.Passes[seat])
			} else {
				passed, err = heuristic.ChoosePass(ctx, append([]cards.Card{}, p.Hand...))
			}
			if err != nil {
				return err
			}
			if err := g.SubmitPass(p.ID, passed); err != nil {
				return errors.Wrapf(err, "Round %d pass from seat %d", roundNum, seat)
			}
		}
		logger.Debug().Msgf("Passed %s", g.PassDirection())
	}

	for i, trick := range round.Tricks {
		trickNum := i + 1
		plays, err := cards.ParseCards(trick.Plays)
		if err != nil {
			return err
		}
		for _, c := range plays {
			p := g.CurrentPlayer()
			if err := g.PlayCard(p.ID, c); err != nil {
				return errors.Wrapf(err, "Round %d trick %d", roundNum, trickNum)
			}
		}
		if !g.IsTrickFull() {
			if trick.Winner != nil || trick.Points != nil {
				return errors.Errorf("Round %d trick %d is not complete", roundNum, trickNum)
			}
			continue
		}
		g.ResolveTrick()
		result := g.LastTrick()
		if trick.Winner != nil && g.SeatOf(result.WinnerID) != *trick.Winner {
			return &MismatchError{Round: roundNum, Trick: trickNum, What: "trick winner", Expected: *trick.Winner, Actual: g.SeatOf(result.WinnerID)}
		}
		if trick.Points != nil && result.Points != *trick.Points {
			return &MismatchError{Round: roundNum, Trick: trickNum, What: "trick points", Expected: *trick.Points, Actual: result.Points}
		}
	}

	if round.PlayOut {
		if err := playOut(ctx, g, heuristic); err != nil {
			return errors.Wrapf(err, "Round %d play-out", roundNum)
		}
	}

	if round.Result == nil {
		return nil
	}
	if g.Phase() != hearts.PhaseScoring && g.Phase() != hearts.PhaseEnded {
		return &MismatchError{Round: roundNum, What: "phase", Expected: hearts.PhaseScoring, Actual: g.Phase()}
	}
	for seat, p := range g.Players {
		if len(round.Result.RoundPoints) > 0 && p.RoundPoints != round.Result.RoundPoints[seat] {
			return &MismatchError{Round: roundNum, What: fmt.Sprintf("round points for seat %d", seat), Expected: round.Result.RoundPoints[seat], Actual: p.RoundPoints}
		}
		if len(round.Result.Scores) > 0 && p.Score != round.Result.Scores[seat] {
			return &MismatchError{Round: roundNum, What: fmt.Sprintf("score for seat %d", seat), Expected: round.Result.Scores[seat], Actual: p.Score}
		}
	}
	logger.Debug().Interface("results", g.LastRoundResults()).Msg("Round verified")
	return nil
}

// playOut finishes the round with every seat played by the heuristic bot.
func playOut(ctx context.Context, g *hearts.Game, heuristic *bot.Heuristic) error {
	for g.Phase() == hearts.PhasePlaying {
		if g.IsTrickFull() {
			g.ResolveTrick()
			continue
		}
		p := g.CurrentPlayer()
		view := g.View(p.ID)
		card, err := heuristic.ChoosePlay(ctx, &view, g.LegalMoves(p.ID))
		if err != nil {
			return err
		}
		if err := g.PlayCard(p.ID, card); err != nil {
			return err
		}
	}
	return nil
}

// RunScripts runs a script file, or every .yaml file under a directory, and reports
// the results. testName restricts the run to files whose name contains it.
func RunScripts(fileOrDir string, testName string) error {
	info, err := os.Stat(fileOrDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist", fileOrDir)
	}
	if err != nil {
		return err
	}

	files := []string{fileOrDir}
	if info.IsDir() {
		files = files[:0]
		err = filepath.Walk(fileOrDir, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && strings.HasSuffix(fi.Name(), ".yaml") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "Failed to get game script file(s) from dir: %s", fileOrDir)
		}
	}

	failed := make([]string, 0)
	count := 0
	for _, file := range files {
		if testName != "" && !strings.Contains(filepath.Base(file), testName) {
			continue
		}
		count++
		fmt.Printf("----------------------------------------------\n")
		script, err := ReadScript(file)
		if err == nil {
			_, err = Run(script)
		}
		if err != nil {
			runnerLogger.Error().Err(err).Msgf("Script %s failed", file)
			fmt.Printf("FAILED: %s\n", file)
			failed = append(failed, file)
		} else {
			fmt.Printf("PASSED: %s %s\n", file, script.Name)
		}
		fmt.Printf("----------------------------------------------\n")
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d scripts failed: %s", len(failed), count, strings.Join(failed, ", "))
	}
	fmt.Printf("All %d scripts passed\n", count)
	return nil
}
