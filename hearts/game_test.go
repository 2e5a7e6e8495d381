package hearts

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyager.com/cardtable/cards"
	"voyager.com/cardtable/game"
)

func newGame(t *testing.T, seed int64) *Game {
	players := []*game.Player{
		game.NewPlayer("p0", "North"),
		game.NewPlayer("p1", "East"),
		game.NewPlayer("p2", "South"),
		game.NewPlayer("p3", "West"),
	}
	g, err := New(players, rand.NewSource(seed))
	require.NoError(t, err)
	return g
}

func mustCards(strs ...string) []cards.Card {
	cs, err := cards.ParseCards(strs)
	if err != nil {
		panic(err)
	}
	return cs
}

// playingGame starts a round with no passing and replaces the dealt hands.
func playingGame(t *testing.T, hands [NumPlayers][]string) *Game {
	g := newGame(t, 1)
	g.OverridePassDirection(PassNone)
	require.NoError(t, g.Start())
	require.Equal(t, PhasePlaying, g.Phase())
	for i, p := range g.Players {
		p.Hand = mustCards(hands[i]...)
	}
	g.determineStarter()
	return g
}

func play(t *testing.T, g *Game, playerID string, card string) {
	require.NoError(t, g.PlayCard(playerID, cards.MustCard(card)), "%s plays %s", playerID, card)
}

func TestNewNeedsFourPlayers(t *testing.T) {
	_, err := New([]*game.Player{game.NewPlayer("a", "A")}, nil)
	assert.Error(t, err)

	dup := []*game.Player{
		game.NewPlayer("a", "A"), game.NewPlayer("b", "B"),
		game.NewPlayer("c", "C"), game.NewPlayer("a", "D"),
	}
	_, err = New(dup, nil)
	assert.Error(t, err)
}

func TestStart(t *testing.T) {
	g := newGame(t, 2)
	assert.Equal(t, PhaseWaiting, g.Phase())
	require.NoError(t, g.Start())

	assert.Equal(t, PhasePassing, g.Phase())
	assert.Equal(t, PassLeft, g.PassDirection())
	assert.Equal(t, 1, g.RoundNumber())
	assert.Equal(t, game.StatusPlaying, g.Status)
	seen := make(map[string]bool)
	for _, p := range g.Players {
		assert.Equal(t, HandSize, len(p.Hand))
		for _, c := range p.Hand {
			seen[c.String()] = true
		}
	}
	assert.Equal(t, cards.DeckSize, len(seen))

	var phaseErr *PhaseError
	require.ErrorAs(t, g.Start(), &phaseErr)
}

func TestPassing(t *testing.T) {
	g := newGame(t, 3)
	require.NoError(t, g.Start())

	passed := make(map[string][]cards.Card)
	for i, p := range g.Players {
		assert.False(t, g.IsValidMove(p.ID, p.Hand[0]))
		passed[p.ID] = append([]cards.Card{}, p.Hand[:PassSize]...)
		require.NoError(t, g.SubmitPass(p.ID, passed[p.ID]))
		if i < NumPlayers-1 {
			assert.Equal(t, PhasePassing, g.Phase())
			assert.True(t, g.HasPassed(p.ID))
		}
	}

	assert.Equal(t, PhasePlaying, g.Phase())
	for seat, p := range g.Players {
		assert.Equal(t, HandSize, len(p.Hand))
		receiver := g.Players[PassTarget(seat, PassLeft)]
		for _, c := range passed[p.ID] {
			assert.True(t, receiver.HasCard(c), "%s passed %s to %s", p.ID, c, receiver.ID)
			assert.False(t, p.HasCard(c))
		}
	}
	assert.True(t, g.CurrentPlayer().HasCard(TwoOfClubs))
	assert.Equal(t, 1, g.TrickNumber())
}

func TestSubmitPassErrors(t *testing.T) {
	g := newGame(t, 4)
	var phaseErr *PhaseError
	require.ErrorAs(t, g.SubmitPass("p0", nil), &phaseErr)

	require.NoError(t, g.Start())
	hand := g.Players[0].Hand
	other := g.Players[1].Hand

	var passErr *InvalidPassError
	require.ErrorAs(t, g.SubmitPass("p0", hand[:2]), &passErr)
	require.ErrorAs(t, g.SubmitPass("p0", []cards.Card{hand[0], hand[0], hand[1]}), &passErr)
	require.ErrorAs(t, g.SubmitPass("p0", []cards.Card{hand[0], hand[1], other[0]}), &passErr)
	require.ErrorAs(t, g.SubmitPass("nobody", hand[:3]), &passErr)
	assert.False(t, g.HasPassed("p0"))

	// a second submission replaces the first
	require.NoError(t, g.SubmitPass("p0", hand[:3]))
	require.NoError(t, g.SubmitPass("p0", hand[3:6]))
	assert.Equal(t, PhasePassing, g.Phase())
}

func TestPassCycle(t *testing.T) {
	tests := []struct {
		seat      int
		direction PassDirection
		target    int
	}{
		{0, PassLeft, 1},
		{3, PassLeft, 0},
		{0, PassRight, 3},
		{2, PassRight, 1},
		{1, PassAcross, 3},
		{2, PassNone, 2},
	}
	for _, tt := range tests {
		if got := PassTarget(tt.seat, tt.direction); got != tt.target {
			t.Errorf("PassTarget(%d, %s) = %d; expected %d", tt.seat, tt.direction, got, tt.target)
		}
	}
}

func TestFirstLeadMustBeTwoOfClubs(t *testing.T) {
	g := playingGame(t, [NumPlayers][]string{
		{"2c", "5c", "Ad", "3h"},
		{"3c", "4d", "5h", "6s"},
		{"4c", "6d", "7h", "8s"},
		{"Ac", "Kd", "Kh", "Ks"},
	})
	require.Equal(t, "p0", g.CurrentPlayer().ID)
	assert.True(t, g.IsValidMove("p0", cards.MustCard("2c")))
	for _, s := range []string{"5c", "Ad", "3h"} {
		assert.False(t, g.IsValidMove("p0", cards.MustCard(s)), s)
	}
	assert.Equal(t, []string{"2c"}, cards.Strings(g.LegalMoves("p0")))

	var moveErr *InvalidMoveError
	require.ErrorAs(t, g.PlayCard("p0", cards.MustCard("Ad")), &moveErr)
	var turnErr *NotYourTurnError
	require.ErrorAs(t, g.PlayCard("p1", cards.MustCard("3c")), &turnErr)
}

func TestFollowSuit(t *testing.T) {
	g := playingGame(t, [NumPlayers][]string{
		{"2c", "5c", "Ad", "3h"},
		{"3c", "4d", "5h", "6s"},
		{"Qs", "6d", "7h", "8s"},
		{"Ah", "Kd", "Kh", "Ks"},
	})
	play(t, g, "p0", "2c")
	assert.True(t, g.IsValidMove("p1", cards.MustCard("3c")))
	assert.False(t, g.IsValidMove("p1", cards.MustCard("4d")))
	play(t, g, "p1", "3c")

	// no clubs: any non-point card, but no points on the first trick
	assert.True(t, g.IsValidMove("p2", cards.MustCard("6d")))
	assert.False(t, g.IsValidMove("p2", cards.MustCard("Qs")))
	assert.False(t, g.IsValidMove("p2", cards.MustCard("7h")))
	play(t, g, "p2", "6d")

	assert.False(t, g.IsValidMove("p3", cards.MustCard("Ah")))
	assert.True(t, g.IsValidMove("p3", cards.MustCard("Kd")))
}

func TestFirstTrickPointsWhenNothingElse(t *testing.T) {
	g := playingGame(t, [NumPlayers][]string{
		{"2c", "5c"},
		{"Qs", "5h"},
		{"4c", "6d"},
		{"Ac", "Kd"},
	})
	play(t, g, "p0", "2c")
	assert.True(t, g.IsValidMove("p1", cards.MustCard("Qs")))
	assert.True(t, g.IsValidMove("p1", cards.MustCard("5h")))
}

func TestHeartsCannotBeLedUntilBroken(t *testing.T) {
	g := playingGame(t, [NumPlayers][]string{
		{"2c", "5c", "3h"},
		{"3c", "4d", "5h"},
		{"4c", "6d", "7h"},
		{"Ac", "Kd", "Kh"},
	})
	play(t, g, "p0", "2c")
	play(t, g, "p1", "3c")
	play(t, g, "p2", "4c")
	play(t, g, "p3", "Ac")
	require.True(t, g.ResolveTrick())
	require.Equal(t, "p3", g.CurrentPlayer().ID)
	assert.Equal(t, 2, g.TrickNumber())

	assert.False(t, g.HeartsBroken())
	assert.False(t, g.IsValidMove("p3", cards.MustCard("Kh")))
	assert.True(t, g.IsValidMove("p3", cards.MustCard("Kd")))
}

func TestHeartsLeadWithOnlyHearts(t *testing.T) {
	g := playingGame(t, [NumPlayers][]string{
		{"2c", "5c"},
		{"3c", "4d"},
		{"4c", "6d"},
		{"Ac", "Kh"},
	})
	play(t, g, "p0", "2c")
	play(t, g, "p1", "3c")
	play(t, g, "p2", "4c")
	play(t, g, "p3", "Ac")
	require.True(t, g.ResolveTrick())
	assert.True(t, g.IsValidMove("p3", cards.MustCard("Kh")))
}

func TestPlayWaitsForResolve(t *testing.T) {
	g := playingGame(t, [NumPlayers][]string{
		{"2c", "5c"},
		{"3c", "4d"},
		{"4c", "6d"},
		{"Ac", "Kh"},
	})
	assert.False(t, g.ResolveTrick())
	play(t, g, "p0", "2c")
	play(t, g, "p1", "3c")
	play(t, g, "p2", "4c")
	assert.False(t, g.ResolveTrick())
	play(t, g, "p3", "Ac")

	assert.True(t, g.IsTrickFull())
	assert.Equal(t, "p3", g.CurrentPlayer().ID, "turn does not move on a full trick")
	assert.False(t, g.IsValidMove("p3", cards.MustCard("Kh")))
	assert.Empty(t, g.LegalMoves("p3"))
}

func TestRoundScoring(t *testing.T) {
	g := playingGame(t, [NumPlayers][]string{
		{"2c", "Qs"},
		{"3c", "2h"},
		{"4c", "3h"},
		{"Ac", "Kh"},
	})
	play(t, g, "p0", "2c")
	play(t, g, "p1", "3c")
	play(t, g, "p2", "4c")
	play(t, g, "p3", "Ac")
	require.True(t, g.ResolveTrick())
	assert.Equal(t, 0, g.Players[3].RoundPoints)

	play(t, g, "p3", "Kh")
	assert.True(t, g.HeartsBroken())
	play(t, g, "p0", "Qs")
	play(t, g, "p1", "2h")
	play(t, g, "p2", "3h")
	require.True(t, g.ResolveTrick())

	assert.Equal(t, PhaseScoring, g.Phase())
	assert.Nil(t, g.CurrentTrick())
	assert.Equal(t, &TrickResult{
		WinnerID: "p3",
		Cards:    []cards.Card{{Suit: cards.Hearts, Rank: cards.King, FaceUp: true}, {Suit: cards.Spades, Rank: cards.Queen, FaceUp: true}, {Suit: cards.Hearts, Rank: cards.Two, FaceUp: true}, {Suit: cards.Hearts, Rank: cards.Three, FaceUp: true}},
		Points:   16,
	}, g.LastTrick())
	assert.Equal(t, 16, g.Players[3].Score)
	expected := map[string]int{"p0": 0, "p1": 0, "p2": 0, "p3": 16}
	if !cmp.Equal(g.LastRoundResults(), expected) {
		t.Errorf("LastRoundResults() diff: %s", cmp.Diff(expected, g.LastRoundResults()))
	}
	assert.Equal(t, 8, len(g.TakenCards("p3")))
	assert.Empty(t, g.TakenCards("p0"))
}

func TestShootTheMoon(t *testing.T) {
	g := newGame(t, 5)
	scores := []int{10, 20, 30, 40}
	for i, p := range g.Players {
		p.Score = scores[i]
	}
	g.Players[2].RoundPoints = MoonPoints
	g.calculateFinalScores()

	assert.Equal(t, []int{36, 46, 30, 66}, []int{
		g.Players[0].Score, g.Players[1].Score, g.Players[2].Score, g.Players[3].Score,
	})
	assert.Equal(t, map[string]int{"p0": 26, "p1": 26, "p2": 0, "p3": 26}, g.LastRoundResults())
}

func TestRegularScoring(t *testing.T) {
	g := newGame(t, 5)
	points := []int{3, 13, 10, 0}
	for i, p := range g.Players {
		p.Score = 5
		p.RoundPoints = points[i]
	}
	g.calculateFinalScores()
	for i, p := range g.Players {
		assert.Equal(t, 5+points[i], p.Score)
		assert.Equal(t, points[i], g.LastRoundResults()[p.ID])
	}
}

func TestGameEnds(t *testing.T) {
	g := playingGame(t, [NumPlayers][]string{
		{"2c", "Qs"},
		{"3c", "2h"},
		{"4c", "3h"},
		{"Ac", "Kh"},
	})
	g.Players[3].Score = 90
	g.Players[1].Score = 40
	g.Players[2].Score = 40
	g.Players[0].Score = 60
	for _, step := range [][2]string{
		{"p0", "2c"}, {"p1", "3c"}, {"p2", "4c"}, {"p3", "Ac"},
	} {
		play(t, g, step[0], step[1])
	}
	require.True(t, g.ResolveTrick())
	for _, step := range [][2]string{
		{"p3", "Kh"}, {"p0", "Qs"}, {"p1", "2h"}, {"p2", "3h"},
	} {
		play(t, g, step[0], step[1])
	}
	require.True(t, g.ResolveTrick())

	assert.Equal(t, PhaseEnded, g.Phase())
	assert.Equal(t, game.StatusEnded, g.Status)
	winners := g.Winners()
	require.Equal(t, 2, len(winners))
	assert.Equal(t, "p1", winners[0].ID)
	assert.Equal(t, "p2", winners[1].ID)
	assert.False(t, g.NextRound())
}

func TestNextRound(t *testing.T) {
	g := newGame(t, 6)
	assert.False(t, g.NextRound())
	require.NoError(t, g.Start())
	assert.False(t, g.NextRound())
	assert.Equal(t, 1, g.RoundNumber())
	assert.Equal(t, PhasePassing, g.Phase())

	g = playingGameFrom(t, g)
	play(t, g, "p0", "2c")
	play(t, g, "p1", "3c")
	play(t, g, "p2", "4c")
	play(t, g, "p3", "Ac")
	require.True(t, g.ResolveTrick())
	require.Equal(t, PhaseScoring, g.Phase())
	require.Equal(t, 0, g.Players[0].Score)

	g.Players[0].RoundPoints = 4
	require.True(t, g.NextRound())
	assert.Equal(t, 2, g.RoundNumber())
	assert.Equal(t, PassRight, g.PassDirection())
	assert.Equal(t, PhasePassing, g.Phase())
	assert.False(t, g.HeartsBroken())
	assert.Empty(t, g.LastRoundResults())
	for _, p := range g.Players {
		assert.Equal(t, 0, p.RoundPoints)
		assert.Equal(t, HandSize, len(p.Hand))
		assert.Empty(t, g.TakenCards(p.ID))
	}
}

// playingGameFrom moves a game in the passing phase into play with one-card hands.
func playingGameFrom(t *testing.T, g *Game) *Game {
	hands := [][]string{{"2c"}, {"3c"}, {"4c"}, {"Ac"}}
	for i, p := range g.Players {
		p.Hand = mustCards(hands[i]...)
	}
	g.event(HeartsEvent__BEGIN_PLAY)
	g.determineStarter()
	return g
}

func TestPassDirectionCycle(t *testing.T) {
	g := newGame(t, 7)
	require.NoError(t, g.Start())
	expected := []PassDirection{PassLeft, PassRight, PassAcross, PassNone, PassLeft}
	for round, dir := range expected {
		assert.Equal(t, dir, g.PassDirection(), "round %d", round+1)
		if g.Phase() == PhasePassing {
			g.event(HeartsEvent__BEGIN_PLAY)
		}
		g.event(HeartsEvent__SCORE)
		require.True(t, g.NextRound())
	}
}

// Plays whole games with the first legal card and checks that every round hands out
// 26 points, or 78 when a player shoots the moon.
func TestFullGames(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := newGame(t, seed)
		require.NoError(t, g.Start())
		rounds := 0
		for g.Phase() != PhaseEnded && rounds < 50 {
			if g.Phase() == PhasePassing {
				for _, p := range g.Players {
					require.NoError(t, g.SubmitPass(p.ID, append([]cards.Card{}, p.Hand[:PassSize]...)))
				}
			}
			require.Equal(t, PhasePlaying, g.Phase())
			for g.Phase() == PhasePlaying {
				current := g.CurrentPlayer()
				legal := g.LegalMoves(current.ID)
				require.NotEmpty(t, legal, "seed %d round %d", seed, g.RoundNumber())
				require.NoError(t, g.PlayCard(current.ID, legal[0]))
				if g.IsTrickFull() {
					require.True(t, g.ResolveTrick())
				}
			}
			total := 0
			for _, delta := range g.LastRoundResults() {
				total += delta
			}
			if total != MoonPoints && total != 3*MoonPoints {
				t.Errorf("seed %d round %d awarded %d points", seed, g.RoundNumber(), total)
			}
			rounds++
			if g.Phase() == PhaseScoring {
				require.True(t, g.NextRound())
			}
		}
		assert.Equal(t, PhaseEnded, g.Phase())
		assert.NotEmpty(t, g.Winners())
	}
}

func TestView(t *testing.T) {
	g := playingGame(t, [NumPlayers][]string{
		{"2c", "5c", "Ad"},
		{"3c", "4d", "5h"},
		{"4c", "6d", "7h"},
		{"Ac", "Kd", "Kh"},
	})
	play(t, g, "p0", "2c")

	view := g.View("p1")
	assert.Equal(t, PhasePlaying, view.Phase)
	assert.Equal(t, "p1", view.CurrentPlayerID)
	assert.Equal(t, cards.Clubs, view.LeadSuit)
	assert.False(t, view.IsLeading())
	assert.Equal(t, []string{"3c", "4d", "5h"}, cards.Strings(view.Hand))
	assert.Equal(t, []string{"3c"}, cards.Strings(view.LegalMoves))
	require.Equal(t, 1, len(view.Trick))
	assert.Equal(t, "p0", view.Trick[0].PlayerID)
	assert.Equal(t, 2, view.Players[0].HandCount)

	other := g.View("p2")
	assert.Empty(t, other.LegalMoves)
	public := g.View("")
	assert.Empty(t, public.Hand)
	assert.Equal(t, -1, public.ViewerSeat)
}
