package gamescript

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"voyager.com/cardtable/hearts"
)

func intPtr(i int) *int {
	return &i
}

func TestReadScript(t *testing.T) {
	script, err := ReadScript("testdata/pass-left.yaml")
	require.NoError(t, err)
	require.Len(t, script.Rounds, 1)

	round := script.Rounds[0]
	assert.Equal(t, hearts.PassLeft, round.PassDirection)
	assert.Len(t, round.Hands, 4)
	assert.True(t, round.PlayOut)
	expectedTricks := []Trick{
		{Plays: []string{"2c", "Qc", "Ad", "As"}, Winner: intPtr(1), Points: intPtr(0)},
		{Plays: []string{"Kc", "Kd", "Qs", "3c"}, Winner: intPtr(1), Points: intPtr(13)},
		{Plays: []string{"Ac", "Qd", "2h", "4c"}, Winner: intPtr(1), Points: intPtr(1)},
	}
	if diff := cmp.Diff(expectedTricks, round.Tricks); diff != "" {
		t.Errorf("tricks mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, &RoundResult{RoundPoints: []int{0, 26, 0, 0}, Scores: []int{26, 0, 26, 26}}, round.Result)
}

func TestReadScriptMissingFile(t *testing.T) {
	_, err := ReadScript("testdata/nope.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid, err := ReadScript("testdata/moon.yaml")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(s *Script)
	}{
		{"no rounds", func(s *Script) { s.Rounds = nil }},
		{"three players", func(s *Script) { s.Players = s.Players[:3] }},
		{"bad direction", func(s *Script) { s.Rounds[0].PassDirection = "sideways" }},
		{"duplicate card", func(s *Script) { s.Rounds[0].Hands[1][0] = "2c" }},
		{"short hand", func(s *Script) { s.Rounds[0].Hands[2] = s.Rounds[0].Hands[2][:12] }},
		{"bad card", func(s *Script) { s.Rounds[0].Tricks[0].Plays[1] = "1x" }},
		{"too many plays", func(s *Script) { s.Rounds[0].Tricks[0].Plays = append(s.Rounds[0].Tricks[0].Plays, "4c") }},
		{"bad winner", func(s *Script) { s.Rounds[0].Tricks[0].Winner = intPtr(4) }},
		{"two passes", func(s *Script) { s.Rounds[0].Passes = [][]string{{"2c", "3c", "4c"}} }},
		{"short scores", func(s *Script) { s.Rounds[0].Result.Scores = []int{0} }},
		{"bad game winner", func(s *Script) { s.Winners = []int{-1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := copyScript(t, valid)
			require.NoError(t, script.Validate())
			tt.mutate(script)
			assert.Error(t, script.Validate())
		})
	}
}

func copyScript(t *testing.T, s *Script) *Script {
	b, err := yaml.Marshal(s)
	require.NoError(t, err)
	var out Script
	require.NoError(t, yaml.Unmarshal(b, &out))
	return &out
}

func TestRunMoon(t *testing.T) {
	script, err := ReadScript("testdata/moon.yaml")
	require.NoError(t, err)
	g, err := Run(script)
	require.NoError(t, err)
	assert.Equal(t, hearts.PhaseScoring, g.Phase())
	assert.Equal(t, "alice", g.Players[0].Name)
	assert.Equal(t, map[string]int{"p0": 0, "p1": 26, "p2": 26, "p3": 26}, g.LastRoundResults())
}

func TestRunPassLeft(t *testing.T) {
	script, err := ReadScript("testdata/pass-left.yaml")
	require.NoError(t, err)
	g, err := Run(script)
	require.NoError(t, err)
	assert.Len(t, g.TakenCards("p1"), 52)
}

func TestRunGameOver(t *testing.T) {
	script, err := ReadScript("testdata/game-over.yaml")
	require.NoError(t, err)
	g, err := Run(script)
	require.NoError(t, err)
	assert.Equal(t, hearts.PhaseEnded, g.Phase())
	assert.Equal(t, 4, g.RoundNumber())
}

func TestRunSeeded(t *testing.T) {
	script, err := ReadScript("testdata/seeded.yaml")
	require.NoError(t, err)
	g, err := Run(script)
	require.NoError(t, err)
	assert.Equal(t, 2, g.RoundNumber())
	total := 0
	for _, p := range g.Players {
		total += p.Score
	}
	assert.Contains(t, []int{52, 78, 104, 130, 156}, total)
}

func TestRunReportsMismatch(t *testing.T) {
	script, err := ReadScript("testdata/moon.yaml")
	require.NoError(t, err)
	script.Rounds[0].Tricks[1].Points = intPtr(13)

	_, err = Run(script)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 1, mismatch.Round)
	assert.Equal(t, 2, mismatch.Trick)
	assert.Equal(t, 14, mismatch.Actual)

	script, err = ReadScript("testdata/moon.yaml")
	require.NoError(t, err)
	script.Rounds[0].Result.Scores = []int{26, 0, 0, 0}
	_, err = Run(script)
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "score for seat 0", mismatch.What)
}

func TestRunRejectsIllegalPlay(t *testing.T) {
	script, err := ReadScript("testdata/moon.yaml")
	require.NoError(t, err)
	// the first lead must be the two of clubs
	script.Rounds[0].Tricks[0].Plays[0] = "3c"
	_, err = Run(script)
	var invalid *hearts.InvalidMoveError
	assert.ErrorAs(t, err, &invalid)
}

func TestRunScripts(t *testing.T) {
	require.NoError(t, RunScripts("testdata", ""))
	require.NoError(t, RunScripts("testdata/moon.yaml", ""))
	require.NoError(t, RunScripts("testdata", "game-over"))

	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("rounds: []\n"), 0644))
	assert.Error(t, RunScripts(dir, ""))
	assert.Error(t, RunScripts(filepath.Join(dir, "missing"), ""))
}
