package feud

import (
	"testing"
)

// sampleRounds has a tiebreaker sitting between two normal rounds, so
// normal play has to step over it.
func sampleRounds() []Round {
	return []Round{
		{
			Title: "Warm up",
			Questions: []Question{
				{Prompt: "q1", Answers: []Answer{{"a", 10}, {"b", 6}}},
				{Prompt: "q2", Answers: []Answer{{"c", 5}, {"d", 3}, {"e", 1}}},
			},
		},
		{
			Title:      "Sudden death",
			Tiebreaker: true,
			Questions: []Question{
				{Prompt: "tb", Answers: []Answer{{"f", 50}}},
			},
		},
		{
			Title: "Main event",
			Questions: []Question{
				{Prompt: "q3", Answers: []Answer{{"g", 20}, {"h", 10}}},
			},
		},
	}
}

func TestStartClampsTeamCount(t *testing.T) {
	cases := []struct {
		requested int
		want      int
	}{
		{-4, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{15, 15},
		{16, 15},
		{200, 15},
	}

	for _, tc := range cases {
		g := New(defaultRounds())
		g.Start(tc.requested, LabelLetters)
		if len(g.Teams) != tc.want {
			t.Fatalf("Start(%d): got %d teams, want %d", tc.requested, len(g.Teams), tc.want)
		}
	}
}

func TestStartResetsState(t *testing.T) {
	g := startedOnQuestion(t, sampleRounds(), 2)
	g.Assign(0, 1)

	g.Start(3, LabelNumerals)

	if g.Screen != ScreenRoundIntro || g.Round != 0 || g.Question != 0 {
		t.Fatalf("unexpected position after start: %q round=%d question=%d", g.Screen, g.Round, g.Question)
	}
	if len(g.Progress) != 0 {
		t.Fatalf("progress should be cleared, have %d entries", len(g.Progress))
	}
	if got := g.TeamLabels(); got[0] != "1" || got[2] != "3" {
		t.Fatalf("labels = %v", got)
	}
	if totalScore(g) != 0 {
		t.Fatalf("scores should be zero")
	}
}

func TestLabels(t *testing.T) {
	if got := Labels(LabelLetters, 3); len(got) != 3 || got[2] != "C" {
		t.Fatalf("letters = %v", got)
	}
	if got := Labels(LabelLetters, 40); len(got) != 26 || got[25] != "Z" {
		t.Fatalf("letters should cap at Z, got %d labels", len(got))
	}
	if got := Labels(LabelNumerals, 12); len(got) != 12 || got[11] != "12" {
		t.Fatalf("numerals = %v", got)
	}

	if m, ok := ParseLabelMode(" Numerals "); !ok || m != LabelNumerals {
		t.Fatalf("ParseLabelMode(numerals) = %q, %v", m, ok)
	}
	if m, ok := ParseLabelMode("roman"); ok || m != LabelLetters {
		t.Fatalf("ParseLabelMode(roman) = %q, %v", m, ok)
	}
}

func TestTraversalWithoutTieReachesResults(t *testing.T) {
	g := New(sampleRounds())
	g.Start(2, LabelLetters)

	questions := 0
	for i := 0; i < 20 && g.Screen != ScreenResultsWait; i++ {
		if !g.Advance() {
			t.Fatalf("advance refused on %q", g.Screen)
		}
		if g.Screen == ScreenQuestion {
			questions++
			if g.CurrentRound().Tiebreaker {
				t.Fatalf("normal progression entered the tiebreaker round")
			}
			g.Assign(0, questions%2)
			g.Assign(1, 0)
		}
	}

	if g.Screen != ScreenResultsWait || !g.Finished {
		t.Fatalf("expected results_wait, got %q", g.Screen)
	}
	if questions != 3 {
		t.Fatalf("visited %d questions, want 3", questions)
	}
	if g.TiebreakerUsed {
		t.Fatalf("tiebreaker should not have been used")
	}
}

func TestTieEntersTiebreakerOnce(t *testing.T) {
	g := New(sampleRounds())
	g.Start(2, LabelLetters)

	g.Advance() // warm up q1
	g.Advance() // warm up q2
	g.Advance() // main event intro
	if g.Screen != ScreenRoundIntro || g.Round != 2 {
		t.Fatalf("expected main event intro, got %q round %d", g.Screen, g.Round)
	}
	g.Advance() // main event q3
	g.Assign(0, 0)
	if s := scores(g); s[0] != 20 || s[1] != 0 {
		t.Fatalf("scores = %v", s)
	}

	g.Retreat() // main event intro
	g.Retreat() // warm up q2
	g.Retreat() // warm up q1
	g.Assign(0, 1)
	g.Assign(1, 1)
	g.Assign(1, NoTeam)
	for g.Round != 2 || g.Screen != ScreenQuestion {
		g.Advance()
	}
	if s := scores(g); s[0] != 20 || s[1] != 10 {
		t.Fatalf("scores = %v", s)
	}
	g.Assign(1, 1)
	if !g.tied() {
		t.Fatalf("teams should be tied, scores = %v", scores(g))
	}

	g.Advance()
	if g.Screen != ScreenRoundIntro || g.Round != 1 {
		t.Fatalf("tie should lead to tiebreaker intro, got %q round %d", g.Screen, g.Round)
	}
	if !g.TiebreakerUsed {
		t.Fatalf("tiebreaker should be marked used")
	}

	g.Advance()
	if g.Screen != ScreenQuestion || !g.CurrentRound().Tiebreaker {
		t.Fatalf("expected tiebreaker question, got %q", g.Screen)
	}

	g.Advance()
	if g.Screen != ScreenResultsWait {
		t.Fatalf("still tied after tiebreaker should finish, got %q", g.Screen)
	}
}

func TestTieWithoutTiebreakerRoundFinishes(t *testing.T) {
	g := startedOnQuestion(t, defaultRounds(), 3)

	g.Advance()
	if g.Screen != ScreenResultsWait {
		t.Fatalf("expected results_wait, got %q", g.Screen)
	}
}

func TestSingleTeamNeverTies(t *testing.T) {
	rounds := sampleRounds()
	g := New(rounds)
	g.Start(1, LabelLetters)
	for i := 0; i < 5; i++ {
		g.Advance()
	}
	if g.Screen != ScreenResultsWait || g.TiebreakerUsed {
		t.Fatalf("single team should go straight to results, got %q", g.Screen)
	}
}

func TestRetreat(t *testing.T) {
	g := New(sampleRounds())

	if g.Retreat() {
		t.Fatalf("retreat from home should be a no-op")
	}

	g.Start(2, LabelLetters)
	if g.Retreat() || g.Screen != ScreenRoundIntro || g.Round != 0 {
		t.Fatalf("retreat from the first intro should be a no-op")
	}

	g.Advance()
	g.Advance()
	if !g.Retreat() || g.Screen != ScreenQuestion || g.Question != 0 {
		t.Fatalf("retreat should step back one question")
	}
	if !g.Retreat() || g.Screen != ScreenRoundIntro || g.Round != 0 {
		t.Fatalf("retreat from question 0 should show the round intro")
	}
}

func TestRetreatAdvanceSymmetry(t *testing.T) {
	g := New(sampleRounds())
	g.Start(2, LabelLetters)
	for g.Round != 2 {
		g.Advance()
	}
	g.Advance()
	if g.Screen != ScreenQuestion || g.Question != 0 {
		t.Fatalf("expected main event q3, got %q", g.Screen)
	}

	g.Retreat()
	g.Retreat()
	if g.Screen != ScreenQuestion || g.Round != 0 || g.Question != 1 {
		t.Fatalf("expected last question of warm up, got %q round=%d question=%d", g.Screen, g.Round, g.Question)
	}

	g.Advance()
	g.Advance()
	if g.Screen != ScreenQuestion || g.Round != 2 || g.Question != 0 {
		t.Fatalf("expected to return to main event q3, got %q round=%d question=%d", g.Screen, g.Round, g.Question)
	}
}

func TestRetreatOutOfTiebreakerUndoesEntry(t *testing.T) {
	g := New(sampleRounds())
	g.Start(2, LabelLetters)
	for g.Screen != ScreenRoundIntro || g.Round != 1 {
		if !g.Advance() {
			t.Fatalf("stuck on %q", g.Screen)
		}
	}

	if !g.Retreat() || g.Round != 2 || g.Screen != ScreenQuestion {
		t.Fatalf("retreat from tiebreaker intro should land on main event, got %q round %d", g.Screen, g.Round)
	}
	if g.TiebreakerUsed {
		t.Fatalf("tiebreaker entry should be undone")
	}

	g.Advance()
	if g.Round != 1 || g.Screen != ScreenRoundIntro {
		t.Fatalf("advancing again should re-enter the tiebreaker, got %q round %d", g.Screen, g.Round)
	}
}

func TestStartSkipsLeadingTiebreaker(t *testing.T) {
	rounds := sampleRounds()
	rounds[0], rounds[1] = rounds[1], rounds[0]

	g := New(rounds)
	g.Start(2, LabelLetters)
	if g.Round != 1 {
		t.Fatalf("start should land on the first normal round, got %d", g.Round)
	}
	g.Advance()
	g.Retreat()
	if g.Retreat() {
		t.Fatalf("nothing precedes the first normal round")
	}
}

func TestResultsFinalAndPlayAgain(t *testing.T) {
	g := startedOnQuestion(t, defaultRounds(), 4)
	g.Assign(0, 3)

	if g.ConfirmResults() || g.PlayAgain() {
		t.Fatalf("confirm and play again need a finished game")
	}

	g.Advance()
	if g.Advance() || g.Retreat() {
		t.Fatalf("results_wait should ignore navigation")
	}
	if !g.ConfirmResults() || g.Screen != ScreenFinal {
		t.Fatalf("expected final screen, got %q", g.Screen)
	}
	if g.Teams[3].Score != 32 {
		t.Fatalf("confirming results should keep scores")
	}

	labels := g.TeamLabels()
	if !g.PlayAgain() {
		t.Fatalf("play again refused")
	}
	if g.Screen != ScreenRoundIntro || g.Finished || totalScore(g) != 0 || len(g.Progress) != 0 {
		t.Fatalf("play again should reset progress: %+v", g)
	}
	if got := g.TeamLabels(); len(got) != len(labels) || got[3] != labels[3] {
		t.Fatalf("play again should keep labels, got %v want %v", got, labels)
	}
}

func TestResetToHome(t *testing.T) {
	rounds := sampleRounds()
	g := startedOnQuestion(t, rounds, 5)
	g.Assign(0, 2)
	g.TriggerStrike(testNow, DefaultStrikeDuration)

	g.ResetToHome()

	if g.Screen != ScreenHome || len(g.Teams) != 0 || len(g.Progress) != 0 || g.Strike.Active {
		t.Fatalf("reset should clear everything: %+v", g)
	}
	if len(g.Rounds) != len(rounds) {
		t.Fatalf("reset should keep the loaded rounds")
	}
	if g.Advance() {
		t.Fatalf("advance from home should be a no-op")
	}
}
