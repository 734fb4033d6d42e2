/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package feud

// Every transition here is total: a request that makes no sense for the
// current screen leaves the game untouched and reports false.

// Start begins a new game with numTeams teams, clamped to 1-15.
func (g *Game) Start(numTeams int, mode LabelMode) {
	numTeams = min(max(numTeams, MinTeams), MaxTeams)

	if mode != LabelNumerals {
		mode = LabelLetters
	}

	labels := Labels(mode, numTeams)

	g.Teams = make([]Team, numTeams)
	for i := range g.Teams {
		g.Teams[i].Label = labels[i]
	}
	g.LabelMode = mode

	g.restart()
}

// PlayAgain zeroes scores and progress after a finished game while keeping
// the teams and their labels.
func (g *Game) PlayAgain() bool {
	if g.Screen != ScreenResultsWait && g.Screen != ScreenFinal {
		return false
	}

	for i := range g.Teams {
		g.Teams[i].Score = 0
	}

	g.restart()

	return true
}

func (g *Game) restart() {
	g.Progress = make(map[Key]*Progress)
	g.Strike = Strike{}
	g.TiebreakerUsed = false
	g.Finished = false

	g.Round = g.firstRound()
	g.Question = 0
	g.Screen = ScreenRoundIntro
}

// ResetToHome discards teams, scores and progress.
func (g *Game) ResetToHome() {
	rounds := g.Rounds
	*g = *New(rounds)
}

func (g *Game) Advance() bool {
	switch g.Screen {
	case ScreenRoundIntro:
		g.enterQuestion(g.Round, 0)

		return true
	case ScreenQuestion:
	default:
		return false
	}

	round := g.CurrentRound()
	if g.Question < len(round.Questions)-1 {
		g.enterQuestion(g.Round, g.Question+1)

		return true
	}

	if round.Tiebreaker {
		g.finish()

		return true
	}

	if next := g.nextNormalRound(g.Round); next >= 0 {
		g.enterRoundIntro(next)

		return true
	}

	if !g.TiebreakerUsed && g.tied() {
		if tb := g.tiebreakerRound(); tb >= 0 {
			g.TiebreakerUsed = true
			g.enterRoundIntro(tb)

			return true
		}
	}

	g.finish()

	return true
}

func (g *Game) Retreat() bool {
	switch g.Screen {
	case ScreenQuestion:
		if g.Question > 0 {
			g.enterQuestion(g.Round, g.Question-1)
		} else {
			g.enterRoundIntro(g.Round)
		}

		return true
	case ScreenRoundIntro:
		prev := g.prevRound(g.Round)
		if prev < 0 {
			return false
		}

		if g.Rounds[g.Round].Tiebreaker {
			g.TiebreakerUsed = false
		}

		g.enterQuestion(prev, len(g.Rounds[prev].Questions)-1)

		return true
	}

	return false
}

// ConfirmResults moves from the results holding screen to the final standings.
func (g *Game) ConfirmResults() bool {
	if g.Screen != ScreenResultsWait {
		return false
	}

	g.Screen = ScreenFinal

	return true
}

func (g *Game) finish() {
	g.Screen = ScreenResultsWait
	g.Finished = true
	g.Strike = Strike{}
}

func (g *Game) enterRoundIntro(round int) {
	g.Round = round
	g.Question = 0
	g.Screen = ScreenRoundIntro
}

func (g *Game) enterQuestion(round, question int) {
	g.Round = round
	g.Question = question
	g.Screen = ScreenQuestion

	_ = g.CurrentProgress()
}

// firstRound is the first round reached by normal play. Tiebreaker rounds
// only come up through a tie, unless nothing else was loaded.
func (g *Game) firstRound() int {
	for i, r := range g.Rounds {
		if !r.Tiebreaker {
			return i
		}
	}
	return 0
}

func (g *Game) nextNormalRound(after int) int {
	for i := after + 1; i < len(g.Rounds); i++ {
		if !g.Rounds[i].Tiebreaker {
			return i
		}
	}
	return -1
}

func (g *Game) lastNormalRound() int {
	for i := len(g.Rounds) - 1; i >= 0; i-- {
		if !g.Rounds[i].Tiebreaker {
			return i
		}
	}
	return -1
}

// prevRound is the round whose last question precedes the intro of round.
// A tiebreaker is always entered from the last normal round.
func (g *Game) prevRound(round int) int {
	if g.Rounds[round].Tiebreaker {
		return g.lastNormalRound()
	}

	for i := round - 1; i >= 0; i-- {
		if !g.Rounds[i].Tiebreaker {
			return i
		}
	}
	return -1
}

func (g *Game) tiebreakerRound() int {
	for i, r := range g.Rounds {
		if r.Tiebreaker {
			return i
		}
	}
	return -1
}
