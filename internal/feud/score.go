/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package feud

// SelectionKind tags what the host picked for an answer.
type SelectionKind int

const (
	SelectUnset SelectionKind = iota
	SelectShow
	SelectTeam
)

// Selection is the host's choice for one answer: clear it, show it without
// crediting anyone, or credit a team.
type Selection struct {
	Kind SelectionKind
	Team int
}

func Unset() Selection {
	return Selection{Kind: SelectUnset, Team: NoTeam}
}

func ShowOnly() Selection {
	return Selection{Kind: SelectShow, Team: NoTeam}
}

func AssignTo(team int) Selection {
	return Selection{Kind: SelectTeam, Team: team}
}

// Select applies sel to an answer of the current question.
func (g *Game) Select(answer int, sel Selection) bool {
	switch sel.Kind {
	case SelectUnset:
		return g.Assign(answer, NoTeam)
	case SelectShow:
		return g.RevealOnly(answer)
	case SelectTeam:
		if sel.Team < 0 {
			return false
		}
		return g.Assign(answer, sel.Team)
	}
	return false
}

// Assign credits an answer of the current question to team, moving the
// points away from any previous holder. NoTeam clears the assignment.
// The answer is revealed either way.
func (g *Game) Assign(answer, team int) bool {
	p, pts, ok := g.answer(answer)
	if !ok {
		return false
	}
	if team != NoTeam && (team < 0 || team >= len(g.Teams)) {
		return false
	}

	prev := p.Assigned[answer]
	if prev == team {
		if p.Revealed[answer] {
			return false
		}
		p.Revealed[answer] = true

		return true
	}

	g.debit(prev, pts)

	if team != NoTeam {
		g.Teams[team].Score += pts
	}
	p.Assigned[answer] = team
	p.Revealed[answer] = true

	return true
}

// RevealOnly shows an answer of the current question without crediting
// anyone, refunding its points if it had been assigned.
func (g *Game) RevealOnly(answer int) bool {
	p, pts, ok := g.answer(answer)
	if !ok {
		return false
	}

	if p.Revealed[answer] && p.Assigned[answer] == NoTeam {
		return false
	}

	g.debit(p.Assigned[answer], pts)
	p.Assigned[answer] = NoTeam
	p.Revealed[answer] = true

	return true
}

func (g *Game) debit(team, pts int) {
	if team < 0 || team >= len(g.Teams) {
		return
	}
	g.Teams[team].Score = max(0, g.Teams[team].Score-pts)
}

func (g *Game) answer(i int) (*Progress, int, bool) {
	if g.Screen != ScreenQuestion {
		return nil, 0, false
	}

	q := g.CurrentQuestion()
	if q == nil || i < 0 || i >= len(q.Answers) {
		return nil, 0, false
	}

	p := g.CurrentProgress()
	if i >= len(p.Assigned) {
		return nil, 0, false
	}

	return p, q.Answers[i].Points, true
}

// AssignedPoints totals the points of every answer currently credited to a
// team, across all visited questions.
func (g *Game) AssignedPoints() int {
	total := 0
	for key, p := range g.Progress {
		answers := g.Rounds[key.Round].Questions[key.Question].Answers
		for i, team := range p.Assigned {
			if team != NoTeam && i < len(answers) {
				total += answers[i].Points
			}
		}
	}
	return total
}
