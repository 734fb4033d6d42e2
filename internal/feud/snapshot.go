/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package feud

import (
	"sort"
	"time"
)

// Snapshot is a read-only view of a Game for the presentation layer.
type Snapshot struct {
	Screen Screen `json:"screen"`

	Teams     []Team     `json:"teams"`
	Standings []Standing `json:"standings,omitempty"`
	Leaders   []string   `json:"leaders,omitempty"`
	LabelMode LabelMode  `json:"label_mode"`

	RoundIndex     int    `json:"round_index"`
	RoundNumber    int    `json:"round_number,omitempty"`
	RoundCount     int    `json:"round_count"`
	RoundTitle     string `json:"round_title,omitempty"`
	Tiebreaker     bool   `json:"tiebreaker"`
	TiebreakerUsed bool   `json:"tiebreaker_used"`

	QuestionIndex int          `json:"question_index"`
	QuestionCount int          `json:"question_count,omitempty"`
	Prompt        string       `json:"prompt,omitempty"`
	Answers       []AnswerView `json:"answers,omitempty"`

	Strike          bool  `json:"strike"`
	StrikeRemaining int64 `json:"strike_remaining_ms,omitempty"`

	Finished bool `json:"finished"`
}

// AnswerView hides the text and points of answers that are not yet revealed.
type AnswerView struct {
	Rank     int    `json:"rank"`
	Revealed bool   `json:"revealed"`
	Text     string `json:"text,omitempty"`
	Points   int    `json:"points,omitempty"`
	Team     int    `json:"team"`
}

type Standing struct {
	Place int    `json:"place"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

func (g *Game) Snapshot(now time.Time) Snapshot {
	s := Snapshot{
		Screen:         g.Screen,
		Teams:          append([]Team(nil), g.Teams...),
		LabelMode:      g.LabelMode,
		RoundIndex:     g.Round,
		QuestionIndex:  g.Question,
		TiebreakerUsed: g.TiebreakerUsed,
		Finished:       g.Finished,
	}

	for _, r := range g.Rounds {
		if !r.Tiebreaker {
			s.RoundCount++
		}
	}

	if g.Blocked(now) {
		s.Strike = true
		s.StrikeRemaining = g.Strike.ExpiresAt.Sub(now).Milliseconds()
	}

	if !g.Started() {
		return s
	}

	for _, i := range g.Leaders() {
		s.Leaders = append(s.Leaders, g.Teams[i].Label)
	}
	s.Standings = g.standings()

	if r := g.CurrentRound(); r != nil {
		s.RoundTitle = r.Title
		s.Tiebreaker = r.Tiebreaker
		s.QuestionCount = len(r.Questions)
		if !r.Tiebreaker {
			s.RoundNumber = g.roundNumber(g.Round)
		}
	}

	if g.Screen != ScreenQuestion {
		return s
	}

	q := g.CurrentQuestion()
	p := g.CurrentProgress()
	s.Prompt = q.Prompt
	s.Answers = make([]AnswerView, len(q.Answers))
	for i, a := range q.Answers {
		v := AnswerView{
			Rank:     i + 1,
			Revealed: p.Revealed[i],
			Team:     p.Assigned[i],
		}
		if v.Revealed {
			v.Text = a.Text
			v.Points = a.Points
		}
		s.Answers[i] = v
	}

	return s
}

// standings ranks teams by score. Equal scores share a place.
func (g *Game) standings() []Standing {
	order := make([]int, len(g.Teams))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return g.Teams[order[a]].Score > g.Teams[order[b]].Score
	})

	out := make([]Standing, len(order))
	for pos, i := range order {
		place := pos + 1
		if pos > 0 && out[pos-1].Score == g.Teams[i].Score {
			place = out[pos-1].Place
		}
		out[pos] = Standing{
			Place: place,
			Label: g.Teams[i].Label,
			Score: g.Teams[i].Score,
		}
	}
	return out
}

// roundNumber is the 1-based position of round among normal rounds.
func (g *Game) roundNumber(round int) int {
	n := 0
	for i := 0; i <= round && i < len(g.Rounds); i++ {
		if !g.Rounds[i].Tiebreaker {
			n++
		}
	}
	return n
}
