/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package feud holds the scoreboard state for an answer-guessing party game:
// the rounds being played, the teams and their scores, and the transitions
// a host can apply to them.
//
// A Game is owned by a single goroutine. None of its methods lock.
package feud

import (
	"strconv"
	"strings"
	"time"
)

const (
	MinTeams   = 1
	MaxTeams   = 15
	MaxAnswers = 15

	// NoTeam marks an answer that is not credited to anyone.
	NoTeam = -1
)

type Answer struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
}

type Question struct {
	Prompt  string   `json:"prompt"`
	Answers []Answer `json:"answers"`
}

type Round struct {
	Title      string     `json:"title"`
	Questions  []Question `json:"questions"`
	Tiebreaker bool       `json:"tiebreaker,omitempty"`
}

type Team struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Screen is the page the presentation layer should currently show.
type Screen string

const (
	ScreenHome        Screen = "home"
	ScreenRoundIntro  Screen = "round_intro"
	ScreenQuestion    Screen = "question"
	ScreenResultsWait Screen = "results_wait"
	ScreenFinal       Screen = "final"
)

type LabelMode string

const (
	LabelLetters  LabelMode = "letters"
	LabelNumerals LabelMode = "numerals"
)

// ParseLabelMode returns the mode named by s, defaulting to letters.
func ParseLabelMode(s string) (LabelMode, bool) {
	switch LabelMode(strings.ToLower(strings.TrimSpace(s))) {
	case LabelLetters:
		return LabelLetters, true
	case LabelNumerals:
		return LabelNumerals, true
	}
	return LabelLetters, false
}

// Labels builds n team labels. Letter labels stop at Z.
func Labels(mode LabelMode, n int) []string {
	if mode == LabelLetters && n > 26 {
		n = 26
	}
	if n < 0 {
		n = 0
	}

	labels := make([]string, n)
	for i := range labels {
		if mode == LabelNumerals {
			labels[i] = strconv.Itoa(i + 1)
		} else {
			labels[i] = string(rune('A' + i))
		}
	}
	return labels
}

// Key identifies one question within the loaded rounds.
type Key struct {
	Round    int
	Question int
}

// Progress is what has happened to a single question so far.
type Progress struct {
	Revealed []bool
	Assigned []int
}

func newProgress(answers int) *Progress {
	p := &Progress{
		Revealed: make([]bool, answers),
		Assigned: make([]int, answers),
	}
	for i := range p.Assigned {
		p.Assigned[i] = NoTeam
	}
	return p
}

type Strike struct {
	Active    bool
	ExpiresAt time.Time
}

// Game is the single authoritative state of a session.
type Game struct {
	Teams     []Team
	Rounds    []Round
	LabelMode LabelMode

	Screen   Screen
	Round    int
	Question int

	Progress map[Key]*Progress
	Strike   Strike

	TiebreakerUsed bool
	Finished       bool
}

// New returns a game sitting on the home screen. rounds must be non-empty
// and every round must hold at least one question.
func New(rounds []Round) *Game {
	return &Game{
		Rounds:    rounds,
		LabelMode: LabelLetters,
		Screen:    ScreenHome,
		Progress:  make(map[Key]*Progress),
	}
}

func (g *Game) Started() bool {
	return g.Screen != ScreenHome
}

func (g *Game) CurrentRound() *Round {
	if g.Round < 0 || g.Round >= len(g.Rounds) {
		return nil
	}
	return &g.Rounds[g.Round]
}

func (g *Game) CurrentQuestion() *Question {
	r := g.CurrentRound()
	if r == nil || g.Question < 0 || g.Question >= len(r.Questions) {
		return nil
	}
	return &r.Questions[g.Question]
}

// CurrentProgress returns the progress of the current question, creating it
// on first use.
func (g *Game) CurrentProgress() *Progress {
	q := g.CurrentQuestion()
	if q == nil {
		return nil
	}

	key := Key{Round: g.Round, Question: g.Question}
	p, ok := g.Progress[key]
	if !ok {
		p = newProgress(len(q.Answers))
		g.Progress[key] = p
	}
	return p
}

func (g *Game) TeamLabels() []string {
	labels := make([]string, len(g.Teams))
	for i, t := range g.Teams {
		labels[i] = t.Label
	}
	return labels
}

// Leaders returns the indexes of every team holding the top score.
func (g *Game) Leaders() []int {
	if len(g.Teams) == 0 {
		return nil
	}

	best := g.Teams[0].Score
	for _, t := range g.Teams[1:] {
		best = max(best, t.Score)
	}

	var leaders []int
	for i, t := range g.Teams {
		if t.Score == best {
			leaders = append(leaders, i)
		}
	}
	return leaders
}

func (g *Game) tied() bool {
	return len(g.Leaders()) >= 2
}
