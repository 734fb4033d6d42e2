/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package content reads question files for the scoreboard. Whatever is on
// disk, Load hands back something playable.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Seednode/feudbox/internal/feud"
	"go.yaml.in/yaml/v3"
)

var ErrNoRounds = errors.New("no playable rounds")

// Default is the single built-in round used when no usable file is found.
func Default() []feud.Round {
	return []feud.Round{
		{
			Title: "Round 1",
			Questions: []feud.Question{
				{
					Prompt: "Name something people double-check before leaving home",
					Answers: []feud.Answer{
						{Text: "Keys", Points: 32},
						{Text: "Phone", Points: 27},
						{Text: "Wallet", Points: 18},
						{Text: "Lights off", Points: 9},
						{Text: "Door locked", Points: 8},
						{Text: "Stove/Gas", Points: 6},
					},
				},
			},
		},
	}
}

type rawAnswer struct {
	Text   any    `json:"text"`
	Points points `json:"points"`
}

// points accepts a number, truncating any fraction, or a string holding a
// whole number. Anything else fails the file.
type points int

func (p *points) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*p = 0
	case float64:
		*p = points(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return fmt.Errorf("invalid points %q", t)
		}
		*p = points(n)
	default:
		return fmt.Errorf("invalid points %s", data)
	}

	return nil
}

type rawQuestion struct {
	Prompt  any         `json:"prompt"`
	Answers []rawAnswer `json:"answers"`
}

type rawRound struct {
	Title      string        `json:"title"`
	Questions  []rawQuestion `json:"questions"`
	Tiebreaker bool          `json:"tiebreaker"`
}

type rawDocument struct {
	Rounds []rawRound `json:"rounds"`
}

// Load reads rounds from path. It always returns a playable set of rounds;
// a non-nil error only explains why the defaults were used instead.
func Load(path string) ([]feud.Round, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return Default(), fmt.Errorf("%s: %w", path, err)
		}
	}

	rounds, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}

	return rounds, nil
}

// Parse decodes a JSON document in either the rounds form or the legacy
// flat list of questions.
func Parse(data []byte) ([]feud.Round, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrNoRounds
	}

	var raw []rawRound

	if data[0] == '[' {
		var questions []rawQuestion
		if err := json.Unmarshal(data, &questions); err != nil {
			return nil, err
		}
		raw = []rawRound{{Questions: questions}}
	} else {
		var doc rawDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		raw = doc.Rounds
	}

	rounds := clean(raw)
	if len(rounds) == 0 {
		return nil, ErrNoRounds
	}

	return rounds, nil
}

func clean(raw []rawRound) []feud.Round {
	var rounds []feud.Round

	for _, rr := range raw {
		var questions []feud.Question
		for _, rq := range rr.Questions {
			if q, ok := cleanQuestion(rq); ok {
				questions = append(questions, q)
			}
		}
		if len(questions) == 0 {
			continue
		}

		title := strings.TrimSpace(rr.Title)
		if title == "" {
			if rr.Tiebreaker {
				title = "Tiebreaker"
			} else {
				title = fmt.Sprintf("Round %d", len(rounds)+1)
			}
		}

		rounds = append(rounds, feud.Round{
			Title:      title,
			Questions:  questions,
			Tiebreaker: rr.Tiebreaker,
		})
	}

	return rounds
}

func cleanQuestion(rq rawQuestion) (feud.Question, bool) {
	prompt, ok := rq.Prompt.(string)
	if !ok || strings.TrimSpace(prompt) == "" {
		return feud.Question{}, false
	}
	if len(rq.Answers) < 1 || len(rq.Answers) > feud.MaxAnswers {
		return feud.Question{}, false
	}

	answers := make([]feud.Answer, len(rq.Answers))
	for i, ra := range rq.Answers {
		answers[i] = feud.Answer{
			Text:   text(ra.Text),
			Points: max(0, int(ra.Points)),
		}
	}

	return feud.Question{
		Prompt:  strings.TrimSpace(prompt),
		Answers: answers,
	}, true
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}

// yamlToJSON lets YAML question files share the JSON decoding rules.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
