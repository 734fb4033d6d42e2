/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package feud

import "time"

const DefaultStrikeDuration = 2 * time.Second

// TriggerStrike shows the strike overlay until now+d. Triggering again
// while active pushes the deadline out.
func (g *Game) TriggerStrike(now time.Time, d time.Duration) bool {
	if !g.Started() || d <= 0 {
		return false
	}

	g.Strike = Strike{
		Active:    true,
		ExpiresAt: now.Add(d),
	}

	return true
}

// ExpireStrike clears the overlay once its deadline has passed.
func (g *Game) ExpireStrike(now time.Time) bool {
	if !g.Strike.Active || now.Before(g.Strike.ExpiresAt) {
		return false
	}

	g.Strike = Strike{}

	return true
}

// Blocked reports whether host input is suspended by the strike overlay.
func (g *Game) Blocked(now time.Time) bool {
	return g.Strike.Active && now.Before(g.Strike.ExpiresAt)
}
