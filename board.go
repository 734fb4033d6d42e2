// Feudbox Board
//
// A single scoreboard session for an answer-guessing party game. The host
// opens the board page, picks a team count and label style, and steps
// through rounds of prompts, revealing answers and crediting them to teams.
//
// Features:
// - One Board per process; one goroutine owns the game state
// - Every connected screen is pushed a fresh snapshot after each change
// - Host actions arrive over the board WebSocket or POST /api/action
// - Strike overlay blocks input for a fixed time, cleared by a one-shot timer
// - In-browser QR button to open the board on another screen, backed by go-qrcode

package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Seednode/feudbox/internal/feud"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

var errBoardClosed = errors.New("board closed")

// Messages coming from clients
type ClientMessage struct {
	Type      string `json:"type"`                // "start", "select", "advance", "retreat", "strike", "reset", "confirm", "play_again", "state"
	Teams     *int   `json:"teams,omitempty"`     // start, nil means the configured default
	Labels    string `json:"labels,omitempty"`    // start
	Answer    int    `json:"answer"`              // select
	Selection string `json:"selection,omitempty"` // select: "unset", "show" or "team"
	Team      int    `json:"team"`                // select
}

// HomeDefaults prefill the start controls on the home screen.
type HomeDefaults struct {
	Teams    int            `json:"teams"`
	Labels   feud.LabelMode `json:"labels"`
	MaxTeams int            `json:"max_teams"`
}

// StateMessage is pushed to every client after each change.
type StateMessage struct {
	Type     string        `json:"type"` // "state"
	State    feud.Snapshot `json:"state"`
	Defaults HomeDefaults  `json:"defaults"`
}

type Client struct {
	id   string
	conn *websocket.Conn
	send chan any
}

type action struct {
	msg   ClientMessage
	reply chan StateMessage
}

type Board struct {
	cfg  *Config
	game *feud.Game
	now  func() time.Time

	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	actions  chan action
	expire   chan uint64
	quit     chan struct{}

	strikeSeq uint64
}

func newBoard(cfg *Config, rounds []feud.Round) *Board {
	return &Board{
		cfg:      cfg,
		game:     feud.New(rounds),
		now:      time.Now,
		clients:  make(map[*Client]bool),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		actions:  make(chan action),
		expire:   make(chan uint64),
		quit:     make(chan struct{}),
	}
}

func (b *Board) run() {
	defer b.closeAll()

	for {
		select {
		case <-b.quit:
			return

		case c := <-b.register:
			b.clients[c] = true
			b.sendTo(c, b.stateMessage())

			logf(b.cfg, "SERVE: Screen %s connected (%d total)", c.id, len(b.clients))

		case c := <-b.unreg:
			if _, ok := b.clients[c]; ok {
				delete(b.clients, c)
				close(c.send)
			}

			logf(b.cfg, "SERVE: Screen %s disconnected (%d total)", c.id, len(b.clients))

		case a := <-b.actions:
			if b.apply(a.msg) {
				b.broadcast()
			}
			if a.reply != nil {
				a.reply <- b.stateMessage()
			}

		case seq := <-b.expire:
			if seq != b.strikeSeq {
				continue
			}

			now := b.now()
			if !b.game.ExpireStrike(now) {
				if b.game.Strike.Active {
					b.scheduleExpiry(b.game.Strike.ExpiresAt.Sub(now))
				}
				continue
			}

			b.broadcast()
		}
	}
}

func (b *Board) stop() {
	close(b.quit)
}

// Do applies msg on the board goroutine and returns the resulting state.
func (b *Board) Do(ctx context.Context, msg ClientMessage) (StateMessage, error) {
	reply := make(chan StateMessage, 1)

	select {
	case b.actions <- action{msg: msg, reply: reply}:
	case <-b.quit:
		return StateMessage{}, errBoardClosed
	case <-ctx.Done():
		return StateMessage{}, ctx.Err()
	}

	select {
	case s := <-reply:
		return s, nil
	case <-b.quit:
		return StateMessage{}, errBoardClosed
	case <-ctx.Done():
		return StateMessage{}, ctx.Err()
	}
}

// apply reports whether msg changed the game.
func (b *Board) apply(msg ClientMessage) bool {
	now := b.now()
	g := b.game

	if msg.Type == "state" {
		return false
	}

	// Reset clears everything, an active strike included.
	if msg.Type == "reset" {
		g.ResetToHome()
		b.strikeSeq++

		logf(b.cfg, "GAMES: Reset to home")

		return true
	}

	if g.Blocked(now) {
		return false
	}

	switch msg.Type {
	case "start":
		if g.Started() {
			return false
		}

		teams := b.cfg.teams
		if msg.Teams != nil {
			teams = *msg.Teams
		}

		mode, ok := feud.ParseLabelMode(msg.Labels)
		if !ok {
			mode = b.cfg.labelMode
		}

		g.Start(teams, mode)
		logf(b.cfg, "GAMES: Started game with %d teams (%s)", len(g.Teams), strings.Join(g.TeamLabels(), ","))

		return true

	case "select":
		return g.Select(msg.Answer, selection(msg))

	case "advance":
		tiebreaker := g.TiebreakerUsed
		if !g.Advance() {
			return false
		}

		if g.TiebreakerUsed && !tiebreaker {
			logf(b.cfg, "GAMES: Tie between %s, starting %q", strings.Join(b.leaderLabels(), ","), g.CurrentRound().Title)
		}
		if g.Screen == feud.ScreenResultsWait {
			logf(b.cfg, "GAMES: Game finished, leading %s", strings.Join(b.leaderLabels(), ","))
		}

		return true

	case "retreat":
		return g.Retreat()

	case "confirm":
		return g.ConfirmResults()

	case "play_again":
		if !g.PlayAgain() {
			return false
		}

		logf(b.cfg, "GAMES: Restarted game with %d teams", len(g.Teams))

		return true

	case "strike":
		if !g.TriggerStrike(now, b.cfg.strikeDuration) {
			return false
		}

		b.scheduleExpiry(b.cfg.strikeDuration)

		return true
	}

	return false
}

func selection(msg ClientMessage) feud.Selection {
	switch msg.Selection {
	case "show":
		return feud.ShowOnly()
	case "team":
		return feud.AssignTo(msg.Team)
	default:
		return feud.Unset()
	}
}

// scheduleExpiry arranges for the strike overlay to be cleared after d.
// Only the most recently scheduled timer is honored.
func (b *Board) scheduleExpiry(d time.Duration) {
	b.strikeSeq++
	seq := b.strikeSeq

	time.AfterFunc(d, func() {
		select {
		case b.expire <- seq:
		case <-b.quit:
		}
	})
}

func (b *Board) leaderLabels() []string {
	leaders := b.game.Leaders()
	labels := make([]string, len(leaders))
	for i, t := range leaders {
		labels[i] = b.game.Teams[t].Label
	}
	return labels
}

func (b *Board) stateMessage() StateMessage {
	return StateMessage{
		Type:  "state",
		State: b.game.Snapshot(b.now()),
		Defaults: HomeDefaults{
			Teams:    b.cfg.teams,
			Labels:   b.cfg.labelMode,
			MaxTeams: feud.MaxTeams,
		},
	}
}

func (b *Board) broadcast() {
	msg := b.stateMessage()

	for c := range b.clients {
		b.sendTo(c, msg)
	}
}

func (b *Board) sendTo(c *Client, msg any) {
	select {
	case c.send <- msg:
	default:
		delete(b.clients, c)
		close(c.send)
	}
}

func (b *Board) closeAll() {
	for c := range b.clients {
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
		delete(b.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func serveBoardWS(cfg *Config, b *Board) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: upgrade from %s: %v", realIP(r), err)
			return
		}

		client := &Client{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan any, 8),
		}

		select {
		case b.register <- client:
		case <-b.quit:
			_ = conn.Close()
			return
		}

		go client.writePump()
		client.readPump(b)
	}
}

func (c *Client) readPump(b *Board) {
	defer func() {
		select {
		case b.unreg <- c:
		case <-b.quit:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		select {
		case b.actions <- action{msg: msg}:
		case <-b.quit:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func serveState(cfg *Config, b *Board, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		s, err := b.Do(r.Context(), ClientMessage{Type: "state"})
		if err != nil {
			http.Error(w, "board unavailable", http.StatusServiceUnavailable)
			return
		}

		writeJSON(cfg, w, s, errs)
	}
}

func serveAction(cfg *Config, b *Board, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		r.Body = http.MaxBytesReader(w, r.Body, 4096)

		var msg ClientMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil || msg.Type == "" {
			http.Error(w, "invalid action", http.StatusBadRequest)
			return
		}

		s, err := b.Do(r.Context(), msg)
		if err != nil {
			http.Error(w, "board unavailable", http.StatusServiceUnavailable)
			return
		}

		writeJSON(cfg, w, s, errs)
	}
}

func writeJSON(cfg *Config, w http.ResponseWriter, v any, errs chan<- error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	securityHeaders(cfg, w)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		errs <- err
	}
}

// QR handler: generates a PNG QR code for the board URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../qr; strip it to get the board URL.
	path := strings.TrimSuffix(r.URL.Path, "qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// registerBoard sets up routes so that:
//   - $prefix/            → board page
//   - $prefix/ws          → WebSocket pushing state and taking host actions
//   - $prefix/api/state   → current state as JSON
//   - $prefix/api/action  → apply one host action, returns the new state
//   - $prefix/qr          → PNG QR code for the board URL
func registerBoard(cfg *Config, b *Board, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+"/", serveBoardPage(cfg, errs))

	mux.GET(cfg.prefix+"/ws", serveBoardWS(cfg, b))

	mux.GET(cfg.prefix+"/api/state", serveState(cfg, b, errs))
	mux.POST(cfg.prefix+"/api/action", serveAction(cfg, b, errs))

	mux.GET(cfg.prefix+"/qr", qrHandler)
}
