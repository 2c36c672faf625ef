package server

import (
	"fmt"
	"sync"

	"hex/game"
	"hex/searcher"
)

// StatePayload is the board snapshot broadcast to every connected
// client after each move.
type StatePayload struct {
	Size        int     `json:"size"`
	Board       [][]int `json:"board"`
	Current     int     `json:"current"`
	Winner      int     `json:"winner"`
	LastRow     int     `json:"last_row"`
	LastCol     int     `json:"last_col"`
	HasLast     bool    `json:"has_last"`
	MovesPlayed int     `json:"moves_played"`
	Thinking    bool    `json:"thinking"`
}

// Session owns the live game state for one human-versus-bot game. The
// human always plays Red; the bot replies as Blue on its own
// goroutine so a long search never blocks the websocket readers.
type Session struct {
	mu       sync.Mutex
	state    *game.GameState
	bot      *searcher.MCTS
	botOpts  []searcher.Option
	gen      int // bumped on Reset; searches from older generations are void
	thinking bool
	notify   func(StatePayload)
}

// NewSession creates a fresh game of the given size. notify is called
// with a snapshot after every state change; it must not block.
func NewSession(size int, notify func(StatePayload), opts ...searcher.Option) *Session {
	return &Session{
		state:   game.NewGameState(size),
		bot:     searcher.NewMCTS(opts...),
		botOpts: opts,
		notify:  notify,
	}
}

// Snapshot returns the current board as a broadcast payload.
func (s *Session) Snapshot() StatePayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() StatePayload {
	board := make([][]int, s.state.Size)
	for r := 0; r < s.state.Size; r++ {
		row := make([]int, s.state.Size)
		for c := 0; c < s.state.Size; c++ {
			row[c] = int(s.state.At(r, c))
		}
		board[r] = row
	}
	return StatePayload{
		Size:        s.state.Size,
		Board:       board,
		Current:     int(s.state.Current),
		Winner:      int(s.state.Winner),
		LastRow:     s.state.LastMove.Row,
		LastCol:     s.state.LastMove.Col,
		HasLast:     s.state.HasLast,
		MovesPlayed: s.state.MovesPlayed,
		Thinking:    s.thinking,
	}
}

// ApplyHumanMove plays the human's stone and, when the game is still
// open, schedules the bot's reply.
func (s *Session) ApplyHumanMove(mv game.Move) error {
	s.mu.Lock()
	if s.thinking {
		s.mu.Unlock()
		return fmt.Errorf("bot is still thinking")
	}
	if s.state.Current != game.Red {
		s.mu.Unlock()
		return fmt.Errorf("not your turn")
	}
	if !s.state.Play(mv) {
		s.mu.Unlock()
		return fmt.Errorf("illegal move %s", mv)
	}
	s.bot.NotifyMove(mv)

	gameOver := s.state.Winner != game.Empty
	if !gameOver {
		s.thinking = true
	}
	bot, gen := s.bot, s.gen
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	if !gameOver {
		go s.botReply(bot, gen)
	}
	return nil
}

// botReply runs one search for the generation it was scheduled in. A
// Reset mid-search bumps the generation, so the result is dropped
// instead of landing on the fresh game.
func (s *Session) botReply(bot *searcher.MCTS, gen int) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	live := s.state.Copy()
	s.mu.Unlock()

	mv := bot.FindMove(live)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.thinking = false
	if !s.state.Play(mv) {
		s.mu.Unlock()
		return
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// Reset abandons the current game and starts a new one of the same
// size.
func (s *Session) Reset() {
	s.mu.Lock()
	s.state = game.NewGameState(s.state.Size)
	s.bot = searcher.NewMCTS(s.botOpts...)
	s.gen++
	s.thinking = false
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}
