package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hex/game"
	"hex/searcher"
)

func testSession(notify func(StatePayload)) *Session {
	return NewSession(5, notify,
		searcher.WithDuration(5*time.Second),
		searcher.WithEpisodes(30),
		searcher.WithSeed(1))
}

func TestSession(t *testing.T) {
	t.Run("Applies a human move and schedules the bot's reply", func(t *testing.T) {
		snapshots := make(chan StatePayload, 8)
		s := testSession(func(p StatePayload) { snapshots <- p })

		err := s.ApplyHumanMove(game.Move{Row: 2, Col: 2})
		require.NoError(t, err)

		after := <-snapshots
		require.Equal(t, int(game.Red), after.Board[2][2])
		require.True(t, after.Thinking, "Bot search runs after the human move")

		select {
		case reply := <-snapshots:
			require.False(t, reply.Thinking)
			require.Equal(t, 2, reply.MovesPlayed)
			require.Equal(t, int(game.Red), reply.Current, "Turn returns to the human")
		case <-time.After(10 * time.Second):
			t.Fatal("bot never replied")
		}
	})

	t.Run("Rejects a move on an occupied cell", func(t *testing.T) {
		snapshots := make(chan StatePayload, 8)
		s := testSession(func(p StatePayload) { snapshots <- p })

		require.NoError(t, s.ApplyHumanMove(game.Move{Row: 0, Col: 0}))
		<-snapshots // human move
		<-snapshots // bot reply

		err := s.ApplyHumanMove(game.Move{Row: 0, Col: 0})
		require.Error(t, err)
	})

	t.Run("Rejects a second move while the bot is thinking", func(t *testing.T) {
		// The thinking snapshot is delivered before the bot goroutine
		// starts, so a move submitted from the callback always lands
		// mid-search.
		snapshots := make(chan StatePayload, 8)
		errs := make(chan error, 1)
		var s *Session
		submitted := false
		s = testSession(func(p StatePayload) {
			if p.Thinking && !submitted {
				submitted = true
				errs <- s.ApplyHumanMove(game.Move{Row: 3, Col: 3})
			}
			snapshots <- p
		})

		require.NoError(t, s.ApplyHumanMove(game.Move{Row: 1, Col: 1}))
		require.Error(t, <-errs)

		<-snapshots
		<-snapshots
	})

	t.Run("Discards a search that outlives a reset", func(t *testing.T) {
		snapshots := make(chan StatePayload, 8)
		// An effectively unbounded episode cap keeps the search running
		// for the full time budget, so the reset always lands mid-search.
		s := NewSession(5, func(p StatePayload) { snapshots <- p },
			searcher.WithDuration(500*time.Millisecond),
			searcher.WithEpisodes(1<<30),
			searcher.WithSeed(1))

		require.NoError(t, s.ApplyHumanMove(game.Move{Row: 2, Col: 2}))
		<-snapshots // human move, search scheduled

		s.Reset()
		fresh := <-snapshots
		require.Equal(t, 0, fresh.MovesPlayed)
		require.False(t, fresh.Thinking)

		// Let the abandoned search finish.
		time.Sleep(time.Second)
		require.Empty(t, snapshots, "A stale search result must not be broadcast")
		got := s.Snapshot()
		require.Equal(t, 0, got.MovesPlayed, "The fresh game must stay untouched")
		require.Equal(t, int(game.Red), got.Current)
	})

	t.Run("Reset starts a fresh game of the same size", func(t *testing.T) {
		snapshots := make(chan StatePayload, 8)
		s := testSession(func(p StatePayload) { snapshots <- p })

		require.NoError(t, s.ApplyHumanMove(game.Move{Row: 2, Col: 2}))
		<-snapshots
		<-snapshots

		s.Reset()
		fresh := <-snapshots
		require.Equal(t, 5, fresh.Size)
		require.Equal(t, 0, fresh.MovesPlayed)
		require.Equal(t, int(game.Red), fresh.Current)
		require.False(t, fresh.HasLast)
	})
}
