package game

// CellState is the content of a single board cell, or the identity of a
// player when used as a side.
type CellState uint8

const (
	Empty CellState = iota
	Red             // connects the top edge to the bottom edge
	Blue            // connects the left edge to the right edge
)

func (c CellState) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return "empty"
	}
}

// NeighborOffsets are the six adjacent cells of (r,c) on the hex grid,
// expressed as row/column deltas.
var NeighborOffsets = [6][2]int{{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}}

// Opponent returns the other player.
func Opponent(p CellState) CellState {
	if p == Red {
		return Blue
	}
	return Red
}

// GameState represents the dynamic state of one Hex game: the board, the
// player to move, the winner (Empty while the game is running) and the
// last move played. The UI and the searcher read the fields directly; all
// mutation goes through Play and Reset.
type GameState struct {
	Size        int
	Cells       []CellState // row-major, Size*Size
	Current     CellState
	Winner      CellState
	LastMove    Move
	HasLast     bool
	MovesPlayed int
}

// NewGameState returns a fresh game on an empty size x size board with Red
// to move.
func NewGameState(size int) *GameState {
	gs := &GameState{Size: size}
	gs.Reset()
	return gs
}

// Reset clears the board and restarts the game.
func (gs *GameState) Reset() {
	gs.Cells = make([]CellState, gs.Size*gs.Size)
	gs.Current = Red
	gs.Winner = Empty
	gs.LastMove = Move{}
	gs.HasLast = false
	gs.MovesPlayed = 0
}

// InBounds reports whether (r,c) lies on the board.
func (gs *GameState) InBounds(r, c int) bool {
	return r >= 0 && r < gs.Size && c >= 0 && c < gs.Size
}

// At returns the content of cell (r,c). The caller is responsible for
// bounds.
func (gs *GameState) At(r, c int) CellState {
	return gs.Cells[r*gs.Size+c]
}

// LegalMoves returns every empty cell, or nothing once the game has a
// winner.
func (gs *GameState) LegalMoves() []Move {
	if gs.Winner != Empty {
		return nil
	}
	moves := make([]Move, 0, gs.Size*gs.Size-gs.MovesPlayed)
	for r := 0; r < gs.Size; r++ {
		for c := 0; c < gs.Size; c++ {
			if gs.At(r, c) == Empty {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

// Play attempts mv for the current player. It returns false without
// touching the state when the game is already over, mv is out of bounds,
// or the cell is occupied. Otherwise it places the stone, records it as
// the last move, and either sets the winner or passes the turn.
func (gs *GameState) Play(mv Move) bool {
	if gs.Winner != Empty {
		return false
	}
	if !gs.InBounds(mv.Row, mv.Col) {
		return false
	}
	idx := mv.Row*gs.Size + mv.Col
	if gs.Cells[idx] != Empty {
		return false
	}

	p := gs.Current
	gs.Cells[idx] = p
	gs.LastMove = mv
	gs.HasLast = true
	gs.MovesPlayed++

	if gs.HasWon(p) {
		gs.Winner = p
	} else {
		gs.Current = Opponent(p)
	}
	return true
}

// HasWon reports whether player has an unbroken chain of stones between
// their two edges. It is a breadth-first search seeded from the player's
// start edge (top row for Red, left column for Blue) over same-player
// adjacency. Hex admits no draws, so the engine never checks both sides.
func (gs *GameState) HasWon(player CellState) bool {
	n := gs.Size
	visited := make([]bool, n*n)
	queue := make([]int, 0, n)

	if player == Blue {
		for r := 0; r < n; r++ {
			idx := r * n
			if gs.Cells[idx] == Blue {
				visited[idx] = true
				queue = append(queue, idx)
			}
		}
	} else {
		for c := 0; c < n; c++ {
			if gs.Cells[c] == Red {
				visited[c] = true
				queue = append(queue, c)
			}
		}
	}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		r, c := idx/n, idx%n

		if player == Blue && c == n-1 {
			return true
		}
		if player == Red && r == n-1 {
			return true
		}

		for _, d := range NeighborOffsets {
			rr, cc := r+d[0], c+d[1]
			if rr < 0 || rr >= n || cc < 0 || cc >= n {
				continue
			}
			next := rr*n + cc
			if !visited[next] && gs.Cells[next] == player {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// Copy returns a fully independent deep copy. The searcher explores
// hypothetical futures on copies and must never leak a mutation back into
// the live game.
func (gs *GameState) Copy() *GameState {
	cells := make([]CellState, len(gs.Cells))
	copy(cells, gs.Cells)

	return &GameState{
		Size:        gs.Size,
		Cells:       cells,
		Current:     gs.Current,
		Winner:      gs.Winner,
		LastMove:    gs.LastMove,
		HasLast:     gs.HasLast,
		MovesPlayed: gs.MovesPlayed,
	}
}
