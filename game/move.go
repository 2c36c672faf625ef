package game

import "fmt"

// Move is a single cell coordinate. It is a plain comparable value so it
// can key the searcher's child maps.
type Move struct {
	Row int
	Col int
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}
