// Package tictactoe implements the game.Rules of 3-in-a-row on a 3x3 board.
package tictactoe

import (
	"fmt"
	"strings"

	"uct/game"
)

const Size = 9

// Cell is the marker of one board cell.
type Cell int8

const (
	Empty Cell = iota
	X          // game.PlayerOne
	O          // game.PlayerTwo
)

// CellOf returns the marker placed by player.
func CellOf(player game.Player) Cell {
	if player == game.PlayerOne {
		return X
	}
	return O
}

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// Board is a row-major 3x3 board. It is a value: copies never share cells.
//
//	0 | 1 | 2
//	---+---+---
//	3 | 4 | 5
//	---+---+---
//	6 | 7 | 8
type Board [Size]Cell

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// Count returns the number of cells holding c.
func (b Board) Count(c Cell) int {
	n := 0
	for _, cell := range b {
		if cell == c {
			n++
		}
	}
	return n
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}
		fmt.Fprintf(&sb, " %s | %s | %s\n", b[row*3], b[row*3+1], b[row*3+2])
	}
	return sb.String()
}

// ParseBoard reads a board from 9 cell characters: '.', '-' or '_' for empty,
// 'X' and 'O' (any case) for the players. Whitespace and '|' are ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	i := 0
	for _, r := range s {
		var c Cell
		switch r {
		case ' ', '\t', '\n', '\r', '|':
			continue
		case '.', '-', '_':
			c = Empty
		case 'x', 'X':
			c = X
		case 'o', 'O':
			c = O
		default:
			return Board{}, fmt.Errorf("%w: unexpected cell %q", game.ErrInvalidState, r)
		}
		if i >= Size {
			return Board{}, fmt.Errorf("%w: more than %d cells", game.ErrInvalidState, Size)
		}
		b[i] = c
		i++
	}
	if i != Size {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", game.ErrInvalidState, i, Size)
	}
	return b, nil
}

// FromCells converts the integer encoding -1 (empty), 0 (X) and 1 (O).
func FromCells(cells []int) (Board, error) {
	var b Board
	if len(cells) != Size {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", game.ErrInvalidState, len(cells), Size)
	}
	for i, v := range cells {
		switch v {
		case -1:
			b[i] = Empty
		case 0:
			b[i] = X
		case 1:
			b[i] = O
		default:
			return Board{}, fmt.Errorf("%w: cell %d has value %d", game.ErrInvalidState, i, v)
		}
	}
	return b, nil
}

// Rules is the stateless tic-tac-toe rule set. Actions are cell indices.
type Rules struct{}

var _ game.Rules[Board, int] = Rules{}

func (Rules) LegalActions(b Board) []int {
	actions := make([]int, 0, Size)
	for i, c := range b {
		if c == Empty {
			actions = append(actions, i)
		}
	}
	return actions
}

func (Rules) HasLegalActions(b Board) bool {
	for _, c := range b {
		if c == Empty {
			return true
		}
	}
	return false
}

func (r Rules) Winner(b Board) game.Outcome {
	for _, line := range lines {
		c := b[line[0]]
		if c != Empty && c == b[line[1]] && c == b[line[2]] {
			if c == X {
				return game.PlayerOneWins
			}
			return game.PlayerTwoWins
		}
	}
	if !r.HasLegalActions(b) {
		return game.Draw
	}
	return game.InProgress
}

func (Rules) OtherPlayer(player game.Player) game.Player {
	if player == game.PlayerOne {
		return game.PlayerTwo
	}
	return game.PlayerOne
}

func (Rules) Apply(b Board, action int, player game.Player) (Board, error) {
	if action < 0 || action >= Size {
		return b, fmt.Errorf("%w: cell %d out of range", game.ErrInvalidAction, action)
	}
	if b[action] != Empty {
		return b, fmt.Errorf("%w: cell %d is occupied", game.ErrInvalidAction, action)
	}
	if !player.Valid() {
		return b, fmt.Errorf("%w: unknown %s", game.ErrInvalidAction, player)
	}
	b[action] = CellOf(player)
	return b, nil
}

// Validate rejects unknown markers and boards no sequence of alternating
// moves can reach: marker counts more than one apart, or a line for both players.
func (Rules) Validate(b Board) error {
	for i, c := range b {
		if c != Empty && c != X && c != O {
			return fmt.Errorf("%w: cell %d has marker %d", game.ErrInvalidState, i, int8(c))
		}
	}
	if x, o := b.Count(X), b.Count(O); x-o > 1 || o-x > 1 {
		return fmt.Errorf("%w: %d X and %d O markers", game.ErrInvalidState, x, o)
	}
	if hasLine(b, X) && hasLine(b, O) {
		return fmt.Errorf("%w: both players have a line", game.ErrInvalidState)
	}
	return nil
}

func hasLine(b Board, c Cell) bool {
	for _, line := range lines {
		if b[line[0]] == c && b[line[1]] == c && b[line[2]] == c {
			return true
		}
	}
	return false
}
