package mnk

import (
	"fmt"
	"strings"
)

type historyState struct {
	move Move
	// index the cell occupied in the free set before it was marked
	slot int
}

// M x N board, where K aligned cells win the game.
// The board keeps track of whose turn it is, but marking a cell does not
// advance the turn; callers use TogglePlayer for that.
type Board struct {
	M int
	N int
	K int

	grid    []Player
	free    []Cell
	freeIdx []int // position of each cell in 'free', -1 if marked
	history []historyState
	status  Status
	turn    Player
	owner   Player
}

func NewBoard(rows, cols, k int) (*Board, error) {
	if rows < 1 || cols < 1 || k < 1 {
		return nil, fmt.Errorf("%w: m=%d n=%d k=%d", ErrInvalidSize, rows, cols, k)
	}

	b := &Board{
		M:       rows,
		N:       cols,
		K:       k,
		grid:    make([]Player, rows*cols),
		free:    make([]Cell, 0, rows*cols),
		freeIdx: make([]int, rows*cols),
		history: make([]historyState, 0, rows*cols),
		owner:   First,
	}
	b.Reset()
	return b, nil
}

// Clear the board, first player is to move
func (b *Board) Reset() {
	b.free = b.free[:0]
	for i := 0; i < b.M; i++ {
		for j := 0; j < b.N; j++ {
			idx := i*b.N + j
			b.grid[idx] = Empty
			b.freeIdx[idx] = len(b.free)
			b.free = append(b.free, Cell{i, j})
		}
	}
	b.history = b.history[:0]
	b.status = Open
	b.turn = First
}

func (b *Board) Clone() *Board {
	clone := *b
	clone.grid = append([]Player(nil), b.grid...)
	clone.free = append(make([]Cell, 0, cap(b.free)), b.free...)
	clone.freeIdx = append([]int(nil), b.freeIdx...)
	clone.history = append(make([]historyState, 0, cap(b.history)), b.history...)
	return &clone
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.M && col >= 0 && col < b.N
}

// State of the cell, Empty if it's out of bounds
func (b *Board) CellState(row, col int) Player {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.grid[row*b.N+col]
}

func (b *Board) IsFree(row, col int) bool {
	return b.InBounds(row, col) && b.grid[row*b.N+col] == Empty
}

func (b *Board) Status() Status {
	return b.status
}

// Player that marks the next cell
func (b *Board) Turn() Player {
	return b.turn
}

func (b *Board) SetTurn(p Player) {
	b.turn = p
}

func (b *Board) TogglePlayer() {
	b.turn = b.turn.Opponent()
}

// Player whose cells count as 'own' for OwnHeuristic
func (b *Board) Owner() Player {
	return b.owner
}

func (b *Board) SetOwner(p Player) {
	b.owner = p
}

// Number of free cells
func (b *Board) Free() int {
	return len(b.free)
}

// Number of marked cells
func (b *Board) Marked() int {
	return len(b.history)
}

func (b *Board) FreeCells() []Cell {
	return append([]Cell(nil), b.free...)
}

// Marked cells in the order they were played
func (b *Board) MarkedCells() []Move {
	moves := make([]Move, len(b.history))
	for i := range b.history {
		moves[i] = b.history[i].move
	}
	return moves
}

// Last marked cell, false if the board is empty
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1].move, true
}

func (b *Board) MarkCell(c Cell) (Status, error) {
	return b.Mark(c.Row, c.Col)
}

// Marks the cell for the player to move and returns the resulting game status
func (b *Board) Mark(row, col int) (Status, error) {
	if b.status != Open {
		return b.status, ErrGameEnded
	}
	if !b.InBounds(row, col) {
		return b.status, fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfBounds, row, col, b.M, b.N)
	}

	idx := row*b.N + col
	if b.grid[idx] != Empty {
		return b.status, fmt.Errorf("%w: (%d,%d)", ErrCellOccupied, row, col)
	}

	// Swap-remove from the free set
	slot := b.freeIdx[idx]
	last := b.free[len(b.free)-1]
	b.free[slot] = last
	b.freeIdx[last.Row*b.N+last.Col] = slot
	b.free = b.free[:len(b.free)-1]
	b.freeIdx[idx] = -1

	b.grid[idx] = b.turn
	b.history = append(b.history, historyState{
		move: Move{Cell: Cell{row, col}, Player: b.turn},
		slot: slot,
	})

	if b.isWinningCell(row, col) {
		b.status = WinOf(b.turn)
	} else if len(b.free) == 0 {
		b.status = Draw
	}

	return b.status, nil
}

// Undo the last mark, the turn goes back to the player who placed it
func (b *Board) Unmark() error {
	if len(b.history) == 0 {
		return ErrNoHistory
	}

	hist := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	c := hist.move.Cell
	idx := c.Row*b.N + c.Col

	// Reverse the swap-remove, so the free set enumerates in the same order as before
	if hist.slot == len(b.free) {
		b.free = append(b.free, c)
	} else {
		moved := b.free[hist.slot]
		b.free = append(b.free, moved)
		b.freeIdx[moved.Row*b.N+moved.Col] = len(b.free) - 1
		b.free[hist.slot] = c
	}
	b.freeIdx[idx] = hist.slot

	b.grid[idx] = Empty
	b.turn = hist.move.Player
	b.status = Open
	return nil
}

// Length of the same-owner run through (row, col) along direction d, the cell itself included
func (b *Board) runLength(row, col int, d [2]int) int {
	s := b.grid[row*b.N+col]
	n := 1
	for k := 1; b.InBounds(row-k*d[0], col-k*d[1]) && b.grid[(row-k*d[0])*b.N+col-k*d[1]] == s; k++ {
		n++
	}
	for k := 1; b.InBounds(row+k*d[0], col+k*d[1]) && b.grid[(row+k*d[0])*b.N+col+k*d[1]] == s; k++ {
		n++
	}
	return n
}

// Check winning state from cell (row, col)
func (b *Board) isWinningCell(row, col int) bool {
	if b.grid[row*b.N+col] == Empty {
		return false
	}

	for _, d := range directions {
		if b.runLength(row, col, d) >= b.K {
			return true
		}
	}
	return false
}

func (b *Board) String() string {
	builder := strings.Builder{}
	for i := 0; i < b.M; i++ {
		for j := 0; j < b.N; j++ {
			if j > 0 {
				builder.WriteByte(' ')
			}
			builder.WriteString(b.grid[i*b.N+j].String())
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
