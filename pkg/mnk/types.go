package mnk

import "fmt"

// Cell state, also used to identify the players
type Player uint8

const (
	Empty  Player = 0
	First  Player = 1
	Second Player = 2
)

func (p Player) Opponent() Player {
	switch p {
	case First:
		return Second
	case Second:
		return First
	}
	return Empty
}

func (p Player) String() string {
	switch p {
	case First:
		return "X"
	case Second:
		return "O"
	}
	return "."
}

type Status int

const (
	Open Status = iota
	WinFirst
	WinSecond
	Draw
)

func (s Status) Terminal() bool {
	return s != Open
}

// Returns the winning player, or Empty if nobody won (yet)
func (s Status) Winner() Player {
	switch s {
	case WinFirst:
		return First
	case WinSecond:
		return Second
	}
	return Empty
}

func (s Status) String() string {
	switch s {
	case Open:
		return "Open"
	case WinFirst:
		return "WinFirst"
	case WinSecond:
		return "WinSecond"
	case Draw:
		return "Draw"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Win status for given player
func WinOf(p Player) Status {
	if p == Second {
		return WinSecond
	}
	return WinFirst
}

type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// A marked cell together with the player who placed it
type Move struct {
	Cell
	Player Player
}

// Line directions as (row, col) deltas: horizontal, vertical, diagonal, anti-diagonal
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}
