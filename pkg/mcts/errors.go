package mcts

import "errors"

var (
	ErrSearchAborted = errors.New("search aborted")
	ErrNoMoves       = errors.New("expanded node has no moves")
)
