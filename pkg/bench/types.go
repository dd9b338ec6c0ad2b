package bench

import (
	"sync/atomic"

	"github.com/IlikeChooros/mnk-mcts/pkg/mnk"
)

type VersusMatchResult int

const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
	VersusDraw   VersusMatchResult = 0
)

func (r VersusMatchResult) String() string {
	switch r {
	case VersusPl1Win:
		return "player1"
	case VersusPl2Win:
		return "player2"
	}
	return "draw"
}

type VersusArenaStats struct {
	p1Wins           uint32
	p2Wins           uint32
	draws            uint32
	firstToMoveWins  uint32
	secondToMoveWins uint32
}

func (vas *VersusArenaStats) Total() int {
	return vas.P1Wins() + vas.P2Wins() + vas.Draws()
}

func (vas *VersusArenaStats) P1Wins() int {
	return int(atomic.LoadUint32(&vas.p1Wins))
}

func (vas *VersusArenaStats) P2Wins() int {
	return int(atomic.LoadUint32(&vas.p2Wins))
}

func (vas *VersusArenaStats) Draws() int {
	return int(atomic.LoadUint32(&vas.draws))
}

func (vas *VersusArenaStats) FirstToMoveWins() int {
	return int(atomic.LoadUint32(&vas.firstToMoveWins))
}

func (vas *VersusArenaStats) SecondToMoveWins() int {
	return int(atomic.LoadUint32(&vas.secondToMoveWins))
}

// Count a single game, safe to call from many workers
func (vas *VersusArenaStats) record(outcome GameOutcome, p1WentFirst bool) VersusMatchResult {
	switch outcome.Status.Winner() {
	case mnk.First:
		atomic.AddUint32(&vas.firstToMoveWins, 1)
	case mnk.Second:
		atomic.AddUint32(&vas.secondToMoveWins, 1)
	}

	result := toAgentResult(outcome, p1WentFirst)
	switch result {
	case VersusPl1Win:
		atomic.AddUint32(&vas.p1Wins, 1)
	case VersusPl2Win:
		atomic.AddUint32(&vas.p2Wins, 1)
	default:
		atomic.AddUint32(&vas.draws, 1)
	}
	return result
}

type VersusWorkerInfo struct {
	WorkerID      int
	NGames        int
	FinishedGames int
	GameMoveNum   int
	// board size of the game in progress
	M, N   int
	Moves  []mnk.Cell
	Status mnk.Status
	Result VersusMatchResult
	P1Name string
	P2Name string
	// whether player 1 moves first in the game in progress
	P1First bool
}

type VersusSummaryInfo struct {
	TotalGames       int    `json:"total_games"`
	P1Wins           int    `json:"player1_wins"`
	P2Wins           int    `json:"player2_wins"`
	FirstToMoveWins  int    `json:"first_to_move_wins"`
	SecondToMoveWins int    `json:"second_to_move_wins"`
	Draws            int    `json:"draws"`
	Forfeits         int    `json:"forfeits"`
	Workers          int    `json:"workers"`
	P1Name           string `json:"player1_name"`
	P2Name           string `json:"player2_name"`
}

// Result of a single game, as seen by the referee
type GameOutcome struct {
	Status mnk.Status
	Moves  []mnk.Cell
	// side that lost by an illegal move or an error, Empty if the game was played out
	Forfeit mnk.Player
	// reason of the forfeit
	Err error
}

// maps a game outcome to which agent won, given player assignments
func toAgentResult(outcome GameOutcome, p1WentFirst bool) VersusMatchResult {
	winner := outcome.Status.Winner()
	if winner == mnk.Empty {
		return VersusDraw
	}

	if p1WentFirst == (winner == mnk.First) {
		return VersusPl1Win
	}
	return VersusPl2Win
}
