package bench

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/mnk-mcts/pkg/mnk"
)

// Prints the arena progress to a terminal, with colored boards
type TerminalListener struct {
	DefaultListener
	mu  sync.Mutex
	out *termenv.Output
	// print the board after every move, not only at the end of a game
	ShowMoves bool
}

var _ ListenerLike = (*TerminalListener)(nil)

func NewTerminalListener(w io.Writer, opts ...termenv.OutputOption) *TerminalListener {
	return &TerminalListener{out: termenv.NewOutput(w, opts...)}
}

func (tl *TerminalListener) cell(p mnk.Player) string {
	switch p {
	case mnk.First:
		return tl.out.String(p.String()).Foreground(tl.out.Color("9")).Bold().String()
	case mnk.Second:
		return tl.out.String(p.String()).Foreground(tl.out.Color("12")).Bold().String()
	}
	return tl.out.String(p.String()).Faint().String()
}

// Board of the game after given moves, the last one highlighted
func (tl *TerminalListener) renderBoard(m, n int, moves []mnk.Cell) string {
	grid := make([]mnk.Player, m*n)
	for i, c := range moves {
		if c.Row >= 0 && c.Row < m && c.Col >= 0 && c.Col < n {
			grid[c.Row*n+c.Col] = mnk.First
			if i%2 == 1 {
				grid[c.Row*n+c.Col] = mnk.Second
			}
		}
	}

	last := mnk.Cell{Row: -1, Col: -1}
	if len(moves) > 0 {
		last = moves[len(moves)-1]
	}

	builder := strings.Builder{}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			if j > 0 {
				builder.WriteByte(' ')
			}
			s := tl.cell(grid[i*n+j])
			if last.Row == i && last.Col == j {
				s = tl.out.String(grid[i*n+j].String()).Reverse().String()
			}
			builder.WriteString(s)
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

func (tl *TerminalListener) OnMoveMade(info VersusWorkerInfo) {
	if !tl.ShowMoves {
		return
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()
	fmt.Fprintf(tl.out, "[worker %d] move %d\n%s\n", info.WorkerID, info.GameMoveNum, tl.renderBoard(info.M, info.N, info.Moves))
}

func (tl *TerminalListener) OnFinishedGame(info VersusWorkerInfo) {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	winner := "draw"
	switch info.Result {
	case VersusPl1Win:
		winner = info.P1Name
	case VersusPl2Win:
		winner = info.P2Name
	}

	fmt.Fprintf(tl.out, "[worker %d] game %d/%d finished after %d moves, winner: %s\n%s\n",
		info.WorkerID, info.FinishedGames, info.NGames, info.GameMoveNum,
		tl.out.String(winner).Bold(), tl.renderBoard(info.M, info.N, info.Moves))
}

func (tl *TerminalListener) Summary(info VersusSummaryInfo) {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	header := tl.out.String(fmt.Sprintf("%s vs %s", info.P1Name, info.P2Name)).Bold().Underline()
	fmt.Fprintf(tl.out, "%s\n", header)
	fmt.Fprintf(tl.out, "games: %d (workers: %d)\n", info.TotalGames, info.Workers)
	fmt.Fprintf(tl.out, "%s wins: %s\n", info.P1Name, tl.out.String(fmt.Sprint(info.P1Wins)).Foreground(tl.out.Color("10")))
	fmt.Fprintf(tl.out, "%s wins: %s\n", info.P2Name, tl.out.String(fmt.Sprint(info.P2Wins)).Foreground(tl.out.Color("10")))
	fmt.Fprintf(tl.out, "draws: %d, forfeits: %d\n", info.Draws, info.Forfeits)
	fmt.Fprintf(tl.out, "first to move wins: %d, second to move wins: %d\n", info.FirstToMoveWins, info.SecondToMoveWins)
}
