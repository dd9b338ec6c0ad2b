package bench

import (
	"github.com/rs/zerolog"
)

// Receives the arena progress. Workers call it concurrently,
// implementations must be safe for that.
type ListenerLike interface {
	OnGameStart(info VersusWorkerInfo)
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
	Summary(info VersusSummaryInfo)
}

type DefaultListener struct{}

func (DefaultListener) OnGameStart(VersusWorkerInfo)    {}
func (DefaultListener) OnMoveMade(VersusWorkerInfo)     {}
func (DefaultListener) OnFinishedGame(VersusWorkerInfo) {}
func (DefaultListener) OnFinishedWork(VersusWorkerInfo) {}
func (DefaultListener) Summary(VersusSummaryInfo)       {}

// Writes finished games and the summary as structured log entries
type LogListener struct {
	DefaultListener
	logger zerolog.Logger
}

func NewLogListener(logger zerolog.Logger) *LogListener {
	return &LogListener{logger: logger}
}

func (l *LogListener) OnFinishedGame(info VersusWorkerInfo) {
	l.logger.Info().
		Int("worker", info.WorkerID).
		Int("game", info.FinishedGames).
		Int("games", info.NGames).
		Int("moves", info.GameMoveNum).
		Stringer("status", info.Status).
		Stringer("winner", info.Result).
		Bool("p1_first", info.P1First).
		Msg("game finished")
}

func (l *LogListener) OnFinishedWork(info VersusWorkerInfo) {
	l.logger.Debug().
		Int("worker", info.WorkerID).
		Int("games", info.NGames).
		Msg("worker finished")
}

func (l *LogListener) Summary(info VersusSummaryInfo) {
	l.logger.Info().
		Int("total", info.TotalGames).
		Str("p1", info.P1Name).
		Int("p1_wins", info.P1Wins).
		Str("p2", info.P2Name).
		Int("p2_wins", info.P2Wins).
		Int("draws", info.Draws).
		Int("forfeits", info.Forfeits).
		Msg("arena finished")
}
