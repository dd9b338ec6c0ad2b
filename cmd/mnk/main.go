package main

/*

m,n,k game match runner

Plays a series of games between two configured agents and prints the summary

*/

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/IlikeChooros/mnk-mcts/internal/config"
	"github.com/IlikeChooros/mnk-mcts/pkg/agent"
	"github.com/IlikeChooros/mnk-mcts/pkg/bench"
	"github.com/IlikeChooros/mnk-mcts/pkg/mcts"
)

func newFactory(ctx context.Context, p config.Player, fallbackName string, logger zerolog.Logger) agent.Factory {
	name := p.Name
	if name == "" {
		name = fallbackName
	}

	if p.Kind == config.KindOnePly {
		return func() agent.Player { return agent.NewOnePlyPlayer(name) }
	}

	opts := []agent.Option{
		agent.WithName(name),
		agent.WithContext(ctx),
		agent.WithLogger(logger.With().Str("agent", name).Logger()),
		agent.WithExploration(p.Exploration),
		agent.WithImmediateWins(p.ImmediateWins),
	}
	if p.Cycles > 0 {
		opts = append(opts, agent.WithLimits(mcts.DefaultLimits().SetCycles(p.Cycles)))
	}
	return func() agent.Player { return agent.NewMCTSPlayer(opts...) }
}

func main() {
	configPath := flag.String("config", "", "path to the YAML config file, the environment is used if empty")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(cfg.Level()).
		With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	arena := bench.NewVersusArena(
		newFactory(ctx, cfg.Player1, "player1", logger),
		newFactory(ctx, cfg.Player2, "player2", logger),
	).
		WithContext(ctx).
		WithLogger(logger).
		Setup(cfg.Board.M, cfg.Board.N, cfg.Board.K, cfg.Match.Timeout(), cfg.Match.Games, cfg.Match.Workers)
	arena.StrictTimeout = cfg.Match.StrictTimeout

	terminal := bench.NewTerminalListener(os.Stdout)
	terminal.ShowMoves = cfg.Match.ShowMoves

	logger.Info().
		Int("m", cfg.Board.M).Int("n", cfg.Board.N).Int("k", cfg.Board.K).
		Int("games", cfg.Match.Games).
		Int("workers", cfg.Match.Workers).
		Dur("timeout", cfg.Match.Timeout()).
		Msg("starting arena")

	summary, err := arena.Run(bench.NewArenaListener(terminal, bench.NewLogListener(logger)))
	if err != nil {
		logger.Error().Err(err).Msg("arena stopped")
	}
	fmt.Print(summary)
	return err
}
