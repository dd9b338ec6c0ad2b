package agent

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/IlikeChooros/mnk-mcts/pkg/mcts"
	"github.com/IlikeChooros/mnk-mcts/pkg/mnk"
)

type Option func(*MCTSPlayer)

func WithLogger(logger zerolog.Logger) Option {
	return func(p *MCTSPlayer) {
		p.logger = logger
	}
}

// Fixed search limits, used instead of the time budget derived from the timeout
func WithLimits(limits *mcts.Limits) Option {
	return func(p *MCTSPlayer) {
		p.limits = limits
	}
}

// Attach search statistics callbacks, invoked during every search
func WithListener(listener mcts.StatsListener[mnk.Cell]) Option {
	return func(p *MCTSPlayer) {
		p.listener = &listener
	}
}

// Exploration constant of the UCB1 selection
func WithExploration(c float64) Option {
	return func(p *MCTSPlayer) {
		p.exploration = c
	}
}

func WithName(name string) Option {
	return func(p *MCTSPlayer) {
		p.name = name
	}
}

// Play a winning cell right away, without searching
func WithImmediateWins(enabled bool) Option {
	return func(p *MCTSPlayer) {
		p.immediateWins = enabled
	}
}

// Every search stops early once ctx is done
func WithContext(ctx context.Context) Option {
	return func(p *MCTSPlayer) {
		p.ctx = ctx
	}
}
