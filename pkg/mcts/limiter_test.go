package mcts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterSingleLimits(t *testing.T) {
	limiter := LimiterLike(NewLimiter())
	limiter.Reset()

	assert.True(t, limiter.Ok(1000000, 1000000), "default limiter should search infinitely")
	assert.True(t, limiter.Expand())

	limiter.SetLimits(DefaultLimits().SetNodes(100))
	limiter.Reset()
	assert.False(t, limiter.Ok(101, 1), "over the node limit")
	assert.True(t, limiter.Ok(99, 1), "under the node limit")

	limiter.SetLimits(DefaultLimits().SetCycles(10))
	limiter.Reset()
	assert.False(t, limiter.Ok(1, 10))
	assert.True(t, limiter.Ok(1, 9))

	limiter.SetLimits(DefaultLimits().SetMovetime(50))
	limiter.Reset()
	assert.True(t, limiter.Ok(1, 1))
	time.Sleep(time.Millisecond * 51)
	assert.False(t, limiter.Ok(1, 1))

	limiter.Reset()
	assert.True(t, limiter.Ok(1, 1), "reset restarts the timer")
}

func TestLimiterZeroMovetime(t *testing.T) {
	limiter := NewLimiter()
	limiter.SetLimits(DefaultLimits().SetMovetime(0))
	limiter.Reset()
	assert.False(t, limiter.Ok(1, 0))

	limiter.EvaluateStopReason(1, 0)
	assert.Equal(t, StopMovetime, int(limiter.StopReason()))
}

func TestLimiterCombos(t *testing.T) {
	limiter := LimiterLike(NewLimiter())

	// Nodes + cycles limit, if the tree is full, wait for 'cycles' and disable expanding
	limiter.SetLimits(DefaultLimits().SetNodes(10).SetCycles(100))
	limiter.Reset()
	assert.True(t, limiter.Ok(9, 1))
	assert.True(t, limiter.Expand())

	assert.True(t, limiter.Ok(10, 1))
	assert.False(t, limiter.Expand())
	assert.False(t, limiter.Ok(10, 100))

	limiter.EvaluateStopReason(10, 100)
	assert.Equal(t, StopCycles, int(limiter.StopReason()))

	// Time + nodes limit
	limiter.SetLimits(DefaultLimits().SetMovetime(50).SetNodes(10))
	limiter.Reset()
	assert.True(t, limiter.Expand(), "reset enables expanding")
	assert.True(t, limiter.Ok(11, 1))
	assert.False(t, limiter.Expand())

	time.Sleep(time.Millisecond * 51)
	assert.False(t, limiter.Ok(11, 1))
}

func TestLimiterStop(t *testing.T) {
	limiter := NewLimiter()
	limiter.SetLimits(DefaultLimits().SetCycles(100))
	limiter.Reset()

	limiter.SetStop(true)
	assert.False(t, limiter.Ok(1, 1))
	limiter.EvaluateStopReason(1, 1)
	assert.Equal(t, StopInterrupt, int(limiter.StopReason()))
	assert.Equal(t, "Interrupt", limiter.StopReason().String())

	// Reset clears the stop signal, but a cancelled context stops again
	ctx, cancel := context.WithCancel(context.Background())
	limiter.SetContext(ctx)
	limiter.Reset()
	assert.True(t, limiter.Ok(1, 1))
	cancel()
	assert.False(t, limiter.Ok(1, 1))
}

func TestStopReasonString(t *testing.T) {
	assert.Equal(t, "None", StopNone.String())
	assert.Equal(t, "Movetime|Cycles", StopReason(StopMovetime|StopCycles).String())
}

func TestLimitsString(t *testing.T) {
	limits := DefaultLimits().SetCycles(5)
	assert.Contains(t, limits.String(), `"Cycles":5`)
	assert.Contains(t, limits.String(), `"Infinite":false`)
}
