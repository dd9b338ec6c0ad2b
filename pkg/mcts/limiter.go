package mcts

import (
	"context"
)

type StopReason int

const (
	StopNone      StopReason = iota
	StopInterrupt            = 1 // Stopped by user, by calling .SetStop(true) or context cancellation
	StopMovetime             = 2 // Time limit reached
	StopMemory               = 4 // Node limit reached
	StopCycles               = 8 // Cycle limit reached
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopMemory, "Memory"},
		{StopCycles, "Cycles"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

const (
	stopMask   int = StopInterrupt
	timeMask   int = StopMovetime
	memoryMask int = StopMemory
	cyclesMask int = StopCycles
)

type LimiterLike interface {
	SetContext(ctx context.Context)
	// Set the limits
	SetLimits(*Limits)
	// Get the limits
	Limits() *Limits
	// Get elapsed time in ms (from the last 'Reset' call)
	Elapsed() uint32
	// Set the stop signal, will cause to exit search if set to true
	SetStop(bool)
	// Get the stop signal
	Stop() bool
	// Reset the limiter's flags, called on search setup
	Reset()
	// Wheter the tree can grow
	Expand() bool
	// Wheter the search should continue, called between the iterations
	Ok(size, cycles uint32) bool
	// Get the reason why the search was stopped, valid after search ends
	StopReason() StopReason
	// Evaluate stop reason based on current state, and set it internally,
	// called once after the search loop ends
	EvaluateStopReason(size, cycles uint32)
}

type Limiter struct {
	limits     *Limits
	Timer      *timer
	expand     bool
	stop       bool
	areSetMask int
	reason     StopReason
	ctx        context.Context
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits: DefaultLimits(),
		Timer:  newTimer(),
		expand: true,
		ctx:    context.Background(),
	}
}

func (l *Limiter) Reset() {
	l.Timer.Movetime(l.limits.Movetime)
	l.Timer.Reset()
	l.stop = false
	l.expand = true
	l.reason = StopNone

	// Pre-calculate 'are set' limit mask, see 'OkMask' method for more explanation
	l.areSetMask = toMask(l.Timer.IsSet(), 1) |
		toMask(l.limits.Nodes != DefaultNodeLimit, 2) |
		toMask(l.limits.Cycles != DefaultCyclesLimit, 3)
}

func (l *Limiter) EvaluateStopReason(size, cycles uint32) {
	okMask := l.OkMask(size, cycles)
	reason := StopNone

	if okMask&stopMask == stopMask {
		reason |= StopInterrupt
	}

	if okMask&timeMask == timeMask {
		reason |= StopMovetime
	}

	if okMask&memoryMask == memoryMask {
		reason |= StopMemory
	}

	if okMask&cyclesMask == cyclesMask {
		reason |= StopCycles
	}

	l.reason = reason
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.ctx = ctx
}

func (l *Limiter) SetStop(v bool) {
	l.stop = v
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop = true
	default:
	}
	return l.stop
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) Elapsed() uint32 {
	return uint32(l.Timer.Deltatime())
}

func (l *Limiter) Expand() bool {
	return l.expand
}

func toMask(val bool, offset int) int {
	if val {
		return 1 << offset
	}
	return 0
}

func (l *Limiter) LimitMask(size, cycles uint32) int {
	stop := l.Stop()
	// If infinite, only the stop signal counts
	if l.limits.Infinite {
		return toMask(stop, 0)
	}

	limitMask := 0

	limitMask |= toMask(stop, 0)
	limitMask |= toMask(l.Timer.IsEnd(), 1)
	limitMask |= toMask(l.limits.Nodes <= size, 2)
	limitMask |= toMask(l.limits.Cycles <= cycles, 3)

	return limitMask
}

func (l *Limiter) OkMask(size, cycles uint32) int {
	limitMask := l.LimitMask(size, cycles)

	// (time/cycles or any combination of them) AND node limit ->
	// if the node limit is reached, disable expanding of the tree and wait for the other limitation/s
	if (l.areSetMask&memoryMask) == memoryMask && (l.areSetMask&(timeMask|cyclesMask)) != 0 {
		if limitMask&memoryMask == memoryMask {
			l.expand = false
			limitMask ^= memoryMask
		}
	}

	return limitMask
}

func (l *Limiter) Ok(size, cycles uint32) bool {
	return l.OkMask(size, cycles) == 0
}
