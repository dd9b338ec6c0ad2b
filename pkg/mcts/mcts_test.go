package mcts

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Move int

// A take-away game used for testing: players remove 1 or 2 stones from
// the pile, whoever takes the last stone wins. The searching side moves first.
type NimOps struct {
	pile  int
	taken []int
	rand  *rand.Rand
	// if set, Rollout fails with it
	err error
}

func NewNimOps(pile int) *NimOps {
	return &NimOps{pile: pile, rand: rand.New(rand.NewSource(42))}
}

func (n *NimOps) Traverse(m Move) (bool, error) {
	if int(m) < 1 || int(m) > 2 || int(m) > n.pile {
		return false, errors.New("illegal move")
	}
	n.pile -= int(m)
	n.taken = append(n.taken, int(m))
	return n.pile == 0, nil
}

func (n *NimOps) BackTraverse() error {
	if len(n.taken) == 0 {
		return errors.New("nothing to undo")
	}
	n.pile += n.taken[len(n.taken)-1]
	n.taken = n.taken[:len(n.taken)-1]
	return nil
}

func (n *NimOps) Moves() []Move {
	moves := make([]Move, 0, 2)
	for m := 1; m <= min(2, n.pile); m++ {
		moves = append(moves, Move(m))
	}
	return moves
}

func (n *NimOps) Rollout() (Reward, error) {
	if n.err != nil {
		return RewardLoss, n.err
	}

	played := 0
	for n.pile > 0 {
		m := 1 + n.rand.Intn(min(2, n.pile))
		n.pile -= m
		n.taken = append(n.taken, m)
		played++
	}

	// odd number of moves from the root means the searching side took the last stone
	result := RewardLoss
	if len(n.taken)%2 == 1 {
		result = RewardWin
	}

	for ; played > 0; played-- {
		_ = n.BackTraverse()
	}
	return result, nil
}

func searchNim(t *testing.T, pile int, limits *Limits) (*MCTS[Move], *NimOps) {
	t.Helper()
	tree := NewMCTS[Move](UCB1[Move])
	tree.SetLimits(limits)
	ops := NewNimOps(pile)
	require.NoError(t, tree.Search(ops))
	return tree, ops
}

func TestSearchFindsWinningMove(t *testing.T) {
	// Leaving a multiple of 3 wins
	for pile, want := range map[int]Move{4: 1, 5: 2, 7: 1} {
		tree, _ := searchNim(t, pile, DefaultLimits().SetCycles(3000))
		move, ok := tree.RootMove()
		require.True(t, ok)
		assert.Equal(t, want, move, "pile %d", pile)
	}
}

func TestSearchRestoresOperations(t *testing.T) {
	_, ops := searchNim(t, 6, DefaultLimits().SetCycles(500))
	assert.Equal(t, 6, ops.pile)
	assert.Empty(t, ops.taken)
}

func TestSearchCyclesLimit(t *testing.T) {
	tree, _ := searchNim(t, 10, DefaultLimits().SetCycles(100))
	assert.Equal(t, 100, tree.Cycles())
	assert.Equal(t, StopCycles, int(tree.StopReason()))
	// every iteration adds VisitWeight to the root
	assert.Equal(t, int32(100)*VisitWeight, tree.Root.N())
	assert.Equal(t, tree.Count(), int(tree.Size()))
	assert.Greater(t, tree.MaxDepth(), 1)
}

func TestSearchNodeLimit(t *testing.T) {
	tree, _ := searchNim(t, 12, DefaultLimits().SetNodes(20))
	assert.GreaterOrEqual(t, tree.Size(), uint32(20))
	// at most one expansion past the limit
	assert.LessOrEqual(t, tree.Size(), uint32(22))
	assert.NotZero(t, tree.StopReason()&StopMemory)
}

func TestSearchNodeAndCyclesLimit(t *testing.T) {
	tree, _ := searchNim(t, 12, DefaultLimits().SetNodes(20).SetCycles(1000))
	// node limit only stops the tree from growing
	assert.Equal(t, 1000, tree.Cycles())
	assert.LessOrEqual(t, tree.Size(), uint32(22))
	assert.False(t, tree.Limiter.Expand())
}

func TestSearchTerminalRoot(t *testing.T) {
	tree := NewMCTS[Move](nil)
	tree.Root.SetTerminal()
	tree.SetLimits(DefaultLimits().SetCycles(100))
	require.NoError(t, tree.Search(NewNimOps(0)))
	assert.Zero(t, tree.Cycles())
	assert.Zero(t, tree.Root.Len())

	_, ok := tree.RootMove()
	assert.False(t, ok)
}

func TestSearchContextCancel(t *testing.T) {
	tree := NewMCTS[Move](nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tree.Limiter.SetContext(ctx)

	require.NoError(t, tree.Search(NewNimOps(10)))
	assert.Zero(t, tree.Cycles())
	assert.Equal(t, StopInterrupt, int(tree.StopReason()))
}

func TestSearchStopFromListener(t *testing.T) {
	tree := NewMCTS[Move](nil)
	tree.StatsListener().OnCycle(func(stats ListenerTreeStats[Move]) {
		if stats.Cycles == 50 {
			tree.Stop()
		}
	})

	require.NoError(t, tree.Search(NewNimOps(10)))
	assert.Equal(t, 50, tree.Cycles())
	assert.Equal(t, StopInterrupt, int(tree.StopReason()))
}

func TestSearchAborted(t *testing.T) {
	boom := errors.New("boom")
	ops := NewNimOps(5)
	ops.err = boom

	tree := NewMCTS[Move](nil)
	tree.SetLimits(DefaultLimits().SetCycles(10))
	err := tree.Search(ops)
	assert.ErrorIs(t, err, ErrSearchAborted)
	assert.ErrorIs(t, err, boom)
}

func TestSearchWithListener(t *testing.T) {
	tree := NewMCTS[Move](nil)
	tree.SetLimits(DefaultLimits().SetCycles(100))

	cycles, stops := 0, 0
	var last ListenerTreeStats[Move]
	listener := NewStatsListener[Move]()
	listener.
		OnCycle(func(ListenerTreeStats[Move]) { cycles++ }).
		SetCycleInterval(10).
		OnStop(func(stats ListenerTreeStats[Move]) {
			stops++
			last = stats
		})
	tree.SetListener(listener)

	require.NoError(t, tree.Search(NewNimOps(8)))
	assert.Equal(t, 10, cycles)
	assert.Equal(t, 1, stops)
	assert.Equal(t, 100, last.Cycles)
	assert.Equal(t, StopCycles, int(last.StopReason))
	assert.NotEmpty(t, last.Pv)
	assert.Equal(t, last.Pv[0], last.BestMove)
	assert.Positive(t, last.Visits)
}

func TestPv(t *testing.T) {
	tree, _ := searchNim(t, 6, DefaultLimits().SetCycles(2000))
	pv := tree.Pv()
	require.NotEmpty(t, pv)

	move, _ := tree.RootMove()
	assert.Equal(t, move, pv[0])

	// the line can't take more stones than there are
	total := 0
	for _, m := range pv {
		total += int(m)
	}
	assert.LessOrEqual(t, total, 6)
}

func TestMakeMove(t *testing.T) {
	tree, _ := searchNim(t, 10, DefaultLimits().SetCycles(2000))

	move, ok := tree.RootMove()
	require.True(t, ok)
	child := tree.Root.ChildByMove(move)
	visits, rewards := child.N(), child.Q()
	size := tree.Size()

	assert.False(t, tree.MakeMove(Move(3)))
	assert.Equal(t, size, tree.Size())

	require.True(t, tree.MakeMove(move))
	assert.Same(t, child, tree.Root)
	assert.Nil(t, tree.Root.Parent)
	assert.Equal(t, visits, tree.Root.N())
	assert.Equal(t, rewards, tree.Root.Q())
	assert.Less(t, tree.Size(), size)
	assert.Equal(t, tree.Count(), int(tree.Size()))

	// The tree can be searched again from the new root
	ops := NewNimOps(10 - int(move))
	tree.SetLimits(DefaultLimits().SetCycles(100))
	require.NoError(t, tree.Search(ops))
	assert.Equal(t, 10-int(move), ops.pile)
}

func TestReset(t *testing.T) {
	tree, _ := searchNim(t, 6, DefaultLimits().SetCycles(100))
	tree.Reset()
	assert.Equal(t, uint32(1), tree.Size())
	assert.Zero(t, tree.Root.N())
	assert.False(t, tree.Root.Expanded())
}

// Actual unit tests for MCTS components, like node ordering, UCB1 calculation, etc.

func TestNodeOwnership(t *testing.T) {
	root := newRootNode[Move]()
	root.CreateChildren([]Move{1, 2})
	child := root.BestChild()
	assert.True(t, child.Own())

	child.CreateChildren([]Move{1})
	assert.False(t, child.BestChild().Own())
	assert.Same(t, child, child.BestChild().Parent)
}

func TestNodeCreateChildrenTwice(t *testing.T) {
	root := newRootNode[Move]()
	assert.Equal(t, uint32(3), root.CreateChildren([]Move{1, 2, 3}))
	assert.True(t, root.Expanded())
	assert.Panics(t, func() { root.CreateChildren([]Move{4}) })
}

func TestNodeReorder(t *testing.T) {
	root := newRootNode[Move]()
	root.CreateChildren([]Move{1, 2, 3})

	score := map[Move]float64{1: 0.1, 2: 0.7, 3: 0.4}
	policy := func(child, _ *NodeBase[Move]) float64 { return score[child.Move] }
	for _, c := range root.Children() {
		root.Reorder(c, policy)
	}
	assert.Equal(t, Move(2), root.BestChild().Move)

	score[3] = 0.9
	root.Reorder(root.ChildByMove(3), policy)
	assert.Equal(t, Move(3), root.BestChild().Move)

	other := newRootNode[Move]()
	other.CreateChildren([]Move{1})
	assert.Panics(t, func() { root.Reorder(other.BestChild(), policy) })
}

func TestUCB1(t *testing.T) {
	root := newRootNode[Move]()
	root.CreateChildren([]Move{1})
	own := root.BestChild()
	own.CreateChildren([]Move{1})
	opp := own.BestChild()

	assert.True(t, math.IsInf(UCB1(own, root), 1))

	root.Set(8, 0)
	own.Set(4, 4)
	opp.Set(4, 4)
	explore := ExplorationParam * math.Sqrt(math.Log(8)/4)
	assert.InDelta(t, 1.0+explore, UCB1(own, root), 1e-9)

	// opponent nodes prefer the searching side's losses
	own.Set(8, 0)
	assert.InDelta(t, 0.0+explore, UCB1(opp, own), 1e-9)
}

func TestNodeStats(t *testing.T) {
	var stats NodeStats
	assert.Zero(t, stats.AvgQ())

	stats.Add(RewardWin)
	stats.Add(RewardDraw)
	stats.Add(RewardLoss)
	assert.Equal(t, int32(6), stats.N())
	assert.Equal(t, int32(3), stats.Q())
	assert.InDelta(t, 0.5, stats.AvgQ(), 1e-9)
}

func BenchmarkSearch(b *testing.B) {
	for i := 0; i < b.N; i++ {
		tree := NewMCTS[Move](nil)
		tree.SetLimits(DefaultLimits().SetCycles(1000))
		_ = tree.Search(NewNimOps(30))
	}
}
