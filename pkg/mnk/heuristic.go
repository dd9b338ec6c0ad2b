package mnk

// Bonus for every half line, where the cell extends a run of exactly K-1 cells
const AlmostKGain = 8

// Positional score of (row, col) from the perspective of player p.
// Counts every K long window through the cell that p can still complete,
// plus p's cells in the first of those windows. A cell owned by p's opponent scores 0.
func (b *Board) Heuristic(row, col int, p Player) int {
	if !b.InBounds(row, col) || b.grid[row*b.N+col] == p.Opponent() {
		return 0
	}

	h := 0
	for _, d := range directions {
		h += b.lineScore(row, col, d, p)
	}
	return h
}

// Heuristic from the owner's perspective
func (b *Board) OwnHeuristic(row, col int) int {
	return b.Heuristic(row, col, b.owner)
}

// Heuristic from the owner's opponent perspective
func (b *Board) SwappedHeuristic(row, col int) int {
	return b.Heuristic(row, col, b.owner.Opponent())
}

// Offensive + defensive value of the cell
func (b *Board) CombinedHeuristic(row, col int) int {
	return b.OwnHeuristic(row, col) + b.SwappedHeuristic(row, col)
}

func (b *Board) lineScore(row, col int, d [2]int, p Player) int {
	enemy := p.Opponent()
	reach := func(sign int) int {
		n := 0
		for n < b.K-1 {
			r, c := row+sign*(n+1)*d[0], col+sign*(n+1)*d[1]
			if !b.InBounds(r, c) || b.grid[r*b.N+c] == enemy {
				break
			}
			n++
		}
		return n
	}

	fwd, back := reach(1), reach(-1)
	span := fwd + back + 1
	if span < b.K {
		return 0
	}

	own := 0
	for o := fwd - b.K + 1; o <= fwd; o++ {
		if b.grid[(row+o*d[0])*b.N+col+o*d[1]] == p {
			own++
		}
	}

	// 1 for the first window plus 1 for each one after sliding it back
	return own + span - b.K + 1
}

// Flat bonus for an owned cell that extends a run of exactly K-1 same-owner cells,
// counted separately for both halves of every direction
func (b *Board) AlmostKBonus(row, col int) int {
	if !b.InBounds(row, col) {
		return 0
	}
	s := b.grid[row*b.N+col]
	if s == Empty {
		return 0
	}

	bonus := 0
	for _, d := range directions {
		for _, sign := range [2]int{-1, 1} {
			n := 1
			for k := 1; ; k++ {
				r, c := row+sign*k*d[0], col+sign*k*d[1]
				if !b.InBounds(r, c) || b.grid[r*b.N+c] != s {
					break
				}
				n++
			}
			if n == b.K-1 {
				bonus += AlmostKGain
			}
		}
	}
	return bonus
}

// Free cell with the highest combined heuristic, false if there are no free cells
func (b *Board) GreedyCell() (Cell, bool) {
	best, bestScore := Cell{}, -1
	for _, c := range b.free {
		if h := b.CombinedHeuristic(c.Row, c.Col); h > bestScore {
			bestScore = h
			best = c
		}
	}
	return best, bestScore >= 0
}
