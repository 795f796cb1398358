package solver

import (
	"container/heap"

	"svw.info/dotlink/internal/domain"
)

// enumeratePaths lists the simple paths from start to end over the
// current board. A step is legal when the target cell is in bounds,
// not yet on the path, and either empty or the end anchor itself.
// Path length is capped at rows*cols.
//
// If exhaustive enumeration finds nothing (the search can come up empty
// on larger boards before it manages to unwind), a single best-effort
// path from a Manhattan-guided best-first search is returned instead.
func enumeratePaths(b *domain.Board, start, end domain.Point) []domain.Path {
	visited := make([][]bool, b.Rows)
	for r := range visited {
		visited[r] = make([]bool, b.Cols)
	}
	visited[start.Row][start.Col] = true

	var result []domain.Path
	path := domain.Path{start}
	limit := b.Rows * b.Cols

	var dfs func(cur domain.Point)
	dfs = func(cur domain.Point) {
		if cur == end {
			result = append(result, append(domain.Path(nil), path...))
			return
		}
		if len(path) > limit {
			return
		}
		for _, d := range directions {
			next := domain.Point{Row: cur.Row + d[0], Col: cur.Col + d[1]}
			if !b.InBounds(next) || visited[next.Row][next.Col] {
				continue
			}
			if b.ColorAt(next) != domain.None && next != end {
				continue
			}
			visited[next.Row][next.Col] = true
			path = append(path, next)
			dfs(next)
			path = path[:len(path)-1]
			visited[next.Row][next.Col] = false
		}
	}
	dfs(start)

	if len(result) == 0 {
		if p := bestFirstPath(b, start, end); p != nil {
			result = append(result, p)
		}
	}
	return result
}

// pathNode is a frontier entry for the best-first fallback, ordered by
// Manhattan distance to the goal.
type pathNode struct {
	pos    domain.Point
	parent *pathNode
	dist   int
}

type nodeQueue []*pathNode

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(*pathNode)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

func manhattan(a, b domain.Point) int {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// bestFirstPath greedily expands the cell closest to end, ties broken
// arbitrarily by heap order. Returns nil when end is unreachable.
func bestFirstPath(b *domain.Board, start, end domain.Point) domain.Path {
	q := &nodeQueue{}
	heap.Push(q, &pathNode{pos: start, dist: manhattan(start, end)})
	seen := map[domain.Point]bool{start: true}

	for q.Len() > 0 {
		cur := heap.Pop(q).(*pathNode)
		if cur.pos == end {
			var out domain.Path
			for n := cur; n != nil; n = n.parent {
				out = append(domain.Path{n.pos}, out...)
			}
			return out
		}
		for _, d := range directions {
			next := domain.Point{Row: cur.pos.Row + d[0], Col: cur.pos.Col + d[1]}
			if !b.InBounds(next) || seen[next] {
				continue
			}
			if b.ColorAt(next) != domain.None && next != end {
				continue
			}
			seen[next] = true
			heap.Push(q, &pathNode{pos: next, parent: cur, dist: manhattan(next, end)})
		}
	}
	return nil
}
