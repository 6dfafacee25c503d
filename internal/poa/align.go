package poa

import (
	"math"
	"slices"
)

// Penalties holds the alignment costs. Matches are free; mismatches and
// gaps add cost, so a reported alignment cost of zero means the query
// retraced an existing path exactly.
type Penalties struct {
	// Mismatch is the cost of aligning two differing symbols
	Mismatch uint32

	// GapOpen is the one time cost of starting a run of insertions or
	// deletions
	GapOpen uint32

	// GapExt is the per symbol cost of a gap run, the opening symbol
	// included
	GapExt uint32
}

// DefaultPenalties are the edit costs used when the caller does not
// override them.
var DefaultPenalties = Penalties{Mismatch: 4, GapOpen: 6, GapExt: 2}

// OpKind distinguishes the four alignment operations.
type OpKind uint8

const (
	// OpMatch aligns a query base to a node holding the same symbol.
	OpMatch OpKind = iota

	// OpSubstitute aligns a query base to a node holding a different symbol.
	OpSubstitute

	// OpInsert places a query base between graph nodes.
	OpInsert

	// OpDelete skips a graph node without consuming a query base.
	OpDelete
)

// Op is one step of a graph alignment.
type Op struct {
	// Kind of operation
	Kind OpKind

	// Node referenced by OpMatch, OpSubstitute and OpDelete; NoNode for
	// OpInsert
	Node NodeIndex

	// Pos is the query offset consumed by OpMatch, OpSubstitute and
	// OpInsert; -1 for OpDelete
	Pos int
}

// Alignment ties a query to a path through the graph, one op per query
// base or skipped node.
type Alignment []Op

// String renders the ops one letter each: M match, X substitution,
// I insertion, D deletion.
func (a Alignment) String() string {
	b := make([]byte, len(a))
	for i, op := range a {
		switch op.Kind {
		case OpMatch:
			b[i] = 'M'
		case OpSubstitute:
			b[i] = 'X'
		case OpInsert:
			b[i] = 'I'
		default:
			b[i] = 'D'
		}
	}
	return string(b)
}

// DP layers. The match layer consumes a query base and a node, the
// insert layer a query base only, the delete layer a node only.
const (
	layerM uint8 = iota
	layerX
	layerY
)

// inf is large enough to dominate any reachable cost and small enough
// that adding penalties to it cannot overflow an int32.
const inf = int32(math.MaxInt32 / 4)

// Aligner computes minimum cost global alignments of sequences against
// a graph, Gotoh's affine gap scheme generalized to a DAG: where the
// classic recurrence looks at one cell to the left, the graph version
// minimizes over every predecessor of the node's column. An Aligner
// reuses its tables between calls and is not safe for concurrent use.
type Aligner struct {
	p Penalties

	// cost tables, one cell per (query prefix, rank), row major
	m, x, y []int32

	// per cell source layer for the traceback
	btM, btX, btY []uint8

	// per cell predecessor rank for the layers that move across columns
	btRankM, btRankY []int32
}

// NewAligner returns an aligner with the given penalties.
func NewAligner(p Penalties) *Aligner {
	return &Aligner{p: p}
}

// Align computes a minimum cost global alignment of query against g and
// returns the ops with their total cost. The graph is not modified;
// fold the result in with AddAlignment. Ties are broken the same way on
// every run: matches over insertions over deletions, then the lower
// predecessor rank. Empty inputs are caller bugs and panic.
func (a *Aligner) Align(g *Graph, query []byte) (Alignment, int) {
	if g == nil || g.IsEmpty() {
		panic("poa: align against an empty graph")
	}
	if len(query) == 0 {
		panic("poa: align with an empty query")
	}

	n := len(query)
	R := len(g.byRank)
	a.grow((n + 1) * R)

	open := int32(a.p.GapOpen)
	ext := int32(a.p.GapExt)
	mis := int32(a.p.Mismatch)

	for i := range a.m {
		a.m[i], a.x[i], a.y[i] = inf, inf, inf
	}

	// rank 0 is the start sentinel: free to stand on before consuming
	// anything, reachable mid-query only by opening an insertion run
	a.m[0] = 0
	for i := 1; i <= n; i++ {
		k := i * R
		a.x[k] = open + ext*int32(i)
		if i == 1 {
			a.btX[k] = layerM
		} else {
			a.btX[k] = layerX
		}
	}

	for r := 1; r < R-1; r++ {
		v := g.byRank[r]
		nd := &g.nodes[v]
		for i := 0; i <= n; i++ {
			k := i*R + r

			// delete v: arrive from any predecessor at the same offset
			bestY, fromY, rankY := inf, layerM, int32(-1)
			for _, p := range nd.in {
				rp := int32(g.rank[p])
				pk := i*R + int(rp)
				c, l := best3(a.m[pk]+open+ext, a.x[pk]+open+ext, a.y[pk]+ext)
				if c < bestY || (c == bestY && rp < rankY) {
					bestY, fromY, rankY = c, l, rp
				}
			}
			a.y[k] = bestY
			a.btY[k] = fromY
			a.btRankY[k] = rankY

			if i == 0 {
				continue
			}

			// align query[i-1] to v: arrive from any predecessor, one
			// query base back
			sub := int32(0)
			if query[i-1] != nd.symbol {
				sub = mis
			}
			bestM, fromM, rankM := inf, layerM, int32(-1)
			for _, p := range nd.in {
				rp := int32(g.rank[p])
				pk := (i-1)*R + int(rp)
				c, l := best3(a.m[pk], a.x[pk], a.y[pk])
				c += sub
				if c < bestM || (c == bestM && rp < rankM) {
					bestM, fromM, rankM = c, l, rp
				}
			}
			a.m[k] = bestM
			a.btM[k] = fromM
			a.btRankM[k] = rankM

			// insert query[i-1] after v: stay in the column, one query
			// base back
			pk := k - R
			c, l := best3(a.m[pk]+open+ext, a.x[pk]+ext, a.y[pk]+open+ext)
			a.x[k] = c
			a.btX[k] = l
		}
	}

	// global alignment ends on a node with no successors, the full
	// query consumed
	bestCost, bestLayer, bestRank := inf, layerM, int32(-1)
	for _, t := range g.tails() {
		rt := int32(g.rank[t])
		k := n*R + int(rt)
		c, l := best3(a.m[k], a.x[k], a.y[k])
		if c < bestCost || (c == bestCost && rt < bestRank) {
			bestCost, bestLayer, bestRank = c, l, rt
		}
	}
	if bestRank < 0 || bestCost >= inf {
		panic("poa: no path through the graph reaches its end")
	}

	return a.traceback(g, query, n, bestLayer, bestRank), int(bestCost)
}

// traceback walks the source pointers from the chosen end cell back to
// the origin and returns the ops in query order.
func (a *Aligner) traceback(g *Graph, query []byte, n int, layer uint8, rank int32) Alignment {
	R := int32(len(g.byRank))
	ops := make(Alignment, 0, n)
	i, r := int32(n), rank
	for i > 0 || r > 0 {
		k := i*R + r
		switch layer {
		case layerM:
			v := g.byRank[r]
			kind := OpMatch
			if query[i-1] != g.nodes[v].symbol {
				kind = OpSubstitute
			}
			ops = append(ops, Op{Kind: kind, Node: v, Pos: int(i - 1)})
			layer, r = a.btM[k], a.btRankM[k]
			i--
		case layerX:
			ops = append(ops, Op{Kind: OpInsert, Node: NoNode, Pos: int(i - 1)})
			layer = a.btX[k]
			i--
		default:
			ops = append(ops, Op{Kind: OpDelete, Node: g.byRank[r], Pos: -1})
			layer, r = a.btY[k], a.btRankY[k]
		}
	}
	slices.Reverse(ops)
	return ops
}

// best3 picks the cheapest of the three layer costs, preferring match
// over insertion over deletion on ties.
func best3(m, x, y int32) (int32, uint8) {
	best, layer := m, layerM
	if x < best {
		best, layer = x, layerX
	}
	if y < best {
		best, layer = y, layerY
	}
	return best, layer
}

// grow resizes the scratch tables, reallocating only when the graph or
// query outgrew every earlier call.
func (a *Aligner) grow(size int) {
	if cap(a.m) < size {
		a.m = make([]int32, size)
		a.x = make([]int32, size)
		a.y = make([]int32, size)
		a.btM = make([]uint8, size)
		a.btX = make([]uint8, size)
		a.btY = make([]uint8, size)
		a.btRankM = make([]int32, size)
		a.btRankY = make([]int32, size)
		return
	}
	a.m = a.m[:size]
	a.x = a.x[:size]
	a.y = a.y[:size]
	a.btM = a.btM[:size]
	a.btX = a.btX[:size]
	a.btY = a.btY[:size]
	a.btRankM = a.btRankM[:size]
	a.btRankY = a.btRankY[:size]
}
