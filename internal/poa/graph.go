package poa

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// Input validation errors returned by graph mutations. Every check runs
// before the first node or edge is written, so a non-nil error means the
// graph is exactly as it was before the call.
var (
	// ErrEmptySequence is returned when a sequence has no bases.
	ErrEmptySequence = errors.New("poa: sequence is empty")

	// ErrWeightLength is returned when the per-base weight slice does
	// not match the sequence length.
	ErrWeightLength = errors.New("poa: weights length differs from sequence length")

	// ErrBadWeight is returned when a uniform sequence weight is not positive.
	ErrBadWeight = errors.New("poa: sequence weight must be positive")

	// ErrAlreadySeeded is returned by AddFirstSequence on a non-empty graph.
	ErrAlreadySeeded = errors.New("poa: graph already holds sequences")

	// ErrNotSeeded is returned by AddAlignment on an empty graph.
	ErrNotSeeded = errors.New("poa: graph holds no sequences to align against")
)

// NodeIndex is a stable reference to a node in a Graph. Indices survive
// graph mutations; topological ranks do not.
type NodeIndex int32

// NoNode marks alignment ops that reference no graph node.
const NoNode NodeIndex = -1

const (
	nodeStart NodeIndex = 0 // virtual source, rank 0
	nodeEnd   NodeIndex = 1 // virtual sink, highest rank
	firstReal NodeIndex = 2
)

const (
	startSymbol = '#'
	endSymbol   = '$'
	gapSymbol   = '-'
)

// Provenance records one visit of a sequence through a node: which
// sequence, by its index in the graph, and the base offset within it.
type Provenance struct {
	Seq int
	Pos int
}

// edge is a directed, weighted connection. Edges are stored on their
// tail node and mirrored in the head node's predecessor list.
type edge struct {
	to     NodeIndex
	weight int
}

// node is a single symbol occurrence in the partial order.
type node struct {
	// symbol is the base or residue this node holds
	symbol byte

	// out edges to higher-rank nodes, in insertion order
	out []edge

	// in holds the tail of every edge pointing at this node
	in []NodeIndex

	// aligned lists the other nodes of this node's alignment group:
	// competing symbols that occupy the same column
	aligned []NodeIndex

	// prov records every sequence visit, in insertion order
	prov []Provenance
}

// Sequence is the record of one sequence folded into the graph.
type Sequence struct {
	// Name is the caller supplied identifier
	Name string

	// Length in bases
	Length int

	// Path holds the node visited at each base offset, in order
	Path []NodeIndex
}

// Graph is a partial order alignment graph: a DAG whose nodes each hold
// one symbol and whose edges record which symbols were seen
// consecutively, weighted by how often. Two virtual sentinels bracket
// the real nodes so every sequence shares a source and a sink.
//
// The zero Graph is not usable; create one with New.
type Graph struct {
	// nodes is the arena of all nodes. Slots 0 and 1 hold the start and
	// end sentinels, real nodes begin at firstReal.
	nodes []node

	// seqs are the folded sequences, in insertion order
	seqs []Sequence

	// byRank maps topological rank to node index, sentinels included.
	// Rebuilt from scratch after every mutation.
	byRank []NodeIndex

	// rank is the inverse of byRank
	rank []int
}

// New returns an empty graph holding only the two sentinel nodes.
func New() *Graph {
	g := &Graph{}
	g.addNode(startSymbol)
	g.addNode(endSymbol)
	g.sortTopological()
	return g
}

// IsEmpty reports whether the graph holds no sequences.
func (g *Graph) IsEmpty() bool { return len(g.seqs) == 0 }

// NumNodes returns the number of real, symbol bearing nodes.
func (g *Graph) NumNodes() int { return len(g.nodes) - 2 }

// NumEdges returns the number of stored edges, start sentinel edges included.
func (g *Graph) NumEdges() int {
	n := 0
	for i := range g.nodes {
		n += len(g.nodes[i].out)
	}
	return n
}

// NumSequences returns how many sequences the graph holds.
func (g *Graph) NumSequences() int { return len(g.seqs) }

// Sequences returns the folded sequence records in insertion order. The
// slice is shared with the graph and must not be modified.
func (g *Graph) Sequences() []Sequence { return g.seqs }

// Symbol returns the symbol held by a node.
func (g *Graph) Symbol(v NodeIndex) byte { return g.nodes[v].symbol }

// Rank returns the topological rank of a node. Ranks change whenever
// the graph does; use the NodeIndex to refer to a node across mutations.
func (g *Graph) Rank(v NodeIndex) int { return g.rank[v] }

// EdgeWeight returns the weight of the edge between two nodes and
// whether that edge exists.
func (g *Graph) EdgeWeight(from, to NodeIndex) (int, bool) {
	for _, e := range g.nodes[from].out {
		if e.to == to {
			return e.weight, true
		}
	}
	return 0, false
}

// AddFirstSequence seeds an empty graph with its backbone: one node per
// base, chained left to right, with weights[i] on the edge entering the
// node of base i. The first edge leaves the start sentinel, so a
// sequence of L bases creates exactly L nodes and L edges.
func (g *Graph) AddFirstSequence(name string, seq []byte, weights []int) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	if len(weights) != len(seq) {
		return fmt.Errorf("%w: %d weights for %d bases", ErrWeightLength, len(weights), len(seq))
	}
	if !g.IsEmpty() {
		return ErrAlreadySeeded
	}

	path := make([]NodeIndex, len(seq))
	prev := nodeStart
	for i, b := range seq {
		v := g.addNode(b)
		g.nodes[v].prov = append(g.nodes[v].prov, Provenance{Seq: 0, Pos: i})
		g.addEdge(prev, v, weights[i])
		path[i] = v
		prev = v
	}
	g.seqs = append(g.seqs, Sequence{Name: g.seqName(name), Length: len(seq), Path: path})
	g.sortTopological()
	return nil
}

// TopologicalOrder returns an iterator over the real nodes in
// topological order. Nodes of one alignment group appear consecutively.
// The iterator may be restarted; after a mutation it observes the new
// order.
func (g *Graph) TopologicalOrder() iter.Seq[NodeIndex] {
	return func(yield func(NodeIndex) bool) {
		for _, v := range g.byRank {
			if v == nodeStart || v == nodeEnd {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Validate checks the structural invariants: the rank table covers every
// node, every edge advances in rank with positive weight, every real
// node carries provenance, and no node emits more sequence paths than it
// receives.
func (g *Graph) Validate() error {
	if len(g.byRank) != len(g.nodes) {
		return fmt.Errorf("poa: rank table holds %d of %d nodes", len(g.byRank), len(g.nodes))
	}
	for _, v := range g.byRank {
		for _, e := range g.nodes[v].out {
			if g.rank[v] >= g.rank[e.to] {
				return fmt.Errorf("poa: edge %d->%d does not advance in rank", v, e.to)
			}
			if e.weight <= 0 {
				return fmt.Errorf("poa: edge %d->%d carries weight %d", v, e.to, e.weight)
			}
		}
	}

	in := make([]int, len(g.nodes))
	out := make([]int, len(g.nodes))
	starts := make([]int, len(g.nodes))
	for _, s := range g.seqs {
		if len(s.Path) == 0 {
			return fmt.Errorf("poa: sequence %s has an empty path", s.Name)
		}
		starts[s.Path[0]]++
		for i := 1; i < len(s.Path); i++ {
			out[s.Path[i-1]]++
			in[s.Path[i]]++
		}
	}
	for i := firstReal; int(i) < len(g.nodes); i++ {
		if len(g.nodes[i].prov) == 0 {
			return fmt.Errorf("poa: node %d is on no sequence path", i)
		}
		if out[i] > in[i]+starts[i] {
			return fmt.Errorf("poa: node %d emits %d paths but receives %d", i, out[i], in[i]+starts[i])
		}
	}
	return nil
}

// seqName falls back to a positional name when the caller gave none.
func (g *Graph) seqName(name string) string {
	if name == "" {
		return fmt.Sprintf("seq_%d", len(g.seqs))
	}
	return name
}

func (g *Graph) addNode(symbol byte) NodeIndex {
	g.nodes = append(g.nodes, node{symbol: symbol})
	return NodeIndex(len(g.nodes) - 1)
}

// addEdge creates the edge or, if it already exists, adds w to its weight.
func (g *Graph) addEdge(from, to NodeIndex, w int) {
	for i := range g.nodes[from].out {
		if g.nodes[from].out[i].to == to {
			g.nodes[from].out[i].weight += w
			return
		}
	}
	g.nodes[from].out = append(g.nodes[from].out, edge{to: to, weight: w})
	g.nodes[to].in = append(g.nodes[to].in, from)
}

// tails returns the real nodes with no outgoing edges, in rank order.
// They are the implicit predecessors of the end sentinel.
func (g *Graph) tails() []NodeIndex {
	var ts []NodeIndex
	for _, v := range g.byRank {
		if v != nodeStart && v != nodeEnd && len(g.nodes[v].out) == 0 {
			ts = append(ts, v)
		}
	}
	return ts
}

// sortTopological rebuilds byRank and rank with Kahn's algorithm,
// modified so an alignment group is emitted as a block: the group waits
// until every member is ready, keeping the members adjacent in rank.
// Panics on a cycle, which no exported mutation can produce.
func (g *Graph) sortTopological() {
	indeg := make([]int, len(g.nodes))
	for i := range g.nodes {
		for _, e := range g.nodes[i].out {
			indeg[e.to]++
		}
	}

	order := make([]NodeIndex, 0, len(g.nodes))
	done := make([]bool, len(g.nodes))
	queue := make([]NodeIndex, 0, len(g.nodes))
	for i := range g.nodes {
		if NodeIndex(i) != nodeEnd && indeg[i] == 0 {
			queue = append(queue, NodeIndex(i))
		}
	}

	emit := func(v NodeIndex) {
		order = append(order, v)
		done[v] = true
		for _, e := range g.nodes[v].out {
			if indeg[e.to]--; indeg[e.to] == 0 {
				queue = append(queue, e.to)
			}
		}
	}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if done[v] {
			continue
		}
		group := g.nodes[v].aligned
		if len(group) == 0 {
			emit(v)
			continue
		}
		ready := true
		for _, u := range group {
			if !done[u] && indeg[u] > 0 {
				ready = false
				break
			}
		}
		if !ready {
			// a sibling still has pending predecessors; the last
			// sibling to become ready emits the whole group
			continue
		}
		members := make([]NodeIndex, 0, len(group)+1)
		members = append(members, v)
		members = append(members, group...)
		slices.Sort(members)
		for _, u := range members {
			if !done[u] {
				emit(u)
			}
		}
	}

	order = append(order, nodeEnd)
	if len(order) != len(g.nodes) {
		panic("poa: graph contains a cycle")
	}

	g.byRank = order
	g.rank = make([]int, len(g.nodes))
	for r, v := range order {
		g.rank[v] = r
	}
}
