package poa

import (
	"errors"
	"fmt"
)

// Alignment folding errors. Like the input errors, they are raised
// before the first mutation.
var (
	// ErrCoverage is returned when an alignment's ops do not consume the
	// query exactly once in order, or disagree with the node symbols.
	ErrCoverage = errors.New("poa: alignment does not cover the query")

	// ErrBadNode is returned when an alignment references a node outside
	// the graph.
	ErrBadNode = errors.New("poa: alignment references an unknown node")
)

// AddAlignment folds seq into the graph along a previously computed
// alignment, adding weights[i] to the edge entering the node of base i.
// Matched nodes gain provenance, substituted bases reuse or create an
// aligned sibling node, inserted bases create fresh nodes, and deleted
// nodes are simply bypassed. The ops are validated up front; on error
// the graph is unchanged.
func (g *Graph) AddAlignment(name string, seq []byte, aln Alignment, weights []int) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	if len(weights) != len(seq) {
		return fmt.Errorf("%w: %d weights for %d bases", ErrWeightLength, len(weights), len(seq))
	}
	if g.IsEmpty() {
		return ErrNotSeeded
	}
	if err := g.checkAlignment(seq, aln); err != nil {
		return err
	}

	sid := len(g.seqs)
	name = g.seqName(name)
	cursor := nodeStart
	path := make([]NodeIndex, 0, len(seq))

	visit := func(v NodeIndex, pos int) {
		g.nodes[v].prov = append(g.nodes[v].prov, Provenance{Seq: sid, Pos: pos})
		g.addEdge(cursor, v, weights[pos])
		path = append(path, v)
		cursor = v
	}

	for _, op := range aln {
		switch op.Kind {
		case OpMatch:
			visit(op.Node, op.Pos)
		case OpSubstitute:
			v := g.alignedWith(op.Node, seq[op.Pos])
			if v == NoNode {
				v = g.addNode(seq[op.Pos])
				g.alignNodes(v, op.Node)
			}
			visit(v, op.Pos)
		case OpInsert:
			visit(g.addNode(seq[op.Pos]), op.Pos)
		case OpDelete:
			// the sequence bypasses this node; nothing to record
		}
	}

	g.seqs = append(g.seqs, Sequence{Name: name, Length: len(seq), Path: path})
	g.sortTopological()
	return nil
}

// checkAlignment verifies that aln consumes every query base exactly
// once in order and that node references are real nodes whose symbols
// agree with the op kinds. It runs before any mutation.
func (g *Graph) checkAlignment(seq []byte, aln Alignment) error {
	next := 0
	for i, op := range aln {
		switch op.Kind {
		case OpMatch, OpSubstitute, OpInsert:
			if next >= len(seq) {
				return fmt.Errorf("%w: op %d consumes offset %d past the query end", ErrCoverage, i, op.Pos)
			}
			if op.Pos != next {
				return fmt.Errorf("%w: op %d consumes offset %d, want %d", ErrCoverage, i, op.Pos, next)
			}
			next++
		case OpDelete:
		default:
			return fmt.Errorf("%w: op %d has unknown kind %d", ErrCoverage, i, op.Kind)
		}

		switch op.Kind {
		case OpMatch, OpSubstitute, OpDelete:
			if op.Node < firstReal || int(op.Node) >= len(g.nodes) {
				return fmt.Errorf("%w: op %d points at node %d", ErrBadNode, i, op.Node)
			}
		}
		if op.Kind == OpMatch && g.nodes[op.Node].symbol != seq[op.Pos] {
			return fmt.Errorf("%w: op %d matches %q against a node holding %q",
				ErrCoverage, i, seq[op.Pos], g.nodes[op.Node].symbol)
		}
		if op.Kind == OpSubstitute && g.nodes[op.Node].symbol == seq[op.Pos] {
			return fmt.Errorf("%w: op %d substitutes %q for itself", ErrCoverage, i, seq[op.Pos])
		}
	}
	if next != len(seq) {
		return fmt.Errorf("%w: ops consume %d of %d bases", ErrCoverage, next, len(seq))
	}
	return nil
}

// alignedWith returns the member of v's alignment group holding symbol
// b, or NoNode. v itself is never a candidate: the caller already knows
// its symbol differs.
func (g *Graph) alignedWith(v NodeIndex, b byte) NodeIndex {
	for _, u := range g.nodes[v].aligned {
		if g.nodes[u].symbol == b {
			return u
		}
	}
	return NoNode
}

// alignNodes adds u to v's alignment group, keeping the group a clique
// so that membership is visible from every member.
func (g *Graph) alignNodes(u, v NodeIndex) {
	members := append([]NodeIndex{v}, g.nodes[v].aligned...)
	g.nodes[u].aligned = members
	for _, w := range members {
		g.nodes[w].aligned = append(g.nodes[w].aligned, u)
	}
}
