// Package poa builds partial order alignment graphs: DAGs that hold a
// set of related sequences with their shared stretches stored once.
// Sequences are folded in one at a time with AddSequence, each aligned
// against everything absorbed so far. The accumulated set comes back
// out as a multiple sequence alignment (MSA) or as a GFA variation
// graph (WriteGFA).
package poa

import "fmt"

// AddSequence aligns seq against the graph and folds it in with a
// weight of one on every base. An empty graph is seeded instead, making
// the sequence the backbone. An empty name is replaced with seq_N.
func (g *Graph) AddSequence(name string, seq []byte, p Penalties) error {
	return g.AddSequenceWeighted(name, seq, 1, p)
}

// AddSequenceWeighted is AddSequence with every base of seq counting
// weight times, as if the same sequence had been folded in that often.
func (g *Graph) AddSequenceWeighted(name string, seq []byte, weight int, p Penalties) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	if weight < 1 {
		return fmt.Errorf("%w: %d", ErrBadWeight, weight)
	}
	weights := make([]int, len(seq))
	for i := range weights {
		weights[i] = weight
	}
	if g.IsEmpty() {
		return g.AddFirstSequence(name, seq, weights)
	}
	aln, _ := NewAligner(p).Align(g, seq)
	return g.AddAlignment(name, seq, aln, weights)
}
