package poa

import (
	"errors"
	"fmt"
	"testing"
)

// ones returns n weights of 1.
func ones(n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// mustBuild folds the sequences into a fresh graph with default costs,
// naming them s1, s2 and so on.
func mustBuild(t *testing.T, seqs ...string) *Graph {
	t.Helper()
	g := New()
	for i, s := range seqs {
		if err := g.AddSequence(fmt.Sprintf("s%d", i+1), []byte(s), DefaultPenalties); err != nil {
			t.Fatalf("AddSequence(%q) = %v", s, err)
		}
	}
	return g
}

func TestNew(t *testing.T) {
	g := New()
	if !g.IsEmpty() {
		t.Error("New() graph should be empty")
	}
	if got := g.NumNodes(); got != 0 {
		t.Errorf("NumNodes() = %d, want 0", got)
	}
	if got := g.NumEdges(); got != 0 {
		t.Errorf("NumEdges() = %d, want 0", got)
	}
	for range g.TopologicalOrder() {
		t.Fatal("TopologicalOrder() yielded a node from an empty graph")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestGraph_AddFirstSequence(t *testing.T) {
	type args struct {
		seq     string
		weights []int
	}
	tests := []struct {
		name      string
		args      args
		wantNodes int
		wantEdges int
		wantErr   error
	}{
		{
			"seed with uniform weights",
			args{"ACGT", []int{1, 1, 1, 1}},
			4,
			4,
			nil,
		},
		{
			"seed a single base",
			args{"A", []int{3}},
			1,
			1,
			nil,
		},
		{
			"reject an empty sequence",
			args{"", []int{}},
			0,
			0,
			ErrEmptySequence,
		},
		{
			"reject mismatched weights",
			args{"ACGT", []int{1, 1}},
			0,
			0,
			ErrWeightLength,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			err := g.AddFirstSequence("s", []byte(tt.args.seq), tt.args.weights)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddFirstSequence() error = %v, want %v", err, tt.wantErr)
			}
			if got := g.NumNodes(); got != tt.wantNodes {
				t.Errorf("NumNodes() = %d, want %d", got, tt.wantNodes)
			}
			if got := g.NumEdges(); got != tt.wantEdges {
				t.Errorf("NumEdges() = %d, want %d", got, tt.wantEdges)
			}
		})
	}
}

func TestGraph_AddFirstSequence_twice(t *testing.T) {
	g := New()
	if err := g.AddFirstSequence("a", []byte("ACGT"), ones(4)); err != nil {
		t.Fatal(err)
	}
	err := g.AddFirstSequence("b", []byte("ACGT"), ones(4))
	if !errors.Is(err, ErrAlreadySeeded) {
		t.Errorf("second AddFirstSequence() error = %v, want %v", err, ErrAlreadySeeded)
	}
}

func TestGraph_AddFirstSequence_weights(t *testing.T) {
	g := New()
	if err := g.AddFirstSequence("s", []byte("ACGT"), []int{2, 3, 4, 5}); err != nil {
		t.Fatal(err)
	}
	path := g.Sequences()[0].Path
	if w, ok := g.EdgeWeight(nodeStart, path[0]); !ok || w != 2 {
		t.Errorf("start edge weight = %d, %v, want 2, true", w, ok)
	}
	for i, want := range []int{3, 4, 5} {
		if w, ok := g.EdgeWeight(path[i], path[i+1]); !ok || w != want {
			t.Errorf("edge after base %d weight = %d, %v, want %d, true", i, w, ok, want)
		}
	}
}

func TestGraph_TopologicalOrder(t *testing.T) {
	g := New()
	if err := g.AddFirstSequence("s", []byte("GATTACA"), ones(7)); err != nil {
		t.Fatal(err)
	}

	var bases []byte
	for v := range g.TopologicalOrder() {
		bases = append(bases, g.Symbol(v))
	}
	if string(bases) != "GATTACA" {
		t.Errorf("TopologicalOrder() spells %q, want GATTACA", bases)
	}

	// ranks strictly increase along every stored edge
	for v := range g.TopologicalOrder() {
		for _, e := range g.nodes[v].out {
			if g.Rank(v) >= g.Rank(e.to) {
				t.Errorf("edge %d->%d does not advance in rank", v, e.to)
			}
		}
	}

	// the iterator restarts from the top and honors an early break
	i := 0
	for v := range g.TopologicalOrder() {
		if g.Symbol(v) != bases[i] {
			t.Fatalf("restarted iterator diverged at position %d", i)
		}
		i++
	}
	n := 0
	for range g.TopologicalOrder() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("early break saw %d nodes, want 3", n)
	}
}

func TestGraph_Validate_corrupted(t *testing.T) {
	g := mustBuild(t, "ACGT", "ACTT")
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	g.nodes[firstReal].out[0].weight = 0
	if err := g.Validate(); err == nil {
		t.Error("Validate() missed a zero weight edge")
	}
}
