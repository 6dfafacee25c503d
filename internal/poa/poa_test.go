package poa

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestGraph_endToEnd walks one graph through seeding, a duplicate and a
// substitution, checking the counts, weights, MSA and GFA at each step.
func TestGraph_endToEnd(t *testing.T) {
	g := New()

	// seeding: one node and one edge per base, start edge included
	if err := g.AddSequence("s1", []byte("ACGT"), DefaultPenalties); err != nil {
		t.Fatal(err)
	}
	if g.NumNodes() != 4 || g.NumEdges() != 4 {
		t.Fatalf("after seeding: %d nodes, %d edges, want 4 and 4", g.NumNodes(), g.NumEdges())
	}

	// a duplicate realigns onto the same path and only bumps weights
	if err := g.AddSequence("s2", []byte("ACGT"), DefaultPenalties); err != nil {
		t.Fatal(err)
	}
	if g.NumNodes() != 4 || g.NumEdges() != 4 {
		t.Fatalf("after duplicate: %d nodes, %d edges, want 4 and 4", g.NumNodes(), g.NumEdges())
	}
	prev := nodeStart
	for _, v := range g.Sequences()[0].Path {
		if w, _ := g.EdgeWeight(prev, v); w != 2 {
			t.Errorf("edge %d->%d weight = %d, want 2", prev, v, w)
		}
		prev = v
	}

	// one substituted base forks the path and rejoins it
	if err := g.AddSequence("s3", []byte("ACTT"), DefaultPenalties); err != nil {
		t.Fatal(err)
	}
	if g.NumNodes() != 5 || g.NumEdges() != 6 {
		t.Fatalf("after substitution: %d nodes, %d edges, want 5 and 6", g.NumNodes(), g.NumEdges())
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	msa := g.MSA()
	if diff := cmp.Diff([]string{"s1", "s2", "s3"}, msa.Names); diff != "" {
		t.Errorf("MSA names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ACGT", "ACGT", "ACTT"}, msa.Rows); diff != "" {
		t.Errorf("MSA rows mismatch (-want +got):\n%s", diff)
	}

	var s, l, p int
	for _, line := range strings.Split(strings.TrimSuffix(g.GFA(), "\n"), "\n") {
		switch line[0] {
		case 'S':
			s++
		case 'L':
			l++
		case 'P':
			p++
		}
	}
	if s != 4 || l != 4 || p != 3 {
		t.Errorf("GFA has %d segments, %d links, %d paths, want 4, 4, 3", s, l, p)
	}
}

func TestAligner_Align_emptyGraph(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Align() against an empty graph should panic")
		}
	}()
	NewAligner(DefaultPenalties).Align(New(), []byte("AC"))
}

func TestAligner_Align_emptyQuery(t *testing.T) {
	g := mustBuild(t, "ACGT")
	defer func() {
		if recover() == nil {
			t.Error("Align() with an empty query should panic")
		}
	}()
	NewAligner(DefaultPenalties).Align(g, nil)
}
