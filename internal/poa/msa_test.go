package poa

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGraph_MSA(t *testing.T) {
	tests := []struct {
		name string
		seqs []string
		want []string
	}{
		{
			"duplicates and one substitution",
			[]string{"ACGT", "ACGT", "ACTT"},
			[]string{"ACGT", "ACGT", "ACTT"},
		},
		{
			"internal insertion",
			[]string{"ACT", "ACGT"},
			[]string{"AC-T", "ACGT"},
		},
		{
			"internal deletion",
			[]string{"ACGT", "AGT"},
			[]string{"ACGT", "A-GT"},
		},
		{
			"shorter tail",
			[]string{"ACGT", "AC"},
			[]string{"ACGT", "AC--"},
		},
		{
			"leading gap",
			[]string{"ACGT", "CGT"},
			[]string{"ACGT", "-CGT"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustBuild(t, tt.seqs...)
			if diff := cmp.Diff(tt.want, g.MSA().Rows); diff != "" {
				t.Errorf("MSA() rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGraph_MSA_roundTrip(t *testing.T) {
	seqs := []string{"ACGT", "AGT", "ACGTT", "CGT", "ACAT"}
	g := mustBuild(t, seqs...)

	msa := g.MSA()
	for i, row := range msa.Rows {
		if len(row) != len(msa.Rows[0]) {
			t.Errorf("row %d length = %d, want %d", i, len(row), len(msa.Rows[0]))
		}
		if got := strings.ReplaceAll(row, "-", ""); got != seqs[i] {
			t.Errorf("row %d strips to %q, want %q", i, got, seqs[i])
		}
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestGraph_MSA_names(t *testing.T) {
	g := New()
	if got := g.MSA(); len(got.Rows) != 0 || len(got.Names) != 0 {
		t.Errorf("MSA() of an empty graph = %v, want no rows", got)
	}

	for _, name := range []string{"", "second", ""} {
		if err := g.AddSequence(name, []byte("ACGT"), DefaultPenalties); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{"seq_0", "second", "seq_2"}
	if diff := cmp.Diff(want, g.MSA().Names); diff != "" {
		t.Errorf("MSA() names mismatch (-want +got):\n%s", diff)
	}
}
