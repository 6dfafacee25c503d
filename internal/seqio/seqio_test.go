package seqio

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadFasta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.fa")
	content := ">first\nacgt\nACGT\n>second\nGGTT\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	recs, err := ReadFasta(path, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []Record{
		{ID: "first", Seq: []byte("ACGTACGT")},
		{ID: "second", Seq: []byte("GGTT")},
	}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("ReadFasta() = %v, want %v", recs, want)
	}
}

func TestReadFasta_errors(t *testing.T) {
	if _, err := ReadFasta(filepath.Join(t.TempDir(), "missing.fa"), false); err == nil {
		t.Error("ReadFasta() of a missing file should fail")
	}

	empty := filepath.Join(t.TempDir(), "empty.fa")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFasta(empty, false); err == nil {
		t.Error("ReadFasta() of an empty file should fail")
	}
}

func TestWriteFasta(t *testing.T) {
	var sb strings.Builder
	err := WriteFasta(&sb, []string{"a", "b"}, []string{"ACGTACGTAC", "AC--GT"}, 4, false)
	if err != nil {
		t.Fatal(err)
	}

	want := ">a\nACGT\nACGT\nAC\n>b\nAC--\nGT\n"
	if got := sb.String(); got != want {
		t.Errorf("WriteFasta() =\n%q\nwant\n%q", got, want)
	}
}

func TestCollapse(t *testing.T) {
	recs := []Record{
		{ID: "a", Seq: []byte("ACGT")},
		{ID: "b", Seq: []byte("ACTT")},
		{ID: "c", Seq: []byte("ACGT")},
		{ID: "d", Seq: []byte("ACGT")},
	}

	got := Collapse(recs)
	want := []Weighted{
		{Record{ID: "a", Seq: []byte("ACGT")}, 3},
		{Record{ID: "b", Seq: []byte("ACTT")}, 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Collapse() = %v, want %v", got, want)
	}
}
