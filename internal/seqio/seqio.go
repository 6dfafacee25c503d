// Package seqio reads and writes FASTA files, wrapping the biogo
// readers so the rest of the program deals in plain names and bytes.
package seqio

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	bio "github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Record is one FASTA record, its sequence uppercased.
type Record struct {
	ID  string
	Seq []byte
}

// Weighted is a record with the number of times its sequence occurred.
type Weighted struct {
	Record
	Count int
}

// ReadFasta parses every record in a FASTA file. Pass protein when the
// sequences are residues rather than bases.
func ReadFasta(path string, protein bool) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := readAll(f, protein)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FASTA file %s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no sequences in FASTA file %s", path)
	}
	return recs, nil
}

func readAll(r io.Reader, protein bool) ([]Record, error) {
	tmpl := linear.NewSeq("", nil, alphabetFor(protein))
	sc := bio.NewScanner(fasta.NewReader(r, tmpl))

	var recs []Record
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		seq := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			b := byte(l)
			if 'a' <= b && b <= 'z' {
				b -= 'a' - 'A'
			}
			seq[i] = b
		}
		recs = append(recs, Record{ID: s.Name(), Seq: seq})
	}
	return recs, sc.Error()
}

// WriteFasta writes name/sequence pairs as FASTA, wrapped to width
// characters per line.
func WriteFasta(w io.Writer, names, seqs []string, width int, protein bool) error {
	fw := fasta.NewWriter(w, width)
	alpha := alphabetFor(protein)
	for i := range names {
		s := linear.NewSeq(names[i], alphabet.BytesToLetters([]byte(seqs[i])), alpha)
		if _, err := fw.Write(s); err != nil {
			return fmt.Errorf("failed to write FASTA record %s: %w", names[i], err)
		}
	}
	return nil
}

// Collapse merges records with identical sequences, keeping the first
// record's id and counting occurrences. Order follows first appearance.
func Collapse(recs []Record) []Weighted {
	index := make(map[string]int, len(recs))
	var out []Weighted
	for _, r := range recs {
		if i, ok := index[string(r.Seq)]; ok {
			out[i].Count++
			continue
		}
		index[string(r.Seq)] = len(out)
		out = append(out, Weighted{Record: r, Count: 1})
	}
	return out
}

// the gapped alphabets let MSA rows with '-' columns round trip
func alphabetFor(protein bool) alphabet.Alphabet {
	if protein {
		return alphabet.Protein
	}
	return alphabet.DNAgapped
}
