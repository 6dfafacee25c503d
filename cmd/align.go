package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/poagraph/poag/config"
	"github.com/poagraph/poag/internal/poa"
	"github.com/poagraph/poag/internal/seqio"
)

var inputPath string
var outputPath string
var gfaPath string
var protein bool
var dedupe bool

// alignCmd represents the align command
var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Align FASTA sequences into a partial order graph and write the MSA",
	Long: `Align reads a FASTA file and folds every sequence into a partial order
alignment graph, each aligned against everything absorbed before it.

The sequences come back out as the rows of a multiple sequence
alignment, written as FASTA to stdout or --out. The graph itself can be
written alongside as a GFA v1.0 variation graph with --gfa: one segment
per unbranched run of bases, links weighted by how many sequences used
them, and one path per input sequence.`,
	Run: alignExec,
}

func init() {
	rootCmd.AddCommand(alignCmd)

	// Flags for the input file and the two output targets
	alignCmd.Flags().StringVarP(&inputPath, "in", "i", "", "path to a FASTA file with the sequences to align")
	alignCmd.Flags().StringVarP(&outputPath, "out", "o", "", "path to write the MSA FASTA to (default stdout)")
	alignCmd.Flags().StringVar(&gfaPath, "gfa", "", "path to also write the graph to as GFA v1.0")
	alignCmd.Flags().BoolVar(&protein, "protein", false, "treat the sequences as protein residues")
	alignCmd.Flags().BoolVar(&dedupe, "dedupe", false, "collapse duplicate sequences into one weighted copy")

	// Flags for the alignment penalties
	alignCmd.Flags().IntP("mismatch", "m", 4, "cost of aligning two differing symbols")
	alignCmd.Flags().Int("gap-open", 6, "one time cost of starting a gap")
	alignCmd.Flags().Int("gap-extend", 2, "per symbol cost of a gap")
	alignCmd.Flags().Int("line-width", 60, "max sequence characters per output FASTA line")

	// Mark required flags
	alignCmd.MarkFlagRequired("in")

	// Bind the parameters to viper
	viper.BindPFlag("scoring.mismatch", alignCmd.Flags().Lookup("mismatch"))
	viper.BindPFlag("scoring.gap-open", alignCmd.Flags().Lookup("gap-open"))
	viper.BindPFlag("scoring.gap-extend", alignCmd.Flags().Lookup("gap-extend"))
	viper.BindPFlag("output.line-width", alignCmd.Flags().Lookup("line-width"))
}

// alignExec builds the graph from the input FASTA and writes the MSA
// and, optionally, the GFA.
func alignExec(cmd *cobra.Command, args []string) {
	c := config.NewConfig()

	recs, err := seqio.ReadFasta(inputPath, protein)
	if err != nil {
		logger.Fatal(err)
	}

	g, err := buildGraph(recs, c.Penalties(), dedupe)
	if err != nil {
		logger.Fatal(err)
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			logger.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	msa := g.MSA()
	if err := seqio.WriteFasta(out, msa.Names, msa.Rows, c.Output.LineWidth, protein); err != nil {
		logger.Fatal(err)
	}

	if gfaPath != "" {
		if err := writeGFAFile(g, gfaPath); err != nil {
			logger.Fatal(err)
		}
	}

	logger.Printf("aligned %d sequences: %d nodes, %d edges", g.NumSequences(), g.NumNodes(), g.NumEdges())
}

// buildGraph folds the records into a fresh graph in input order.
func buildGraph(recs []seqio.Record, p poa.Penalties, dedupe bool) (*poa.Graph, error) {
	g := poa.New()
	if dedupe {
		for _, wr := range seqio.Collapse(recs) {
			if err := g.AddSequenceWeighted(wr.ID, wr.Seq, wr.Count, p); err != nil {
				return nil, fmt.Errorf("failed to align %s: %w", wr.ID, err)
			}
		}
		return g, nil
	}
	for _, r := range recs {
		if err := g.AddSequence(r.ID, r.Seq, p); err != nil {
			return nil, fmt.Errorf("failed to align %s: %w", r.ID, err)
		}
	}
	return g, nil
}

// writeGFAFile serializes the graph to a new file at path.
func writeGFAFile(g *poa.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.WriteGFA(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
