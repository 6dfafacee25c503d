package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poagraph/poag/config"
	"github.com/poagraph/poag/internal/seqio"
)

var statsInputPath string
var statsProtein bool
var statsDedupe bool

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report the size of the graph a FASTA file folds into",
	Long: `Stats folds the input sequences into a partial order alignment graph
the same way align does, verifies the graph's invariants, and prints
its dimensions instead of the alignment.`,
	Run: statsExec,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsInputPath, "in", "i", "", "path to a FASTA file with the sequences to align")
	statsCmd.Flags().BoolVar(&statsProtein, "protein", false, "treat the sequences as protein residues")
	statsCmd.Flags().BoolVar(&statsDedupe, "dedupe", false, "collapse duplicate sequences into one weighted copy")

	statsCmd.MarkFlagRequired("in")
}

// statsExec builds the graph and prints its dimensions to stdout.
func statsExec(cmd *cobra.Command, args []string) {
	c := config.NewConfig()

	recs, err := seqio.ReadFasta(statsInputPath, statsProtein)
	if err != nil {
		logger.Fatal(err)
	}

	g, err := buildGraph(recs, c.Penalties(), statsDedupe)
	if err != nil {
		logger.Fatal(err)
	}
	if err := g.Validate(); err != nil {
		logger.Fatal(err)
	}

	cols := 0
	if msa := g.MSA(); len(msa.Rows) > 0 {
		cols = len(msa.Rows[0])
	}
	fmt.Printf("sequences\t%d\n", g.NumSequences())
	fmt.Printf("nodes\t%d\n", g.NumNodes())
	fmt.Printf("edges\t%d\n", g.NumEdges())
	fmt.Printf("columns\t%d\n", cols)
}
