package poa

// MSA is a gapped rendering of every sequence in the graph. Rows[i]
// holds Names[i]'s sequence padded with '-' so all rows share column
// boundaries: one column per alignment group, in topological order.
type MSA struct {
	Names []string
	Rows  []string
}

// MSA lays the graph's sequences out as a multiple sequence alignment.
// Stripping the gaps from Rows[i] yields exactly the sequence that was
// folded in under Names[i].
func (g *Graph) MSA() MSA {
	// columns are 1 based here so the zero value means unassigned
	cols := make([]int, len(g.nodes))
	ncols := 0
	for _, v := range g.byRank {
		if v == nodeStart || v == nodeEnd || cols[v] > 0 {
			continue
		}
		ncols++
		cols[v] = ncols
		for _, u := range g.nodes[v].aligned {
			cols[u] = ncols
		}
	}

	msa := MSA{
		Names: make([]string, len(g.seqs)),
		Rows:  make([]string, len(g.seqs)),
	}
	row := make([]byte, ncols)
	for i, s := range g.seqs {
		for j := range row {
			row[j] = gapSymbol
		}
		for _, v := range s.Path {
			row[cols[v]-1] = g.nodes[v].symbol
		}
		msa.Names[i] = s.Name
		msa.Rows[i] = string(row)
	}
	return msa
}
