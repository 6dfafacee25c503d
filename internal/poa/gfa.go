package poa

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// gfaSegment is a maximal unbranched run of nodes, serialized as one S line.
type gfaSegment struct {
	id    int // 1 based, used in the S, L and P lines
	label []byte
}

// WriteGFA serializes the graph as GFA v1.0: an H line, an S line per
// unbranched run of nodes, an L line per edge between runs carrying the
// edge weight in an RC tag, and a P line tracing every sequence. Runs
// also break where a sequence path starts or ends, so a P line only
// ever names segments its sequence traverses in full. Sentinel nodes
// and their edges stay internal. Output for a given graph is identical
// between runs.
func (g *Graph) WriteGFA(w io.Writer) error {
	pathHead := make([]bool, len(g.nodes))
	pathTail := make([]bool, len(g.nodes))
	for _, s := range g.seqs {
		pathHead[s.Path[0]] = true
		pathTail[s.Path[len(s.Path)-1]] = true
	}
	joined := func(u, v NodeIndex) bool {
		return len(g.nodes[u].out) == 1 && g.soleRealPred(v) == u &&
			!pathTail[u] && !pathHead[v]
	}

	segOf := make([]int, len(g.nodes))
	var segs []gfaSegment

	for _, v := range g.byRank {
		if v == nodeStart || v == nodeEnd || segOf[v] != 0 {
			continue
		}
		if p := g.soleRealPred(v); p != NoNode && joined(p, v) {
			continue // v extends p's run, the walk below picks it up
		}
		seg := gfaSegment{id: len(segs) + 1}
		for u := v; ; {
			segOf[u] = seg.id
			seg.label = append(seg.label, g.nodes[u].symbol)
			if len(g.nodes[u].out) != 1 {
				break
			}
			next := g.nodes[u].out[0].to
			if !joined(u, next) {
				break
			}
			u = next
		}
		segs = append(segs, seg)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "H\tVN:Z:1.0")
	for _, s := range segs {
		fmt.Fprintf(bw, "S\t%d\t%s\n", s.id, s.label)
	}
	for _, v := range g.byRank {
		if v == nodeStart || v == nodeEnd {
			continue
		}
		for _, e := range g.nodes[v].out {
			if segOf[e.to] == segOf[v] {
				continue
			}
			fmt.Fprintf(bw, "L\t%d\t+\t%d\t+\t0M\tRC:i:%d\n", segOf[v], segOf[e.to], e.weight)
		}
	}
	for _, s := range g.seqs {
		bw.WriteString("P\t")
		bw.WriteString(s.Name)
		bw.WriteByte('\t')
		last := 0
		for _, v := range s.Path {
			id := segOf[v]
			if id == last {
				continue
			}
			if last != 0 {
				bw.WriteByte(',')
			}
			fmt.Fprintf(bw, "%d+", id)
			last = id
		}
		bw.WriteString("\t*\n")
	}
	return bw.Flush()
}

// GFA renders WriteGFA to a string.
func (g *Graph) GFA() string {
	var sb strings.Builder
	g.WriteGFA(&sb) // strings.Builder writes cannot fail
	return sb.String()
}

// soleRealPred returns v's only real predecessor, or NoNode when v has
// none or several.
func (g *Graph) soleRealPred(v NodeIndex) NodeIndex {
	p := NoNode
	for _, u := range g.nodes[v].in {
		if u == nodeStart {
			continue
		}
		if p != NoNode {
			return NoNode
		}
		p = u
	}
	return p
}
