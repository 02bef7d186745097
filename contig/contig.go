// Package contig turns extracted graph walks into assembled sequences
// and condenses the resulting collection by removing contained contigs
// and merging overlapping ones.
package contig

import (
	"github.com/sbhtools/sbhasm/graph"
	"github.com/sbhtools/sbhasm/kmer"
)

// Contig is an assembled nucleotide sequence over {A,C,G,T}.
type Contig []byte

// FromWalks decodes every node on every walk back into its k-mer and
// concatenates the k-mers in traversal order. Adjacent nodes contribute
// their full k-mer; consecutive k-mers are not de-overlapped here, the
// condensation passes collapse the redundancy later.
func FromWalks(g *graph.Multigraph, walks []graph.Walk) []Contig {
	k := g.K()
	contigs := make([]Contig, 0, len(walks))
	for _, walk := range walks {
		sequence := make([]byte, 0, len(walk)*k)
		for _, index := range walk {
			sequence = kmer.Append(sequence, g.NodeKey(index), k)
		}
		contigs = append(contigs, sequence)
	}
	return contigs
}
