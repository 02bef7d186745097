package contig

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbhtools/sbhasm/graph"
)

func TestFromWalks(t *testing.T) {
	// AA -> CA -> GA -> TA -> AC -> CC; each node contributes its full
	// k-mer, with no de-overlapping.
	reads := [][]byte{
		[]byte("AACA"),
		[]byte("CAGA"),
		[]byte("GATA"),
		[]byte("TAAC"),
		[]byte("ACCC"),
	}
	g := graph.New(reads, 2)
	paths := g.Populate(graph.Path, graph.MinPathLength)
	require.Len(t, paths, 1)
	contigs := FromWalks(g, paths)
	require.Equal(t, []string{"AACAGATAACCC"}, contigStrings(contigs))
}

func TestFromWalksEmpty(t *testing.T) {
	g := graph.New(nil, 2)
	require.Empty(t, FromWalks(g, nil))
}

func TestFromWalksCycleRepeatsStart(t *testing.T) {
	reads := [][]byte{
		[]byte("AAAC"),
		[]byte("ACCC"),
		[]byte("CCAA"),
	}
	g := graph.New(reads, 2)
	cycles := g.Populate(graph.Cycle, graph.MinCycleLength)
	require.Len(t, cycles, 1)
	contigs := FromWalks(g, cycles)
	// The start node appears at both ends of the cycle.
	require.Equal(t, []string{"AAACCCAA"}, contigStrings(contigs))
}
