package graph

import (
	"testing"

	"github.com/sbhtools/sbhasm/kmer"
)

// checkDegreeInvariant verifies that every node's live degrees equal
// the counts of its unconsumed incident edges.
func checkDegreeInvariant(t *testing.T, g *Multigraph, context string) {
	t.Helper()
	liveIn := make([]int32, len(g.nodes))
	liveOut := make([]int32, len(g.nodes))
	for i, e := range g.edges {
		if !g.used.Test(uint(i)) {
			liveOut[e.from]++
			liveIn[e.to]++
		}
	}
	for i, n := range g.nodes {
		if n.inDeg < 0 || n.outDeg < 0 {
			t.Errorf("%v: negative degree on node %v", context, i)
		}
		if n.inDeg != liveIn[i] || n.outDeg != liveOut[i] {
			t.Errorf("%v: degree invariant violated on node %v", context, i)
		}
	}
}

func TestBuildDegrees(t *testing.T) {
	reads := [][]byte{
		[]byte("AACC"),
		[]byte("CCGG"),
		[]byte("CCGG"),
		[]byte("GGTT"),
	}
	g := New(reads, 2)
	if g.NumNodes() != 4 {
		t.Error("build node count failed")
	}
	if g.NumEdges() != 4 {
		t.Error("build edge count failed")
	}
	checkDegreeInvariant(t, g, "after build")
	cc := g.nodeIndex[kmer.Encode([]byte("CC"), 2, kmer.Prefix)]
	in, out := g.Degrees(cc)
	if in != 1 || out != 2 {
		t.Error("duplicate read degrees failed")
	}
}

func TestShortPathDiscarded(t *testing.T) {
	// Two reads chained by a shared k-mer yield a 3-node path, below
	// the retention threshold of 5, so nothing is retained.
	reads := [][]byte{
		[]byte("CCGG"),
		[]byte("AACC"),
	}
	g := New(reads, 2)
	if paths := g.Populate(Path, MinPathLength); len(paths) != 0 {
		t.Error("short path retention failed")
	}
	// The edges are consumed all the same.
	checkDegreeInvariant(t, g, "after discarded path")
	if g.used.Count() != 2 {
		t.Error("short path edge consumption failed")
	}
}

func TestPathWalkOrder(t *testing.T) {
	// AA -> CA -> GA -> TA -> AC -> CC, plus a second edge AA -> AG
	// that stays unconsumed. The walk starts at AA, the only net edge
	// source, and prefers CA over AG because its key is smaller.
	reads := [][]byte{
		[]byte("TAAC"),
		[]byte("GATA"),
		[]byte("AAAG"),
		[]byte("AACA"),
		[]byte("CAGA"),
		[]byte("ACCC"),
	}
	g := New(reads, 2)
	paths := g.Populate(Path, MinPathLength)
	if len(paths) != 1 {
		t.Fatal("path population failed")
	}
	want := []string{"AA", "CA", "GA", "TA", "AC", "CC"}
	path := paths[0]
	if len(path) != len(want) {
		t.Fatal("path length failed")
	}
	for i, index := range path {
		if string(kmer.Decode(g.NodeKey(index), 2)) != want[i] {
			t.Error("path walk order failed at node", i)
		}
	}
	checkDegreeInvariant(t, g, "after path population")
}

func TestDeterministicEdgeSelection(t *testing.T) {
	// From AA both AC and AG are reachable; the walk must pick the
	// smaller destination key (AC = 4 < AG = 8) first.
	reads := [][]byte{
		[]byte("AAAG"),
		[]byte("AAAC"),
		[]byte("ACAA"),
		[]byte("AGTT"),
		[]byte("TTGA"),
		[]byte("GACC"),
	}
	g := New(reads, 2)
	paths := g.Populate(Path, 2)
	if len(paths) != 1 {
		t.Fatal("deterministic path population failed")
	}
	want := []string{"AA", "AC", "AA", "AG", "TT", "GA", "CC"}
	path := paths[0]
	if len(path) != len(want) {
		t.Fatal("deterministic path length failed")
	}
	for i, index := range path {
		if string(kmer.Decode(g.NodeKey(index), 2)) != want[i] {
			t.Error("deterministic edge selection failed at node", i)
		}
	}
}

func TestCycleClosure(t *testing.T) {
	// AA -> AC -> CC -> CA -> AA.
	reads := [][]byte{
		[]byte("AAAC"),
		[]byte("ACCC"),
		[]byte("CCCA"),
		[]byte("CAAA"),
	}
	g := New(reads, 2)
	cycles := g.Populate(Cycle, MinCycleLength)
	if len(cycles) != 1 {
		t.Fatal("cycle population failed")
	}
	cycle := cycles[0]
	if len(cycle) != 5 {
		t.Error("cycle length failed")
	}
	if cycle[0] != cycle[len(cycle)-1] {
		t.Error("cycle closure failed")
	}
	checkDegreeInvariant(t, g, "after cycle population")
	if g.used.Count() != 4 {
		t.Error("cycle edge consumption failed")
	}
}

func TestSelfLoopCycleClosesOnKey(t *testing.T) {
	// A single all-A read maps prefix and suffix to the same node, so
	// the walk must recognize closure immediately even though the
	// node's degrees changed since the walk began.
	g := New([][]byte{[]byte("AAAA")}, 2)
	if g.NumNodes() != 1 {
		t.Fatal("self loop node count failed")
	}
	cycles := g.Populate(Cycle, 2)
	if len(cycles) != 1 {
		t.Fatal("self loop cycle population failed")
	}
	if len(cycles[0]) != 2 || cycles[0][0] != cycles[0][1] {
		t.Error("self loop cycle closure failed")
	}
	if in, out := g.Degrees(0); in != 0 || out != 0 {
		t.Error("self loop degree decrement failed")
	}
}

func TestEdgesConsumedExactlyOnce(t *testing.T) {
	reads := [][]byte{
		[]byte("AAAC"),
		[]byte("ACCC"),
		[]byte("CCCA"),
		[]byte("CAAA"),
		[]byte("GGGA"),
		[]byte("GATT"),
	}
	g := New(reads, 2)
	g.Populate(Path, 2)
	consumedByPaths := g.used.Count()
	g.Populate(Cycle, 2)
	consumedTotal := g.used.Count()
	if consumedTotal < consumedByPaths {
		t.Error("edge consumption went backwards")
	}
	if consumedTotal > uint(g.NumEdges()) {
		t.Error("more edges consumed than exist")
	}
	checkDegreeInvariant(t, g, "after full decomposition")
	// A further run finds nothing left to consume.
	if walks := g.Populate(Cycle, 2); len(walks) != 0 {
		t.Error("edge exactly-once failed")
	}
	if g.used.Count() != consumedTotal {
		t.Error("edge re-consumption detected")
	}
}

func TestEmptyGraph(t *testing.T) {
	g := New(nil, 2)
	if g.NumNodes() != 0 || g.NumEdges() != 0 {
		t.Error("empty graph construction failed")
	}
	if paths := g.Populate(Path, MinPathLength); len(paths) != 0 {
		t.Error("empty graph path population failed")
	}
	if cycles := g.Populate(Cycle, MinCycleLength); len(cycles) != 0 {
		t.Error("empty graph cycle population failed")
	}
}
