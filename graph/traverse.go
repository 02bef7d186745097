package graph

import (
	"sort"

	"github.com/sbhtools/sbhasm/kmer"
)

// Kind selects which walks Populate extracts.
type Kind int

const (
	// Path walks start at net edge sources (out-degree > in-degree)
	// and end when no unconsumed outgoing edge remains.
	Path Kind = iota
	// Cycle walks start at nodes with both degrees positive and end
	// when the walk returns to its start node.
	Cycle
)

const (
	// MinPathLength is the minimum node count for a path to be
	// retained; shorter paths are discarded as noise.
	MinPathLength = 5
	// MinCycleLength is the minimum node count for a cycle to be
	// retained.
	MinCycleLength = 3
)

// Walk is an ordered sequence of node arena indices produced by one
// traversal. It is immutable once returned.
type Walk []int32

// Populate runs one greedy walk per qualifying start node and returns
// the walks that meet the retention threshold. Start nodes are
// snapshotted before any walk runs and visited in increasing key order,
// so repeated runs against identical graphs yield identical walks. Each
// walk consumes the edges it traverses, so walks never share edges, and
// successive Populate calls against the same graph only ever see the
// edges earlier calls left behind.
func (g *Multigraph) Populate(kind Kind, minLength int) []Walk {
	var starts []int32
	for _, key := range g.sortedKeys() {
		index := g.nodeIndex[key]
		n := g.nodes[index]
		switch kind {
		case Path:
			if n.outDeg > n.inDeg {
				starts = append(starts, index)
			}
		case Cycle:
			if n.outDeg > 0 && n.inDeg > 0 {
				starts = append(starts, index)
			}
		}
	}
	var walks []Walk
	for _, start := range starts {
		if walk := g.walk(start, kind); len(walk) >= minLength {
			walks = append(walks, walk)
		}
	}
	return walks
}

// walk consumes unconsumed edges from start until it gets stuck, or,
// for cycle walks, until it returns to the start node. Closure is
// detected by comparing arena indices, which stand in for the immutable
// k-mer key; degree state never participates in the comparison. The
// walk terminates because every step permanently consumes one edge.
func (g *Multigraph) walk(start int32, kind Kind) Walk {
	walk := Walk{start}
	current := start
	for {
		buckets := g.adjacency[g.nodes[current].key]
		if buckets == nil {
			break
		}
		// Deterministic tie-break among qualifying destinations:
		// smallest destination key wins.
		next, edgeIndex := g.nextUnused(buckets)
		if edgeIndex < 0 {
			break
		}
		g.consume(edgeIndex)
		walk = append(walk, next)
		if kind == Cycle && next == start {
			break
		}
		current = next
	}
	return walk
}

// nextUnused finds the smallest destination key whose bucket still
// holds an unconsumed edge and returns that destination's node index
// and the edge index, or (-1, -1) when every bucket is exhausted.
func (g *Multigraph) nextUnused(buckets map[kmer.Key][]int32) (int32, int32) {
	keys := make([]kmer.Key, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, key := range keys {
		if edgeIndex := g.unusedEdgeIn(buckets[key]); edgeIndex >= 0 {
			return g.nodeIndex[key], edgeIndex
		}
	}
	return -1, -1
}
