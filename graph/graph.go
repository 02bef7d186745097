// Package graph implements the de-Bruijn-style read multigraph and the
// greedy Eulerian-style walks that extract paths and cycles from it.
//
// Nodes are k-mers, identified by their integer key alone; edges are
// reads, linking a read's prefix k-mer to its suffix k-mer. Nodes and
// edges live in arenas and are referenced by index, so degree counters
// can be updated in place without shared-ownership handles.
package graph

import (
	"sort"

	"github.com/willf/bitset"

	"github.com/sbhtools/sbhasm/kmer"
)

type node struct {
	key           kmer.Key
	inDeg, outDeg int32
}

type edge struct {
	from, to int32 // node arena indices
}

// Multigraph is a read multigraph over k-mer nodes. It is built once
// from a read collection and afterwards mutated only by walks, which
// consume edges. Multiple edges between the same ordered node pair are
// permitted (duplicate reads).
type Multigraph struct {
	k         int
	nodes     []node
	nodeIndex map[kmer.Key]int32
	edges     []edge
	used      *bitset.BitSet
	adjacency map[kmer.Key]map[kmer.Key][]int32
}

// New builds the multigraph for a collection of reads with the given
// k-mer size. Every read contributes one edge from its prefix node to
// its suffix node; nodes are created the first time their key is seen.
// Reads are expected to have been filtered to a uniform length upstream.
func New(reads [][]byte, k int) *Multigraph {
	g := &Multigraph{
		k:         k,
		nodeIndex: make(map[kmer.Key]int32),
		used:      bitset.New(uint(len(reads))),
		adjacency: make(map[kmer.Key]map[kmer.Key][]int32),
	}
	for _, read := range reads {
		pkey := kmer.Encode(read, k, kmer.Prefix)
		skey := kmer.Encode(read, k, kmer.Suffix)
		from := g.internNode(pkey)
		to := g.internNode(skey)
		g.nodes[from].outDeg++
		g.nodes[to].inDeg++
		buckets := g.adjacency[pkey]
		if buckets == nil {
			buckets = make(map[kmer.Key][]int32)
			g.adjacency[pkey] = buckets
		}
		buckets[skey] = append(buckets[skey], int32(len(g.edges)))
		g.edges = append(g.edges, edge{from: from, to: to})
	}
	return g
}

func (g *Multigraph) internNode(key kmer.Key) int32 {
	if index, ok := g.nodeIndex[key]; ok {
		return index
	}
	index := int32(len(g.nodes))
	g.nodes = append(g.nodes, node{key: key})
	g.nodeIndex[key] = index
	return index
}

// K returns the k-mer size the graph was built with.
func (g *Multigraph) K() int {
	return g.k
}

// NumNodes returns the number of distinct k-mer nodes.
func (g *Multigraph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the total number of edges, consumed or not.
func (g *Multigraph) NumEdges() int {
	return len(g.edges)
}

// NodeKey returns the k-mer key of the node at the given arena index.
func (g *Multigraph) NodeKey(index int32) kmer.Key {
	return g.nodes[index].key
}

// Degrees returns the live in- and out-degree of the node at the given
// arena index. Live degrees count only unconsumed incident edges.
func (g *Multigraph) Degrees(index int32) (in, out int32) {
	n := g.nodes[index]
	return n.inDeg, n.outDeg
}

// consume marks an edge used and decrements both endpoints' live
// degree counters. An edge is consumed at most once.
func (g *Multigraph) consume(edgeIndex int32) {
	g.used.Set(uint(edgeIndex))
	e := g.edges[edgeIndex]
	g.nodes[e.from].outDeg--
	g.nodes[e.to].inDeg--
}

// unusedEdgeIn returns the first unconsumed edge in a bucket, or -1.
func (g *Multigraph) unusedEdgeIn(bucket []int32) int32 {
	for _, edgeIndex := range bucket {
		if !g.used.Test(uint(edgeIndex)) {
			return edgeIndex
		}
	}
	return -1
}

// sortedKeys returns the keys of the node index in increasing order.
func (g *Multigraph) sortedKeys() []kmer.Key {
	keys := make([]kmer.Key, 0, len(g.nodeIndex))
	for key := range g.nodeIndex {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
