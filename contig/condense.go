package contig

import (
	"bytes"
	"sort"
	"sync/atomic"

	"github.com/exascience/pargo/parallel"
	psort "github.com/exascience/pargo/sort"
)

// sortByLength sorts contigs by length, descending. Ties keep their
// relative order, which the condensation passes do not depend on.
func sortByLength(contigs []Contig) {
	sort.SliceStable(contigs, func(i, j int) bool {
		return len(contigs[i]) > len(contigs[j])
	})
}

type stableContigSorter []Contig

func (s stableContigSorter) SequentialSort(i, j int) {
	sortByLength(s[i:j])
}

func (s stableContigSorter) NewTemp() psort.StableSorter {
	return stableContigSorter(make([]Contig, len(s)))
}

func (s stableContigSorter) Len() int {
	return len(s)
}

func (s stableContigSorter) Less(i, j int) bool {
	return len(s[i]) > len(s[j])
}

func (s stableContigSorter) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s, source.(stableContigSorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// parallelSortByLength sorts contigs by length, descending, using a
// parallel stable sort.
func parallelSortByLength(contigs []Contig) {
	psort.StableSort(stableContigSorter(contigs))
}

// RemoveContained drops every contig that occurs as an exact contiguous
// substring of a longer contig and returns the survivors together with
// the number of contigs removed. The marking pass runs in parallel over
// the outer index; marks are write-once booleans, so concurrent marking
// of the same contig is benign and needs no lock.
func RemoveContained(contigs []Contig) ([]Contig, int) {
	parallelSortByLength(contigs)
	toRemove := make([]int32, len(contigs))
	parallel.Range(0, len(contigs), 0, func(low, high int) {
		for i := low; i < high; i++ {
			if atomic.LoadInt32(&toRemove[i]) != 0 {
				continue
			}
			for j := i + 1; j < len(contigs); j++ {
				if atomic.LoadInt32(&toRemove[j]) != 0 {
					continue
				}
				if len(contigs[i]) > len(contigs[j]) && bytes.Contains(contigs[i], contigs[j]) {
					atomic.StoreInt32(&toRemove[j], 1)
				} else if bytes.Contains(contigs[j], contigs[i]) {
					atomic.StoreInt32(&toRemove[i], 1)
					break
				}
			}
		}
	})
	survivors := contigs[:0]
	removed := 0
	for i, contig := range contigs {
		if toRemove[i] != 0 {
			removed++
		} else {
			survivors = append(survivors, contig)
		}
	}
	return survivors, removed
}

// overlapMerge tests whether one contig's suffix matches the other's
// prefix in either orientation, scanning overlap lengths from short to
// long, and joins the two at the first (smallest) overlap of at least
// minOverlap symbols. Returns nil if no qualifying overlap exists.
func overlapMerge(c1, c2 Contig, minOverlap int) Contig {
	maxOverlap := len(c1)
	if len(c2) < maxOverlap {
		maxOverlap = len(c2)
	}
	if minOverlap < 1 {
		minOverlap = 1
	}
	for k := minOverlap; k <= maxOverlap; k++ {
		if bytes.HasPrefix(c1, c2[len(c2)-k:]) {
			merged := make(Contig, 0, len(c2)-k+len(c1))
			merged = append(merged, c2[:len(c2)-k]...)
			return append(merged, c1...)
		}
		if bytes.HasPrefix(c2, c1[len(c1)-k:]) {
			merged := make(Contig, 0, len(c1)-k+len(c2))
			merged = append(merged, c1[:len(c1)-k]...)
			return append(merged, c2...)
		}
	}
	return nil
}

// swapRemove replaces the element at index with the last element and
// shrinks the slice by one.
func swapRemove(contigs []Contig, index int) []Contig {
	contigs[index] = contigs[len(contigs)-1]
	return contigs[:len(contigs)-1]
}

// Merge repeatedly joins pairs of contigs whose suffix/prefix overlap
// by at least minOverlap symbols and returns the condensed collection
// together with the number of contigs that took part in a merge. For a
// fixed cursor the overlap tests against all later contigs run in
// parallel over the then-immutable collection; applying a discovered
// merge mutates the collection and happens strictly sequentially.
// Each merge removes two contigs and adds one, so the loop terminates.
func Merge(contigs []Contig, minOverlap int) ([]Contig, int) {
	parallelSortByLength(contigs)
	merged := 0
	for i := 0; i < len(contigs); i++ {
		results := make([]Contig, len(contigs)-i-1)
		parallel.Range(i+1, len(contigs), 0, func(low, high int) {
			for j := low; j < high; j++ {
				results[j-i-1] = overlapMerge(contigs[i], contigs[j], minOverlap)
			}
		})
		hit := false
		for j := i + 1; j < len(contigs); j++ {
			if result := results[j-i-1]; result != nil {
				contigs = swapRemove(contigs, j)
				contigs = swapRemove(contigs, i)
				contigs = append(contigs, result)
				merged += 2
				hit = true
				break
			}
		}
		if hit {
			// Restart the scan over the mutated collection.
			i = -1
		}
	}
	return contigs, merged
}

// Condense iterates containment removal and overlap merging until the
// contig count is unchanged after a full round. Only the count-based
// check decides the fixed point; per-round removal and merge tallies
// are reported to the observer but never terminate the loop. A nil
// observer is allowed.
func Condense(contigs []Contig, minOverlap int, observe func(removed, merged int)) []Contig {
	for previous := -1; previous != len(contigs); {
		previous = len(contigs)
		var removed, mergedCount int
		contigs, removed = RemoveContained(contigs)
		contigs, mergedCount = Merge(contigs, minOverlap)
		if observe != nil {
			observe(removed, mergedCount)
		}
	}
	return contigs
}
