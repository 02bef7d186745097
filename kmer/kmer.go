// Package kmer maps fixed-length nucleotide strings over {A,C,G,T} to
// integer keys and back. Keys are base-4 little-endian: the symbol at
// position i contributes its value times 4^i, with A=0, C=1, G=2, T=3.
package kmer

import "log"

// Key is the integer encoding of a k-mer. With a uint64, k-mer sizes up
// to 31 are representable.
type Key uint64

// Region selects which end of a read a k-mer is taken from.
type Region int

const (
	// Prefix selects the first k symbols of a read.
	Prefix Region = iota
	// Suffix selects the last k symbols of a read.
	Suffix
)

// MaxSize is the largest supported k-mer size.
const MaxSize = 31

func baseValue(c byte) Key {
	switch c {
	case 'A':
		return 0
	case 'C':
		return 1
	case 'G':
		return 2
	case 'T':
		return 3
	default:
		log.Panicf("invalid nucleotide %q in read; only A, C, G, and T are allowed", c)
		return 0
	}
}

// Encode returns the key for the k-mer at the given end of read.
// Any symbol outside {A,C,G,T} is a hard input-format violation and
// aborts the run.
func Encode(read []byte, k int, region Region) Key {
	if len(read) < k {
		log.Panicf("read of length %v too short for %v-mer encoding", len(read), k)
	}
	bases := read[:k]
	if region == Suffix {
		bases = read[len(read)-k:]
	}
	var key Key
	for i := k - 1; i >= 0; i-- {
		key = key<<2 | baseValue(bases[i])
	}
	return key
}

// Decode is the inverse of Encode: it emits key mod 4 as a symbol and
// divides by 4, k times, so symbols come out least-significant-digit
// first. Decode(Encode(s, k, Prefix), k) == s for any valid s.
func Decode(key Key, k int) []byte {
	bases := make([]byte, k)
	for i := 0; i < k; i++ {
		bases[i] = "ACGT"[key&3]
		key >>= 2
	}
	if key != 0 {
		log.Panicf("key does not fit a %v-mer", k)
	}
	return bases
}

// Append is Decode appending to dst instead of allocating.
func Append(dst []byte, key Key, k int) []byte {
	for i := 0; i < k; i++ {
		dst = append(dst, "ACGT"[key&3])
		key >>= 2
	}
	return dst
}
